package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger checks connectivity of the storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Counter reports the size of the employee collection.
type Counter interface {
	Count() int
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Backend string
	DB      Pinger // nil for backends without a connection (file, memory)
	Store   Counter
	Log     *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(backend string, db Pinger, store Counter, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: backend,
		DB:      db,
		Store:   store,
		Log:     logger,
	}
}

// MongoPinger adapts a Mongo client to Pinger.
type MongoPinger struct {
	Client *mongo.Client
}

// Ping pings the primary.
func (m MongoPinger) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Database  string `json:"database"`
	Employees *int   `json:"employees,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "storage":"sqlite", "database":"connected", "employees":49 }
//
// On storage failure: 503 and
//
//	{ "status":"error", "storage":"mongo", "database":"disconnected", "message":"Storage unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Storage:  h.Backend,
		Database: "not applicable",
	}

	if h.DB != nil {
		if err := h.DB.Ping(ctx); err != nil {
			h.Log.Error("health-check: storage ping failed", zap.String("storage", h.Backend), zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Storage unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = "connected"
	}

	if h.Store != nil {
		n := h.Store.Count()
		resp.Employees = &n
	}

	_ = json.NewEncoder(w).Encode(resp)
}
