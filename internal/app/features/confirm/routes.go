package confirm

import (
	"github.com/dalemusser/employeehub/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted at /confirm.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(limits.Body(limits.MaxFormSize))
	r.Post("/", h.HandleAnswer)
	return r
}
