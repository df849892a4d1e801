// Package confirm answers the confirmation dialog rendered by the layout.
package confirm

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/navigation"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"go.uber.org/zap"
)

// Handler resolves dialogs and runs the action they name.
type Handler struct {
	Registry *confirm.Registry
	Actions  *confirm.Actions
	Log      *zap.Logger
}

// NewHandler constructs a confirm Handler.
func NewHandler(registry *confirm.Registry, actions *confirm.Actions, logger *zap.Logger) *Handler {
	return &Handler{
		Registry: registry,
		Actions:  actions,
		Log:      logger,
	}
}

// HandleAnswer handles POST /confirm.
//
// answer=confirm accepts. cancel declines, and so does dismiss, which the
// close button posts for Escape and backdrop clicks too. A stale or missing
// dialog id just returns to the page.
func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.FormValue("id"))
	accepted := r.FormValue("answer") == "confirm"
	st := uistate.From(r)

	req, err := h.Registry.For(st.SessionID).Resolve(id, accepted)
	if err != nil {
		if !errors.Is(err, confirm.ErrNoPending) && !errors.Is(err, confirm.ErrStale) {
			h.Log.Error("resolve confirmation failed", zap.Error(err))
		} else {
			h.Log.Debug("confirmation answer ignored", zap.String("id", id), zap.Error(err))
		}
		redirect(w, r, navigation.SafeBackURL(r, navigation.BackURLOptions{Fallback: "/"}))
		return
	}

	h.Log.Debug("confirmation answered",
		zap.String("id", req.ID),
		zap.String("action", req.Action),
		zap.Bool("accepted", accepted))

	if req.Action != "" && h.Actions.Dispatch(w, r, req, accepted) {
		return
	}
	if req.Action != "" {
		h.Log.Warn("no handler for confirmation action", zap.String("action", req.Action))
	}

	back := req.ReturnURL
	if back == "" {
		back = "/"
	}
	redirect(w, r, back)
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
