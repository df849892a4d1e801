// Package language serves the nav bar's language selector.
package language

import (
	"net/http"
	"strings"

	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/navigation"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"go.uber.org/zap"
)

// Change is the detail of a language-change event.
type Change struct {
	SessionID string
	Language  string
}

// Handler stores a session's language choice.
type Handler struct {
	Bundle *i18n.Bundle
	UI     *uistate.Manager
	// Events receives a composed language-change event for every switch.
	Events *events.Target
	Log    *zap.Logger
}

// NewHandler constructs a language Handler.
func NewHandler(bundle *i18n.Bundle, ui *uistate.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Bundle: bundle,
		UI:     ui,
		Events: events.NewTarget(),
		Log:    logger,
	}
}

// HandleChange handles POST /language.
func (h *Handler) HandleChange(w http.ResponseWriter, r *http.Request) {
	back := navigation.SafeBackURL(r, navigation.BackURLOptions{Fallback: "/"})

	lang := strings.TrimSpace(r.FormValue("lang"))
	if !h.Bundle.Supported(lang) {
		h.Log.Warn("unsupported language requested", zap.String("lang", lang))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	st := uistate.From(r)
	if st.Language != lang {
		st.Language = lang
		if err := h.UI.Save(w, r, st); err != nil {
			h.Log.Error("save language choice failed", zap.Error(err))
		}
		h.Bundle.Changed(lang)
		h.Events.Dispatch(events.Event{
			Name:     events.LanguageChange,
			Detail:   Change{SessionID: st.SessionID, Language: lang},
			Bubbles:  true,
			Composed: true,
		})
	}

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", back)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
