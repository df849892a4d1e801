package language

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted at /language.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleChange)
	return r
}
