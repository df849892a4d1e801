// internal/app/features/employees/routes.go
package employees

import (
	"github.com/dalemusser/employeehub/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the employee pages at the site root.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(limits.Body(limits.MaxFormSize))

	// LIST
	r.Get("/", h.ServeList)
	r.Get("/api/employees", h.ServeAPI)

	// SELECTION + ROW ACTIONS
	r.Post("/selection", h.HandleSelection)
	r.Post("/selection/delete", h.HandleDeleteSelected)
	r.Post("/actions", h.HandleAction)

	// CREATE
	r.Get("/add-employee", h.ServeAdd)
	r.Post("/add-employee", h.HandleAdd)
	r.Post("/add-employee/validate", h.HandleValidate)

	// EDIT
	r.Get("/edit-employee/{id}", h.ServeEdit)
	r.Post("/edit-employee/{id}", h.HandleEdit)
	r.Post("/edit-employee/{id}/validate", h.HandleValidate)

	return r
}
