// internal/app/features/students/routes.go
package students

import (
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// The roster is admin territory end to end.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/pending", h.ServePending)
		pr.Get("/{id}", h.ServeStudent)
		pr.Post("/{id}/assign", h.HandleAssign)
		pr.Post("/{id}/disable", h.HandleDisable)
	})

	return r
}
