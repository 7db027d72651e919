// internal/app/features/live/routes.go
package live

import (
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeAll)
		pr.Get("/{groupID}", h.ServeGroup)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Post("/{groupID}/start", h.HandleStart)
		pr.Post("/{groupID}/end", h.HandleEnd)
	})

	return r
}
