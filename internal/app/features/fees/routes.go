// internal/app/features/fees/routes.go
package fees

import (
	"github.com/dalemusser/coachhub/internal/app/system/auth"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/me", h.ServeMine)
		pr.Post("/pay", h.HandlePay)
		pr.Get("/bank", h.ServeBank)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Post("/{studentID}/collect", h.HandleCollect)
		pr.Post("/{studentID}/remind", h.HandleRemind)
		pr.Put("/bank", h.HandleUpdateBank)
	})

	return r
}
