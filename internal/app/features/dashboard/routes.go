// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/projectguardian/rescuehub/internal/app/system/auth"
	"github.com/projectguardian/rescuehub/internal/domain/models"
)

// Routes wires the dashboard feature under whatever mount point the
// top-level router chooses (e.g., "/dashboard").
//
// The GET views are signed-in only; each handler sends the wrong role to its
// own dashboard. The mutating POSTs additionally require the acting role, so
// a crafted request from the other role never reaches a handler.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeDashboard)
		pr.Get("/submitter", h.ServeSubmitter)
		pr.Get("/organization", h.ServeOrganization)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleSubmitter))
		pr.Post("/submitter/reports", h.HandleSubmitReport)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleOrganization))
		pr.Post("/organization/reports/{id}/status", h.HandleStatusUpdate)
	})

	return r
}
