// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	uierrors "github.com/projectguardian/rescuehub/internal/app/features/errors"
	"github.com/projectguardian/rescuehub/internal/app/reportapi"
	reportstore "github.com/projectguardian/rescuehub/internal/app/store/reports"
	"github.com/projectguardian/rescuehub/internal/app/system/authz"
	"github.com/projectguardian/rescuehub/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Reports  *reportapi.Client
	Registry *reportstore.Registry
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(reportsClient *reportapi.Client, registry *reportstore.Registry, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Reports:  reportsClient,
		Registry: registry,
		Log:      logger,
		ErrLog:   errLog,
	}
}

// ServeDashboard dispatches /dashboard to the role-specific view. Each role
// has exactly one reachable dashboard; anything else goes back to the landing
// page.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch role {
	case models.RoleSubmitter:
		http.Redirect(w, r, "/dashboard/submitter", http.StatusSeeOther)
	case models.RoleOrganization:
		http.Redirect(w, r, "/dashboard/organization", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
	}
}
