// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/projectguardian/rescuehub/internal/app/store/reports"
	"github.com/projectguardian/rescuehub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Registry   *reports.Registry
}

func NewHandler(sessionMgr *auth.SessionManager, registry *reports.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Registry:   registry,
	}
}

// ServeLogout ends the session and discards the session's report store.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		if h.Registry != nil {
			h.Registry.Drop(u.ID)
		}
		h.Log.Info("user logged out", zap.String("user_id", u.ID))
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		// We don't really care about the status code here; HTMX uses HX-Redirect.
		w.WriteHeader(http.StatusOK)
		return
	}

	// Non-HTMX: standard redirect home.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
