// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The opaque identifier the auth service issues for a user
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/projectguardian/rescuehub/internal/app/authapi"
	uierrors "github.com/projectguardian/rescuehub/internal/app/features/errors"
	"github.com/projectguardian/rescuehub/internal/app/system/auth"
	"github.com/projectguardian/rescuehub/internal/app/system/authz"
	"github.com/projectguardian/rescuehub/internal/app/system/timeouts"
	"github.com/projectguardian/rescuehub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *authapi.Client
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(authClient *authapi.Client, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       authClient,
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Notice    string
	LoginID   string // What the user typed (echoed back on error)
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Straight to the dashboard.
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, authz.DashboardPath(u.Role), http.StatusSeeOther)
		return
	}

	ret := query.Get(r, "return")

	notice := ""
	if query.Get(r, "registered") == "1" {
		notice = "Account created. Please log in."
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		Notice:    notice,
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")

	if loginID == "" {
		h.renderFormWithError(w, r, "Please enter your login ID.", loginID)
		return
	}
	if password == "" {
		h.renderFormWithError(w, r, "Please enter your password.", loginID)
		return
	}

	/*── verify credentials with the auth service ──────────────────────────*/

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ident, err := h.Auth.Login(ctx, loginID, password)
	switch {
	case errors.Is(err, authapi.ErrInvalidCredentials):
		h.renderFormWithError(w, r, "Incorrect login ID or password.", loginID)
		return
	case errors.Is(err, authapi.ErrUnknownRole):
		// The account exists but its role means nothing here; never
		// establish a session for it.
		h.Log.Warn("login rejected: unknown role", zap.String("login_id", loginID))
		h.renderFormWithError(w, r, "Your account type is not supported. Please contact an administrator.", loginID)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "auth service login", err, "Unable to sign in right now. Please try again.", "/login")
		return
	}

	/*── establish the session ─────────────────────────────────────────────*/

	if err := h.SessionMgr.Establish(w, r, ident, loginID); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("login_id", loginID))
		h.renderFormWithError(w, r, "Unable to create session. Please try again.", loginID)
		return
	}

	h.Log.Info("user logged in",
		zap.String("user_id", ident.ID),
		zap.String("role", ident.Role))

	ret := strings.TrimSpace(r.FormValue("return"))
	dest := urlutil.SafeReturn(ret, "", authz.DashboardPath(ident.Role))
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form with an error                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, loginID string) {
	// From POST, "return" will be in the form; from GET, we might rely on the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		Error:     msg,
		LoginID:   loginID,
		ReturnURL: ret,
	})
}
