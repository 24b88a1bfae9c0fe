// internal/app/features/register/handler.go
package register

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/projectguardian/rescuehub/internal/app/authapi"
	uierrors "github.com/projectguardian/rescuehub/internal/app/features/errors"
	"github.com/projectguardian/rescuehub/internal/app/system/auth"
	"github.com/projectguardian/rescuehub/internal/app/system/authz"
	"github.com/projectguardian/rescuehub/internal/app/system/timeouts"
	"github.com/projectguardian/rescuehub/internal/app/system/viewdata"
	"github.com/projectguardian/rescuehub/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Auth   *authapi.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(authClient *authapi.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:   authClient,
		Log:    logger,
		ErrLog: errLog,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type registerFormData struct {
	viewdata.BaseVM
	Error    string
	FullName string
	LoginID  string
	Role     string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /register                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Straight to the dashboard.
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, authz.DashboardPath(u.Role), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create Account", "/"),
		Role:   models.RoleSubmitter,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /register                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/register")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")
	role := models.NormalizeRole(r.FormValue("role"))

	/*── validate ──────────────────────────────────────────────────────────*/

	fail := func(msg string) {
		h.renderFormWithError(w, r, msg, fullName, loginID, role)
	}

	switch {
	case fullName == "":
		fail("Please enter your full name.")
		return
	case loginID == "":
		fail("Please choose a login ID.")
		return
	case password == "":
		fail("Please choose a password.")
		return
	case len(password) < 8:
		fail("Password must be at least 8 characters.")
		return
	case password != confirm:
		fail("Passwords do not match.")
		return
	case role == "":
		fail("Please choose an account type.")
		return
	}

	/*── create the account with the auth service ──────────────────────────*/

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Auth.Register(ctx, fullName, loginID, password, role)
	switch {
	case errors.Is(err, authapi.ErrLoginTaken):
		fail("That login ID is already taken. Please choose another.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "auth service register", err, "Unable to create your account right now. Please try again.", "/register")
		return
	}

	h.Log.Info("user registered",
		zap.String("login_id", loginID),
		zap.String("role", role))

	// The new account is not logged in; send the user through the login flow.
	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form with an error                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, fullName, loginID, role string) {
	templates.Render(w, r, "register", registerFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Create Account", "/"),
		Error:    msg,
		FullName: fullName,
		LoginID:  loginID,
		Role:     role,
	})
}
