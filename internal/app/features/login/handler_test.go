package login_test

// Terminology: User Identifiers
//   - UserID / userID / user_id: The opaque identifier the auth service issues for a user
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/projectguardian/rescuehub/internal/app/authapi"
	uierrors "github.com/projectguardian/rescuehub/internal/app/features/errors"
	"github.com/projectguardian/rescuehub/internal/app/features/login"
	"github.com/projectguardian/rescuehub/internal/app/system/auth"
	"github.com/projectguardian/rescuehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, fake *testutil.FakeAuthService) *login.Handler {
	t.Helper()
	srv := fake.Server(t)
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	client := authapi.New(srv.URL, logger)
	return login.NewHandler(client, sessionMgr, uierrors.NewErrorLogger(logger), logger)
}

func postLogin(t *testing.T, h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Failed logins re-render the form, which may panic without initialized
	// templates.
	func() {
		defer func() { _ = recover() }()
		h.HandleLoginPost(rec, req)
	}()
	return rec
}

func TestHandleLoginPost_SubmitterRedirectsToSubmitterDashboard(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	fake.AddAccount("U1", "Asha Rao", "asha", "hunter2", "submitter")
	h := newTestHandler(t, fake)

	rec := postLogin(t, h, url.Values{
		"login_id": {"asha"},
		"password": {"hunter2"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/submitter" {
		t.Errorf("Location = %q, want /dashboard/submitter", loc)
	}
}

func TestHandleLoginPost_OrganizationRedirectsToOrganizationDashboard(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	fake.AddAccount("N7", "Paws & Claws Rescue", "paws", "hunter2", "ROLE_NGO")
	h := newTestHandler(t, fake)

	rec := postLogin(t, h, url.Values{
		"login_id": {"paws"},
		"password": {"hunter2"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/organization" {
		t.Errorf("Location = %q, want /dashboard/organization", loc)
	}
}

func TestHandleLoginPost_SetsSessionCookie(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	fake.AddAccount("U1", "Asha Rao", "asha", "hunter2", "submitter")
	h := newTestHandler(t, fake)

	rec := postLogin(t, h, url.Values{
		"login_id": {"asha"},
		"password": {"hunter2"},
	})

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be set after login")
	}
}

func TestHandleLoginPost_BadCredentialsDoesNotRedirect(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	fake.AddAccount("U1", "Asha Rao", "asha", "hunter2", "submitter")
	h := newTestHandler(t, fake)

	rec := postLogin(t, h, url.Values{
		"login_id": {"asha"},
		"password": {"wrong"},
	})

	if rec.Code == http.StatusSeeOther {
		t.Error("bad credentials should re-render the form, not redirect")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("bad credentials must not set a session cookie")
	}
}

func TestHandleLoginPost_UnknownRoleNeverEstablishesSession(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	fake.AddAccount("A1", "Legacy Admin", "admin", "hunter2", "ROLE_ADMIN")
	h := newTestHandler(t, fake)

	rec := postLogin(t, h, url.Values{
		"login_id": {"admin"},
		"password": {"hunter2"},
	})

	if rec.Code == http.StatusSeeOther {
		t.Error("unknown role should not redirect to a dashboard")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("unknown role must not set a session cookie")
	}
}

func TestHandleLoginPost_SafeReturnURL(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	fake.AddAccount("U1", "Asha Rao", "asha", "hunter2", "submitter")
	h := newTestHandler(t, fake)

	tests := []struct {
		name   string
		ret    string
		wantTo string
	}{
		{"relative path honored", "/dashboard/submitter?status=Resolved", "/dashboard/submitter?status=Resolved"},
		{"absolute URL rejected", "https://evil.example/phish", "/dashboard/submitter"},
		{"empty falls back to dashboard", "", "/dashboard/submitter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(t, h, url.Values{
				"login_id": {"asha"},
				"password": {"hunter2"},
				"return":   {tt.ret},
			})

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantTo {
				t.Errorf("Location = %q, want %q", loc, tt.wantTo)
			}
		})
	}
}

func TestServeLogin_SignedInRedirectsToDashboard(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	h := newTestHandler(t, fake)

	req := httptest.NewRequest("GET", "/login", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   "N7",
		Name: "Paws & Claws Rescue",
		Role: "organization",
	})
	rec := httptest.NewRecorder()

	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/organization" {
		t.Errorf("Location = %q, want /dashboard/organization", loc)
	}
}
