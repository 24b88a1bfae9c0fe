package register_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/projectguardian/rescuehub/internal/app/authapi"
	uierrors "github.com/projectguardian/rescuehub/internal/app/features/errors"
	"github.com/projectguardian/rescuehub/internal/app/features/register"
	"github.com/projectguardian/rescuehub/internal/app/system/auth"
	"github.com/projectguardian/rescuehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, fake *testutil.FakeAuthService) *register.Handler {
	t.Helper()
	srv := fake.Server(t)
	logger := zap.NewNop()
	client := authapi.New(srv.URL, logger)
	return register.NewHandler(client, uierrors.NewErrorLogger(logger), logger)
}

func postForm(t *testing.T, h *register.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Validation failures re-render the form, which may panic without
	// initialized templates.
	func() {
		defer func() { _ = recover() }()
		h.HandleRegisterPost(rec, req)
	}()
	return rec
}

func TestHandleRegisterPost_Success(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	h := newTestHandler(t, fake)

	rec := postForm(t, h, url.Values{
		"full_name":        {"Asha Rao"},
		"login_id":         {"asha"},
		"password":         {"hunter2hunter2"},
		"password_confirm": {"hunter2hunter2"},
		"role":             {"submitter"},
	})

	if rec.Code != 303 {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?registered=1" {
		t.Errorf("Location = %q, want /login?registered=1", loc)
	}
}

func TestHandleRegisterPost_DuplicateLoginID(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	fake.AddAccount("U1", "Asha Rao", "asha", "pw", "submitter")
	h := newTestHandler(t, fake)

	rec := postForm(t, h, url.Values{
		"full_name":        {"Another Asha"},
		"login_id":         {"asha"},
		"password":         {"hunter2hunter2"},
		"password_confirm": {"hunter2hunter2"},
		"role":             {"submitter"},
	})

	// Conflict re-renders the form rather than redirecting.
	if rec.Code == 303 {
		t.Error("duplicate login ID should not redirect to login")
	}
}

func TestHandleRegisterPost_PasswordMismatch(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	h := newTestHandler(t, fake)

	rec := postForm(t, h, url.Values{
		"full_name":        {"Asha Rao"},
		"login_id":         {"asha"},
		"password":         {"hunter2hunter2"},
		"password_confirm": {"different"},
		"role":             {"submitter"},
	})

	if rec.Code == 303 {
		t.Error("mismatched passwords should not redirect to login")
	}
}

func TestHandleRegisterPost_MissingFields(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	h := newTestHandler(t, fake)

	rec := postForm(t, h, url.Values{
		"login_id": {"asha"},
	})

	if rec.Code == 303 {
		t.Error("missing fields should not redirect to login")
	}
}

func TestServeRegister_SignedInRedirectsToDashboard(t *testing.T) {
	fake := testutil.NewFakeAuthService()
	h := newTestHandler(t, fake)

	req := httptest.NewRequest("GET", "/register", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   "U1",
		Name: "Asha Rao",
		Role: "submitter",
	})
	rec := httptest.NewRecorder()

	h.ServeRegister(rec, req)

	if rec.Code != 303 {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/submitter" {
		t.Errorf("Location = %q, want /dashboard/submitter", loc)
	}
}
