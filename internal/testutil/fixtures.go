package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/projectguardian/rescuehub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SampleReport returns a report with sensible defaults for tests.
func SampleReport(id, status, submitterID string) models.Report {
	return models.Report{
		ID:           id,
		Title:        "Report " + id,
		Description:  "Description for " + id,
		LocationText: "Near the old mill",
		Status:       status,
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		SubmitterID:  submitterID,
	}
}

// FakeReportService is an in-memory stand-in for the report service. It
// speaks the same wire protocol the reportapi client expects, including the
// legacy field aliases, so handler tests can run against a real HTTP server.
type FakeReportService struct {
	mu      sync.Mutex
	nextID  int
	Reports []map[string]any

	// FailList makes GET /reports return a 500, simulating an outage.
	FailList bool
}

// NewFakeReportService creates an empty fake report service.
func NewFakeReportService() *FakeReportService {
	return &FakeReportService{nextID: 1}
}

// Seed adds a report to the backing set using canonical field names.
func (f *FakeReportService) Seed(r models.Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reports = append(f.Reports, map[string]any{
		"id":           r.ID,
		"title":        r.Title,
		"description":  r.Description,
		"locationText": r.LocationText,
		"imageUrl":     r.ImageURL,
		"date":         r.Date,
		"time":         r.Time,
		"day":          r.Day,
		"status":       r.Status,
		"createdAt":    r.CreatedAt.Format(time.RFC3339),
		"submitterId":  r.SubmitterID,
	})
}

// Server starts an httptest server for the fake and registers its shutdown.
func (f *FakeReportService) Server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	mux.Get("/reports", f.handleList)
	mux.Post("/reports", f.handleCreate)
	mux.Put("/reports/{id}/resolve", f.handleResolve)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (f *FakeReportService) handleList(w http.ResponseWriter, r *http.Request) {
	if f.FailList {
		http.Error(w, `{"error":"backend unavailable"}`, http.StatusInternalServerError)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	userID := r.URL.Query().Get("userId")
	out := make([]map[string]any, 0, len(f.Reports))
	for _, rep := range f.Reports {
		if userID != "" && rep["submitterId"] != userID {
			continue
		}
		out = append(out, rep)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (f *FakeReportService) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if title, _ := body["title"].(string); strings.TrimSpace(title) == "" {
		http.Error(w, `{"error":"title is required"}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	body["id"] = fmt.Sprintf("R%d", f.nextID)
	f.nextID++
	if _, ok := body["status"]; !ok {
		body["status"] = models.StatusSubmitted
	}
	body["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	f.Reports = append([]map[string]any{body}, f.Reports...)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "Report submitted successfully",
		"report":  body,
	})
}

func (f *FakeReportService) handleResolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !models.ValidStatus(body.Status) {
		http.Error(w, `{"error":"invalid status"}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rep := range f.Reports {
		if rep["id"] == id {
			rep["status"] = body.Status
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Status updated"})
			return
		}
	}
	http.Error(w, `{"error":"report not found"}`, http.StatusNotFound)
}

// FakeAuthService is an in-memory stand-in for the auth service. Accounts
// are keyed by login ID; Register adds to them, Login checks them.
type FakeAuthService struct {
	mu       sync.Mutex
	accounts map[string]fakeAccount
}

type fakeAccount struct {
	ID       string
	FullName string
	Password string
	Role     string
}

// NewFakeAuthService creates a fake auth service with no accounts.
func NewFakeAuthService() *FakeAuthService {
	return &FakeAuthService{accounts: make(map[string]fakeAccount)}
}

// AddAccount seeds a login the fake will accept.
func (f *FakeAuthService) AddAccount(id, fullName, loginID, password, role string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[loginID] = fakeAccount{ID: id, FullName: fullName, Password: password, Role: role}
}

// Server starts an httptest server for the fake and registers its shutdown.
func (f *FakeAuthService) Server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	mux.Post("/login", f.handleLogin)
	mux.Post("/register", f.handleRegister)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (f *FakeAuthService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LoginID  string `json:"loginId"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	acct, ok := f.accounts[body.LoginID]
	f.mu.Unlock()
	if !ok || acct.Password != body.Password {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":       acct.ID,
		"fullName": acct.FullName,
		"role":     acct.Role,
	})
}

func (f *FakeAuthService) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName string `json:"fullName"`
		LoginID  string `json:"loginId"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if body.LoginID == "" || body.Password == "" {
		http.Error(w, `{"error":"loginId and password are required"}`, http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[body.LoginID]; exists {
		http.Error(w, `{"error":"login ID already taken"}`, http.StatusConflict)
		return
	}
	id := fmt.Sprintf("U%d", len(f.accounts)+1)
	f.accounts[body.LoginID] = fakeAccount{ID: id, FullName: body.FullName, Password: body.Password, Role: body.Role}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": "Registered successfully", "id": id})
}
