package reportapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/projectguardian/rescuehub/internal/domain/models"
	"go.uber.org/zap"
)

func TestListReports_All(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reports" {
			t.Errorf("path = %q, want /reports", r.URL.Path)
		}
		if r.URL.Query().Get("userId") != "" {
			t.Errorf("unexpected userId query %q for global fetch", r.URL.Query().Get("userId"))
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "r1", "title": "Injured dog", "status": "Submitted"},
			{"id": "r2", "reportTitle": "Stray cat"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, zap.NewNop())
	reports, err := c.ListReports(context.Background(), "")
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("len = %d, want 2", len(reports))
	}
	if reports[0].ID != "r1" || reports[1].ID != "r2" {
		t.Errorf("order not preserved: %q, %q", reports[0].ID, reports[1].ID)
	}
	if reports[1].Title != "Stray cat" {
		t.Errorf("alias not normalized: Title = %q", reports[1].Title)
	}
	if reports[1].Status != models.StatusSubmitted {
		t.Errorf("missing status not defaulted: %q", reports[1].Status)
	}
}

func TestListReports_ScopedToSubmitter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("userId"); got != "U1" {
			t.Errorf("userId query = %q, want U1", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer srv.Close()

	c := New(srv.URL, zap.NewNop())
	if _, err := c.ListReports(context.Background(), "U1"); err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
}

func TestCreateReport_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var draft map[string]any
		json.NewDecoder(r.Body).Decode(&draft)
		if draft["title"] != "Injured dog" {
			t.Errorf("title = %v, want Injured dog", draft["title"])
		}
		if draft["submitterId"] != "U1" {
			t.Errorf("submitterId = %v, want U1", draft["submitterId"])
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Report submitted successfully!",
			"report": map[string]any{
				"id": "r9", "title": "Injured dog", "submitterId": "U1",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, zap.NewNop())
	report, msg, err := c.CreateReport(context.Background(), models.ReportDraft{
		Title:        "Injured dog",
		Description:  "Leg wound",
		LocationText: "Main St",
		Date:         "2024-05-01",
		Time:         "14:00",
		Day:          "Wednesday",
		SubmitterID:  "U1",
	})
	if err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	if msg != "Report submitted successfully!" {
		t.Errorf("message = %q", msg)
	}
	if report.ID != "r9" {
		t.Errorf("ID = %q, want r9", report.ID)
	}
	if report.Status != models.StatusSubmitted {
		t.Errorf("Status = %q, want default %q", report.Status, models.StatusSubmitted)
	}
	if report.SubmitterID != "U1" {
		t.Errorf("SubmitterID = %q, want U1", report.SubmitterID)
	}
}

func TestCreateReport_BackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "title is required"})
	}))
	defer srv.Close()

	c := New(srv.URL, zap.NewNop())
	_, _, err := c.CreateReport(context.Background(), models.ReportDraft{})
	if err == nil {
		t.Fatal("expected error for rejected create")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "title is required" {
		t.Errorf("Message = %q, want backend's error text", apiErr.Message)
	}
	if got := UserMessage(err, "fallback"); got != "title is required" {
		t.Errorf("UserMessage = %q, want backend's error text", got)
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %q, want PUT", r.Method)
		}
		if r.URL.Path != "/reports/r1/resolve" {
			t.Errorf("path = %q, want /reports/r1/resolve", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != models.StatusInProgress {
			t.Errorf("status = %q, want %q", body["status"], models.StatusInProgress)
		}
		if body["organizationUserId"] != "O1" {
			t.Errorf("organizationUserId = %q, want O1", body["organizationUserId"])
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Report status updated"})
	}))
	defer srv.Close()

	c := New(srv.URL, zap.NewNop())
	msg, err := c.UpdateStatus(context.Background(), "r1", models.StatusInProgress, "O1")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if msg != "Report status updated" {
		t.Errorf("message = %q", msg)
	}
}

func TestUserMessage_TransportErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, zap.NewNop())
	_, err := c.ListReports(context.Background(), "")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if got := UserMessage(err, "Unknown error"); got != "Unknown error" {
		t.Errorf("UserMessage = %q, want fallback", got)
	}
}
