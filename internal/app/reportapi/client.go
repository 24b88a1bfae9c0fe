// Package reportapi is the HTTP client for the report service, the system
// of record for rescue reports. The client performs a single attempt per
// call (no retries) and distinguishes transport failures from structured
// rejections so handlers can surface the backend's own message.
package reportapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/projectguardian/rescuehub/internal/domain/models"
	"go.uber.org/zap"
)

// Client talks to the report service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a report service client. baseURL is the service root, e.g.
// "http://localhost:8080/api".
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        logger,
	}
}

// APIError is a structured rejection from the report service ({"error": ...}).
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("report service rejected request (%d): %s", e.StatusCode, e.Message)
}

// createResponse is the success envelope for POST /reports.
type createResponse struct {
	Message string    `json:"message"`
	Report  RawReport `json:"report"`
}

// updateResponse is the success envelope for PUT /reports/{id}/resolve.
type updateResponse struct {
	Message string `json:"message"`
}

// ListReports fetches reports, normalized, in the order the service returned
// them. An empty userID fetches the global set; a non-empty userID asks the
// service to constrain the result to that submitter, so callers never see
// other submitters' reports.
func (c *Client) ListReports(ctx context.Context, userID string) ([]models.Report, error) {
	apiURL := c.baseURL + "/reports"
	if userID != "" {
		apiURL += "?userId=" + url.QueryEscape(userID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	var raws []RawReport
	if err := c.do(req, &raws); err != nil {
		return nil, err
	}
	return NormalizeAll(raws, time.Now().UTC()), nil
}

// CreateReport submits a draft and returns the service's confirmation
// message along with the created report, normalized.
func (c *Client) CreateReport(ctx context.Context, draft models.ReportDraft) (models.Report, string, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return models.Report{}, "", fmt.Errorf("encode report draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reports", bytes.NewReader(body))
	if err != nil {
		return models.Report{}, "", fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp createResponse
	if err := c.do(req, &resp); err != nil {
		return models.Report{}, "", err
	}
	return Normalize(resp.Report, time.Now().UTC()), resp.Message, nil
}

// UpdateStatus asks the service to move a report to the given status on
// behalf of the acting organization user. Workflow legality is the caller's
// responsibility; the client only carries the request.
func (c *Client) UpdateStatus(ctx context.Context, reportID, status, orgUserID string) (string, error) {
	payload := struct {
		Status    string `json:"status"`
		OrgUserID string `json:"organizationUserId"`
	}{Status: status, OrgUserID: orgUserID}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode status update: %w", err)
	}

	apiURL := fmt.Sprintf("%s/reports/%s/resolve", c.baseURL, url.PathEscape(reportID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp updateResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Ping checks that the report service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reports", nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("report service unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// do executes a request with a correlation ID, decoding a success body into
// out or a failure body into an APIError.
func (c *Client) do(req *http.Request, out any) error {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call report service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		c.log.Warn("report service error",
			zap.String("request_id", reqID),
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode report service response: %w", err)
	}
	return nil
}

// UserMessage extracts a message suitable for showing the user: the
// backend's own error text when the call produced a structured rejection,
// otherwise the given fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
