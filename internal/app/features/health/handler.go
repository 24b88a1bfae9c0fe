package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/projectguardian/rescuehub/internal/app/reportapi"
	"github.com/projectguardian/rescuehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Reports *reportapi.Client
	Log     *zap.Logger
}

// NewHandler constructs a health Handler with the report service client and
// logger.
func NewHandler(reportsClient *reportapi.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Reports: reportsClient,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status        string `json:"status"`
	ReportService string `json:"report_service"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "report_service":"connected" }
//
// On backend failure: 503 and
//
//	{ "status":"error", "report_service":"disconnected", "message":"Report service unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:        "ok",
		ReportService: "connected",
	}

	if err := h.Reports.Ping(ctx); err != nil {
		h.Log.Error("health-check: report service ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.ReportService = "disconnected"
		resp.Message = "Report service unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
