// internal/app/features/dashboard/submitter.go
package dashboard

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/projectguardian/rescuehub/internal/app/reportapi"
	"github.com/projectguardian/rescuehub/internal/app/system/authz"
	"github.com/projectguardian/rescuehub/internal/app/system/gates"
	"github.com/projectguardian/rescuehub/internal/app/system/htmlsanitize"
	"github.com/projectguardian/rescuehub/internal/app/system/timeouts"
	"github.com/projectguardian/rescuehub/internal/app/system/viewdata"
	"github.com/projectguardian/rescuehub/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/submitter                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeSubmitter renders the submitter's own reports plus the submit form.
// The fetch is pre-filtered by identity on the backend, so the session never
// receives other submitters' reports.
func (h *Handler) ServeSubmitter(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	// Each role has exactly one dashboard; the other role's URL just goes home.
	if role != models.RoleSubmitter {
		http.Redirect(w, r, authz.DashboardPath(role), http.StatusSeeOther)
		return
	}

	store := h.Registry.ForIdentity(userID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fetched, err := h.Reports.ListReports(ctx, userID)
	if err != nil {
		// Initial-load fetch failures are not alerted; the last-known set is
		// served and the failure goes to the log.
		h.Log.Warn("submitter report fetch failed",
			zap.String("user_id", userID),
			zap.Error(err))
	} else {
		store.ReplaceAll(fetched)
	}

	templates.Render(w, r, "dashboard_submitter", submitterData{
		BaseVM:  viewdata.NewBaseVM(r, "My Reports", "/"),
		Flash:   query.Get(r, "flash"),
		Reports: newReportVMs(store.Snapshot()),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/submitter/reports                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleSubmitReport implements the submission contract: on success the
// created report is prepended to the store and the browser is redirected
// (PRG) with the backend's confirmation; on any failure the store is left
// untouched and the form re-renders with everything the user typed.
func (h *Handler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSubmitter(w, r, "Only submitters can create reports.", "/dashboard")
	if !res.OK {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/dashboard/submitter")
		return
	}

	form := reportForm{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		LocationText: strings.TrimSpace(r.FormValue("location_text")),
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		Date:         strings.TrimSpace(r.FormValue("date")),
		Time:         strings.TrimSpace(r.FormValue("time")),
		Day:          strings.TrimSpace(r.FormValue("day")),
	}

	if msg := validateReportForm(form); msg != "" {
		h.renderSubmitterForm(w, r, res.UserID, form, msg)
		return
	}

	draft := models.ReportDraft{
		Title:        htmlsanitize.Sanitize(form.Title),
		Description:  htmlsanitize.Sanitize(form.Description),
		LocationText: htmlsanitize.Sanitize(form.LocationText),
		ImageURL:     form.ImageURL,
		Date:         form.Date,
		Time:         form.Time,
		Day:          form.Day,
		SubmitterID:  res.UserID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, message, err := h.Reports.CreateReport(ctx, draft)
	if err != nil {
		h.Log.Warn("report submission failed",
			zap.String("user_id", res.UserID),
			zap.Error(err))
		h.renderSubmitterForm(w, r, res.UserID, form,
			reportapi.UserMessage(err, "Unable to submit your report right now. Please try again."))
		return
	}

	// Optimistic prepend; the redirect's fetch replaces it with server truth.
	h.Registry.ForIdentity(res.UserID).Prepend(created)

	h.Log.Info("report submitted",
		zap.String("user_id", res.UserID),
		zap.String("report_id", created.ID))

	if message == "" {
		message = "Report submitted successfully"
	}
	http.Redirect(w, r, "/dashboard/submitter?flash="+url.QueryEscape(message), http.StatusSeeOther)
}

// validateReportForm returns a user-facing message for the first missing
// required field, or "" when the draft is complete.
func validateReportForm(f reportForm) string {
	switch {
	case f.Title == "":
		return "Please enter a title."
	case f.Description == "":
		return "Please describe the animal and its condition."
	case f.LocationText == "":
		return "Please enter the location."
	case f.Date == "":
		return "Please enter the date."
	case f.Time == "":
		return "Please enter the time."
	case f.Day == "":
		return "Please enter the day."
	default:
		return ""
	}
}

// renderSubmitterForm re-renders the dashboard with the echoed form and an
// error, backed by the store's current snapshot (no re-fetch on a failed
// submit).
func (h *Handler) renderSubmitterForm(w http.ResponseWriter, r *http.Request, userID string, form reportForm, errMsg string) {
	store := h.Registry.ForIdentity(userID)

	templates.Render(w, r, "dashboard_submitter", submitterData{
		BaseVM:    viewdata.NewBaseVM(r, "My Reports", "/"),
		FormError: errMsg,
		Form:      form,
		Reports:   newReportVMs(store.Snapshot()),
	})
}
