// internal/app/features/dashboard/organization.go
package dashboard

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/projectguardian/rescuehub/internal/app/policy/statuspolicy"
	"github.com/projectguardian/rescuehub/internal/app/reportapi"
	"github.com/projectguardian/rescuehub/internal/app/system/authz"
	"github.com/projectguardian/rescuehub/internal/app/system/gates"
	"github.com/projectguardian/rescuehub/internal/app/system/timeouts"
	"github.com/projectguardian/rescuehub/internal/app/system/viewdata"
	"github.com/projectguardian/rescuehub/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/organization                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeOrganization renders the global triage view: every report in the
// system, a status filter applied purely over the fetched set, and counters
// computed fresh from the unfiltered store.
func (h *Handler) ServeOrganization(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if role != models.RoleOrganization {
		http.Redirect(w, r, authz.DashboardPath(role), http.StatusSeeOther)
		return
	}

	store := h.Registry.ForIdentity(userID)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fetched, err := h.Reports.ListReports(ctx, "")
	if err != nil {
		h.Log.Warn("organization report fetch failed",
			zap.String("user_id", userID),
			zap.Error(err))
	} else {
		store.ReplaceAll(fetched)
	}

	filter := query.Get(r, "status")
	counts := store.CountByStatus()

	templates.Render(w, r, "dashboard_organization", organizationData{
		BaseVM:          viewdata.NewBaseVM(r, "Rescue Dashboard", "/"),
		Flash:           query.Get(r, "flash"),
		FlashError:      query.Get(r, "flash_error"),
		Filter:          filter,
		Total:           store.Len(),
		CountSubmitted:  counts[models.StatusSubmitted],
		CountInProgress: counts[models.StatusInProgress],
		CountResolved:   counts[models.StatusResolved],
		Reports:         newReportVMs(store.FilterByStatus(filter)),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/organization/reports/{id}/status                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleStatusUpdate moves a report one step along the workflow. The edge is
// validated against statuspolicy before any backend call; the backend is
// only consulted for legal edges. After a successful update the store's
// entry is patched in place and the redirect's fetch reconciles against
// server truth.
func (h *Handler) HandleStatusUpdate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireOrganization(w, r, "Only rescue organizations can update report status.", "/dashboard")
	if !res.OK {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/dashboard/organization")
		return
	}

	reportID := chi.URLParam(r, "id")
	target := r.FormValue("status")
	filter := r.FormValue("filter") // preserved across the redirect

	store := h.Registry.ForIdentity(res.UserID)

	current, found := store.Get(reportID)
	if !found {
		h.redirectOrganization(w, r, filter, "", "That report is no longer in view. Refresh and try again.")
		return
	}

	if err := statuspolicy.CanTransition(res.Role, current.Status, target); err != nil {
		// Workflow violation: rejected here, the backend is never called.
		h.Log.Warn("illegal status transition rejected",
			zap.String("user_id", res.UserID),
			zap.String("report_id", reportID),
			zap.String("from", current.Status),
			zap.String("to", target))
		h.redirectOrganization(w, r, filter, "", "That status change is not allowed.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	message, err := h.Reports.UpdateStatus(ctx, reportID, target, res.UserID)
	if err != nil {
		h.Log.Warn("status update failed",
			zap.String("user_id", res.UserID),
			zap.String("report_id", reportID),
			zap.Error(err))
		h.redirectOrganization(w, r, filter, "",
			reportapi.UserMessage(err, "Unable to update the report right now. Please try again."))
		return
	}

	store.UpdateStatus(reportID, target)

	h.Log.Info("report status updated",
		zap.String("user_id", res.UserID),
		zap.String("report_id", reportID),
		zap.String("status", target))

	if message == "" {
		message = "Status updated"
	}
	h.redirectOrganization(w, r, filter, message, "")
}

// redirectOrganization sends the browser back to the triage view, keeping the
// active filter and carrying a flash message.
func (h *Handler) redirectOrganization(w http.ResponseWriter, r *http.Request, filter, flash, flashError string) {
	q := url.Values{}
	if filter != "" {
		q.Set("status", filter)
	}
	if flash != "" {
		q.Set("flash", flash)
	}
	if flashError != "" {
		q.Set("flash_error", flashError)
	}

	dest := "/dashboard/organization"
	if enc := q.Encode(); enc != "" {
		dest += "?" + enc
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
