// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/projectguardian/rescuehub/internal/app/system/auth"
	"github.com/projectguardian/rescuehub/internal/domain/models"
)

// UserCtx returns the user's role (lowercased), name, identity ID, and a
// found flag. If no user is present in context or the identity ID is empty,
// it returns "visitor", "", "", false. This ensures callers can trust that
// ok=true means a valid, authenticated user with an identity ID.
// The role is normalized to lowercase for consistent comparison.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	if user.ID == "" {
		// Empty identity ID in session - fail closed.
		// This should not happen in normal operation; indicates session corruption.
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// IsSubmitter reports whether the current request's user is a submitter.
func IsSubmitter(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleSubmitter
}

// IsOrganization reports whether the current request's user is an
// organization responder.
func IsOrganization(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleOrganization
}

// DashboardPath returns the dashboard a user with the given role lands on
// after login. Unknown roles get the generic dispatcher, which sorts it out
// (or sends the user to /unauthorized).
func DashboardPath(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleSubmitter:
		return "/dashboard/submitter"
	case models.RoleOrganization:
		return "/dashboard/organization"
	default:
		return "/dashboard"
	}
}
