// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, rendering appropriate error
// pages when checks fail.
//
// # Three-Tier Authorization Pattern
//
// Rescue Hub uses a three-tier authorization approach:
//
//  1. Route-Level Middleware (auth.RequireSignedIn, auth.RequireRole)
//     Applied in routes.go files for coarse-grained access control.
//     Example: sm.RequireRole("organization") ensures all routes in a group
//     require an organization user.
//     When middleware handles role checking, handlers don't need gates.
//
//  2. Handler-Level Gates (this package)
//     Used in handlers that need role checks WITHOUT route-level middleware,
//     or need different role requirements than the route group.
//     Gates render error pages and return user context (role, name, userID).
//     Example: gates.RequireOrganization for the shared dashboard dispatcher.
//
//  3. Policy Layer (internal/app/policy/*)
//     Used for request-specific authorization, such as validating a status
//     transition. Policies return errors - callers handle rendering.
//
// # When to Use Each Tier
//
// Use middleware when: All routes in a group have the same role requirements.
// Use gates when: Individual handlers need different role checks than the route.
// Use policies when: Authorization depends on the specific request being made.
//
// # Avoiding Redundancy
//
// Don't use gates in handlers that are behind role-specific middleware.
// If routes.go has RequireRole("organization"), handlers don't need
// gates.RequireOrganization. Instead, use authz.UserCtx(r) to get user
// context without re-checking role.
package gates

import (
	"net/http"

	uierrors "github.com/projectguardian/rescuehub/internal/app/features/errors"
	"github.com/projectguardian/rescuehub/internal/app/system/authz"
	"github.com/projectguardian/rescuehub/internal/domain/models"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID string
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not authenticated, it renders an unauthorized error and returns OK=false.
// The loginURL parameter specifies where to redirect for login.
func RequireAuth(w http.ResponseWriter, r *http.Request, loginURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, loginURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireSubmitter ensures the user is authenticated and has the submitter role.
// If not authenticated, renders unauthorized error.
// If authenticated but not a submitter, renders forbidden error with the
// provided message and fallback URL.
func RequireSubmitter(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	if role != models.RoleSubmitter {
		uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireOrganization ensures the user is authenticated and has the
// organization role.
// If not authenticated, renders unauthorized error.
// If authenticated but not an organization user, renders forbidden error.
func RequireOrganization(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	if role != models.RoleOrganization {
		uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAnyRole ensures the user is authenticated and has one of the specified roles.
// If not authenticated, renders unauthorized error.
// If authenticated but role not in allowed list, renders forbidden error.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string, allowedRoles ...string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}

	for _, allowed := range allowedRoles {
		if role == allowed {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}

	uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
	return Result{OK: false}
}
