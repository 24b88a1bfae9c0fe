package models

import "strings"

// Roles a session identity can hold. The auth service historically issued
// Spring-style authority strings (ROLE_USER / ROLE_NGO); NormalizeRole maps
// both spellings onto the canonical lowercase values.
const (
	RoleSubmitter    = "submitter"
	RoleOrganization = "organization"
)

// Identity is the authenticated user as handed back by the auth service.
// It is immutable for the lifetime of the session and lives only in the
// session cookie; a cleared cookie clears the identity.
type Identity struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// NormalizeRole maps a role string from the auth service onto one of the
// canonical role constants. Unknown roles come back empty so callers can
// fail closed.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "submitter", "role_user", "user":
		return RoleSubmitter
	case "organization", "role_ngo", "ngo":
		return RoleOrganization
	default:
		return ""
	}
}
