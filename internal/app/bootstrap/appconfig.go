// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where you put everything specific to YOUR application:
// collaborator service endpoints, session settings, feature flags.
type AppConfig struct {
	// Collaborator service endpoints
	ReportAPIURL string // report service root (e.g., http://localhost:8080/api)
	AuthAPIURL   string // auth service root (e.g., http://localhost:8080/api/auth)

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: rescuehub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session lifetime before the cookie expires
}
