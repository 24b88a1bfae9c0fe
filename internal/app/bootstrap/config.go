// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for RescueHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: report_api_url, session_name, etc.
//   - Environment variables: RESCUEHUB_REPORT_API_URL, RESCUEHUB_SESSION_NAME, etc.
//   - Command-line flags: --report_api_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "report_api_url", Default: "http://localhost:8080/api", Desc: "Report service base URL"},
	{Name: "auth_api_url", Default: "http://localhost:8080/api/auth", Desc: "Auth service base URL"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "rescuehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session lifetime (e.g., 24h, 8h, 30m)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, RESCUEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RESCUEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		ReportAPIURL: appValues.String("report_api_url"),
		AuthAPIURL:   appValues.String("auth_api_url"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// RescueHub validates the collaborator URLs so a misconfigured endpoint
// fails at startup rather than on the first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateServiceURL(appCfg.ReportAPIURL); err != nil {
		logger.Error("invalid report_api_url", zap.Error(err))
		return fmt.Errorf("invalid report_api_url: %w", err)
	}
	if err := validateServiceURL(appCfg.AuthAPIURL); err != nil {
		logger.Error("invalid auth_api_url", zap.Error(err))
		return fmt.Errorf("invalid auth_api_url: %w", err)
	}
	return nil
}

func validateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
