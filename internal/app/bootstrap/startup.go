// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/projectguardian/rescuehub/internal/app/resources"
	"github.com/projectguardian/rescuehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after backends are
// configured, but before the HTTP handler is built. It is the place to load
// shared resources (like templates), warm caches, or perform any app-wide
// setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts configured from environment", zap.Int("overrides", n))
	}
	return nil
}
