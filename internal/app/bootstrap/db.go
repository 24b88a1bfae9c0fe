// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/projectguardian/rescuehub/internal/app/authapi"
	"github.com/projectguardian/rescuehub/internal/app/reportapi"
	reportstore "github.com/projectguardian/rescuehub/internal/app/store/reports"
	"go.uber.org/zap"
)

// ConnectDB constructs the collaborator clients. No connections are opened
// here; both services are plain HTTP and reachability is checked by /health
// rather than at startup, so the app can come up before its collaborators.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	logger.Info("configuring collaborator clients",
		zap.String("report_api_url", appCfg.ReportAPIURL),
		zap.String("auth_api_url", appCfg.AuthAPIURL))

	return DBDeps{
		Reports:  reportapi.New(appCfg.ReportAPIURL, logger),
		Auth:     authapi.New(appCfg.AuthAPIURL, logger),
		Registry: reportstore.NewRegistry(),
	}, nil
}

// EnsureSchema is a no-op: the report and auth services own their storage.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
