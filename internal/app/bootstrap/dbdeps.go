// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/projectguardian/rescuehub/internal/app/authapi"
	"github.com/projectguardian/rescuehub/internal/app/reportapi"
	reportstore "github.com/projectguardian/rescuehub/internal/app/store/reports"
)

// DBDeps holds back-end dependencies for the app. RescueHub owns no
// database; its backends are the report and auth collaborator services,
// plus the in-process registry of per-session report stores.
type DBDeps struct {
	Reports  *reportapi.Client
	Auth     *authapi.Client
	Registry *reportstore.Registry
}
