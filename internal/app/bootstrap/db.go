// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/modeldash/internal/app/features/dashboard"
	"github.com/dalemusser/modeldash/internal/app/system/modelsapi"
	"github.com/dalemusser/modeldash/internal/app/system/ratelimit"
	"github.com/dalemusser/modeldash/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the back-end dependencies. Nothing is dialed here: the
// models API is only contacted when a view fetches or /health probes it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	views := dashboard.NewRegistry()
	mounts := ratelimit.New(appCfg.MountRateLimit, time.Minute)

	deps := DBDeps{
		ModelsAPI: modelsapi.New(appCfg.APIBase, nil),
		Views:     views,
		Mounts:    mounts,
		Sweeper:   workers.NewViewSweeper(views, logger, appCfg.ViewSweepInterval, appCfg.ViewIdleTTL, mounts),
	}

	logger.Info("models backend client ready", zap.String("api_base", deps.ModelsAPI.BaseURL()))
	return deps, nil
}

// EnsureSchema sets up indexes or schema as needed. There is no schema.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
