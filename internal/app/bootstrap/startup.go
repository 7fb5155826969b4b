// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/modeldash/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after backends are built
// but before the HTTP handler is. It applies configured timeouts and starts
// the idle view sweeper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Ping: appCfg.HealthTimeout})

	if deps.Sweeper != nil {
		deps.Sweeper.Start()
	}
	return nil
}
