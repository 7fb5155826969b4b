// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background workers. In-flight fetches are left to finish on
// their own; their results are simply never rendered.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Sweeper != nil {
		logger.Info("stopping view sweeper")
		deps.Sweeper.Stop()
	}
	if deps.Views != nil {
		logger.Info("dropping dashboard views", zap.Int("count", deps.Views.Len()))
	}
	return nil
}
