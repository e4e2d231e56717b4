// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied", zap.Int("count", n))
	}

	if coreCfg.Env == "prod" && appCfg.DefaultMemberPassword == "Password123!" {
		logger.Warn("default_member_password is still the well-known default")
	}
	return nil
}
