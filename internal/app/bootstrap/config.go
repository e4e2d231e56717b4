// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for RushTracker.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: RUSHTRACKER_MONGO_URI, RUSHTRACKER_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "rushtracker", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing secret (must be strong in production)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Bearer token lifetime (e.g., 24h, 8h)"},

	{Name: "default_member_password", Default: "Password123!", Desc: "Initial credential for leader-created members"},

	{Name: "upload_dir", Default: "./uploads", Desc: "Local directory for uploaded images"},
	{Name: "upload_url_prefix", Default: "/files/uploads", Desc: "URL prefix uploaded images are served under"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL prepended to upload links"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, RUSHTRACKER_* for app), and
// command-line flags, with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RUSHTRACKER", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", 24*time.Hour),

		DefaultMemberPassword: appValues.String("default_member_password"),

		UploadDir:       appValues.String("upload_dir"),
		UploadURLPrefix: appValues.String("upload_url_prefix"),
		BaseURL:         appValues.String("base_url"),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked up front so configuration mistakes surface
// before a connection attempt; in production the dev-default secret is
// rejected.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.DefaultMemberPassword == "" {
		return fmt.Errorf("default_member_password must not be empty")
	}
	if coreCfg.Env == "prod" {
		if len(appCfg.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters in production")
		}
		if appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("jwt_secret is still the development default")
		}
	}
	return nil
}
