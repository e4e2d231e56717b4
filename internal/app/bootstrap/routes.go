// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	candidatesfeature "github.com/rushtracker/rushtracker/internal/app/features/candidates"
	eventsfeature "github.com/rushtracker/rushtracker/internal/app/features/events"
	healthfeature "github.com/rushtracker/rushtracker/internal/app/features/health"
	membersfeature "github.com/rushtracker/rushtracker/internal/app/features/members"
	organizationsfeature "github.com/rushtracker/rushtracker/internal/app/features/organizations"
	uploadsfeature "github.com/rushtracker/rushtracker/internal/app/features/uploads"
	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
	"github.com/rushtracker/rushtracker/internal/app/system/blobrelay"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. RushTracker builds the token
// manager, wires the per-request member loader, and mounts the JSON API
// feature routers under /api/*.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh member data on every request, so deactivations and role
	// changes take effect immediately.
	tokens.SetUserFetcher(memberstore.NewFetcher(deps.MongoDatabase))

	// Uploaded images land in a local directory and are served back
	// under the configured URL prefix.
	relay, err := blobrelay.NewLocal(appCfg.UploadDir, strings.TrimRight(appCfg.BaseURL, "/")+appCfg.UploadURLPrefix)
	if err != nil {
		logger.Error("upload storage init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token into a caller
	// in context. Anonymous requests pass through; RequireSignedIn on
	// the protected groups decides whether that matters.
	r.Use(tokens.LoadBearerUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Serve uploaded files with pre-compressed file support.
	r.Handle(appCfg.UploadURLPrefix+"/*", fileserver.Handler(appCfg.UploadURLPrefix, appCfg.UploadDir))

	orgHandler := organizationsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/organizations", organizationsfeature.Routes(orgHandler))

	memberHandler := membersfeature.NewHandler(deps.MongoClient, deps.MongoDatabase, tokens, appCfg.DefaultMemberPassword, logger)
	r.Mount("/api/members", membersfeature.Routes(memberHandler))

	candidateHandler := candidatesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/candidates", candidatesfeature.Routes(candidateHandler))

	eventHandler := eventsfeature.NewHandler(deps.MongoClient, deps.MongoDatabase, logger)
	r.Mount("/api/events", eventsfeature.Routes(eventHandler))

	uploadHandler := uploadsfeature.NewHandler(relay, logger)
	r.Mount("/api/uploads", uploadsfeature.Routes(uploadHandler))

	return r, nil
}
