// internal/app/features/members/handler.go
package members

import (
	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	organizationstore "github.com/rushtracker/rushtracker/internal/app/store/organizations"
	"github.com/rushtracker/rushtracker/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Members.
type Handler struct {
	Client  *mongo.Client
	Members *memberstore.Store
	Orgs    *organizationstore.Store
	Tokens  *auth.TokenManager

	// DefaultPassword is the initial credential assigned to members
	// created by a leader. Members rotate it via reset-password.
	DefaultPassword string

	Log *zap.Logger
}

// NewHandler constructs a Members handler.
func NewHandler(client *mongo.Client, db *mongo.Database, tokens *auth.TokenManager, defaultPassword string, logger *zap.Logger) *Handler {
	return &Handler{
		Client:          client,
		Members:         memberstore.New(db),
		Orgs:            organizationstore.New(db),
		Tokens:          tokens,
		DefaultPassword: defaultPassword,
		Log:             logger,
	}
}
