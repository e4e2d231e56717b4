// internal/app/features/organizations/handler.go
package organizations

import (
	organizationstore "github.com/rushtracker/rushtracker/internal/app/store/organizations"
	"github.com/rushtracker/rushtracker/internal/app/store/tagset"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Organizations.
type Handler struct {
	Orgs *organizationstore.Store
	Tags *tagset.Store
	Log  *zap.Logger
}

// NewHandler constructs an Organizations handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs: organizationstore.New(db),
		Tags: tagset.New(db.Collection("organizations")),
		Log:  logger,
	}
}
