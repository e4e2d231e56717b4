// internal/app/features/candidates/handler.go
package candidates

import (
	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	"github.com/rushtracker/rushtracker/internal/app/store/queries/submissionviews"
	"github.com/rushtracker/rushtracker/internal/app/store/tagset"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Candidates.
type Handler struct {
	Candidates *candidatestore.Store
	Tags       *tagset.Store
	Resolver   *submissionviews.Resolver
	Log        *zap.Logger
}

// NewHandler constructs a Candidates handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	cands := candidatestore.New(db)
	return &Handler{
		Candidates: cands,
		Tags:       tagset.New(db.Collection("candidates")),
		Resolver: &submissionviews.Resolver{
			Members:    memberstore.New(db),
			Candidates: cands,
			Events:     eventstore.New(db),
		},
		Log: logger,
	}
}
