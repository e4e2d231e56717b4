// internal/app/features/events/handler.go
package events

import (
	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	"github.com/rushtracker/rushtracker/internal/app/store/queries/submissionviews"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Events.
type Handler struct {
	Client     *mongo.Client
	Events     *eventstore.Store
	Members    *memberstore.Store
	Candidates *candidatestore.Store
	Resolver   *submissionviews.Resolver
	Log        *zap.Logger
}

// NewHandler constructs an Events handler. The client is needed for
// the submission transaction, which spans two collections.
func NewHandler(client *mongo.Client, db *mongo.Database, logger *zap.Logger) *Handler {
	events := eventstore.New(db)
	members := memberstore.New(db)
	candidates := candidatestore.New(db)
	return &Handler{
		Client:     client,
		Events:     events,
		Members:    members,
		Candidates: candidates,
		Resolver: &submissionviews.Resolver{
			Members:    members,
			Candidates: candidates,
			Events:     events,
		},
		Log: logger,
	}
}
