// internal/app/store/candidates/votes.go
//
// Vote mutations are single conditional updates. The "not already in
// the target set" check lives in the update filter, so two concurrent
// votes by the same member cannot both land, and switching sides pulls
// the opposite vote in the same document write. A failed match is then
// disambiguated by re-reading the candidate.
package candidatestore

import (
	"context"
	"errors"
	"time"

	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNoteNotFound is returned when the note index is out of range.
	ErrNoteNotFound = errors.New("note not found")

	// ErrAlreadyVoted is returned when the member already holds the
	// same vote on this note.
	ErrAlreadyVoted = errors.New("member has already cast this vote")
)

// Upvote records an up vote by voter on the note at index. If the voter
// holds a down vote it is withdrawn in the same write. Voting up twice
// fails with ErrAlreadyVoted.
func (s *Store) Upvote(ctx context.Context, id, orgID primitive.ObjectID, index int, voter primitive.ObjectID) (models.Candidate, error) {
	return s.vote(ctx, id, orgID, index, voter, "upvotes", "downvotes")
}

// Downvote records a down vote, withdrawing any up vote by the same
// voter. Voting down twice fails with ErrAlreadyVoted.
func (s *Store) Downvote(ctx context.Context, id, orgID primitive.ObjectID, index int, voter primitive.ObjectID) (models.Candidate, error) {
	return s.vote(ctx, id, orgID, index, voter, "downvotes", "upvotes")
}

func (s *Store) vote(ctx context.Context, id, orgID primitive.ObjectID, index int, voter primitive.ObjectID, target, opposite string) (models.Candidate, error) {
	if index < 0 {
		return models.Candidate{}, ErrNoteNotFound
	}

	filter := bson.M{
		"_id":                      id,
		"organization_id":          orgID,
		noteField(index, "content"): bson.M{"$exists": true},
		noteField(index, target):    bson.M{"$ne": voter},
	}
	update := bson.M{
		"$addToSet": bson.M{noteField(index, target): voter},
		"$pull":     bson.M{noteField(index, opposite): voter},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Candidate{}, err
	}
	if res.MatchedCount == 0 {
		return models.Candidate{}, s.explainVoteMiss(ctx, id, orgID, index)
	}
	return s.GetByID(ctx, id, orgID)
}

// ClearVote withdraws both of the voter's possible votes on the note.
// Clearing when no vote is held is a no-op, not an error.
func (s *Store) ClearVote(ctx context.Context, id, orgID primitive.ObjectID, index int, voter primitive.ObjectID) (models.Candidate, error) {
	if index < 0 {
		return models.Candidate{}, ErrNoteNotFound
	}

	filter := bson.M{
		"_id":                      id,
		"organization_id":          orgID,
		noteField(index, "content"): bson.M{"$exists": true},
	}
	update := bson.M{
		"$pull": bson.M{
			noteField(index, "upvotes"):   voter,
			noteField(index, "downvotes"): voter,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Candidate{}, err
	}
	if res.MatchedCount == 0 {
		return models.Candidate{}, s.explainVoteMiss(ctx, id, orgID, index)
	}
	return s.GetByID(ctx, id, orgID)
}

// explainVoteMiss re-reads the candidate to tell a missing candidate
// from a bad note index from a duplicate vote.
func (s *Store) explainVoteMiss(ctx context.Context, id, orgID primitive.ObjectID, index int) error {
	cand, err := s.GetByID(ctx, id, orgID)
	if err != nil {
		return err // mongo.ErrNoDocuments for a missing candidate
	}
	if index >= len(cand.Notes) {
		return ErrNoteNotFound
	}
	return ErrAlreadyVoted
}
