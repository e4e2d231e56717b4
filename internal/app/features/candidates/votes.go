// internal/app/features/candidates/votes.go
package candidates

import (
	"context"
	"errors"
	"net/http"

	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type voteOp func(ctx context.Context, id, orgID primitive.ObjectID, index int, voter primitive.ObjectID) (models.Candidate, error)

// HandleUpvote casts an up vote, withdrawing the caller's down vote if
// present. A second up vote conflicts.
//
// Route: POST /api/candidates/{id}/notes/{noteIndex}/upvote
func (h *Handler) HandleUpvote(w http.ResponseWriter, r *http.Request) {
	h.handleVote(w, r, h.Candidates.Upvote, "candidates.upvote")
}

// HandleDownvote casts a down vote, withdrawing the caller's up vote
// if present.
//
// Route: POST /api/candidates/{id}/notes/{noteIndex}/downvote
func (h *Handler) HandleDownvote(w http.ResponseWriter, r *http.Request) {
	h.handleVote(w, r, h.Candidates.Downvote, "candidates.downvote")
}

// HandleClearVote withdraws whichever vote the caller holds. A no-op
// when none is held.
//
// Route: DELETE /api/candidates/{id}/notes/{noteIndex}/vote
func (h *Handler) HandleClearVote(w http.ResponseWriter, r *http.Request) {
	h.handleVote(w, r, h.Candidates.ClearVote, "candidates.clear_vote")
}

func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request, op voteOp, opName string) {
	cid, ok := candIDParam(w, r)
	if !ok {
		return
	}
	idx, ok := noteIndexParam(w, r)
	if !ok {
		return
	}
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := op(ctx, cid, authz.UserOrgID(r), idx, userID)
	switch {
	case err == nil:
		httpx.OK(w, cand)
	case errors.Is(err, candidatestore.ErrNoteNotFound):
		httpx.NotFound(w, err.Error())
	case errors.Is(err, candidatestore.ErrAlreadyVoted):
		httpx.Conflict(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "candidate not found")
	default:
		httpx.ServerError(w, h.Log, opName, err)
	}
}
