// internal/app/features/candidates/notes.go
package candidates

import (
	"context"
	"errors"
	"net/http"

	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type noteRequest struct {
	Content   string `json:"content"`
	Anonymous bool   `json:"anonymous"`
}

// HandleAddNote appends a note to a candidate. The caller is recorded
// as the author unless they asked for anonymity, in which case no
// author reference is persisted at all.
//
// Route: POST /api/candidates/{id}/notes
func (h *Handler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	cid, ok := candIDParam(w, r)
	if !ok {
		return
	}
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req noteRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	var author *primitive.ObjectID
	if !req.Anonymous {
		author = &userID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := h.Candidates.AddNote(ctx, cid, authz.UserOrgID(r), req.Content, author)
	switch {
	case err == nil:
		httpx.Created(w, cand)
	case errors.Is(err, candidatestore.ErrEmptyNote):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "candidate not found")
	default:
		httpx.ServerError(w, h.Log, "candidates.add_note", err)
	}
}
