// internal/app/features/candidates/manage.go
package candidates

import (
	"context"
	"errors"
	"net/http"

	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDelete removes a candidate from the caller's organization.
//
// Route: DELETE /api/candidates/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	cid, ok := candIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Candidates.Delete(ctx, cid, authz.UserOrgID(r))
	switch {
	case err == nil:
		httpx.OK(w, map[string]string{"status": "deleted"})
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "candidate not found")
	default:
		httpx.ServerError(w, h.Log, "candidates.delete", err)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus moves a candidate through the recruitment pipeline.
//
// Route: PATCH /api/candidates/{id}/status
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	cid, ok := candIDParam(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := h.Candidates.SetStatus(ctx, cid, authz.UserOrgID(r), req.Status)
	switch {
	case err == nil:
		httpx.OK(w, cand)
	case errors.Is(err, candidatestore.ErrInvalidStatus):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "candidate not found")
	default:
		httpx.ServerError(w, h.Log, "candidates.set_status", err)
	}
}
