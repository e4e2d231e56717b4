// internal/app/features/candidates/view.go
package candidates

import (
	"context"
	"errors"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/store/queries/submissionviews"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// candidateView is a candidate with note authors and attended events
// resolved to display fields. The outer Notes and EventsAttended
// shadow the raw reference arrays on the embedded struct.
type candidateView struct {
	models.Candidate
	Notes          []submissionviews.NoteView `json:"notes"`
	EventsAttended []submissionviews.EventRef `json:"events_attended"`
}

func (h *Handler) resolveView(ctx context.Context, cand models.Candidate) (candidateView, error) {
	notes, err := h.Resolver.Notes(ctx, cand.Notes)
	if err != nil {
		return candidateView{}, err
	}
	events, err := h.Resolver.AttendedEvents(ctx, cand.EventsAttended, cand.OrganizationID)
	if err != nil {
		return candidateView{}, err
	}
	return candidateView{Candidate: cand, Notes: notes, EventsAttended: events}, nil
}

// ServeList returns the organization's candidates with notes and
// attended events resolved.
//
// Route: GET /api/candidates
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	candidates, err := h.Candidates.ListByOrg(ctx, orgID)
	if err != nil {
		httpx.ServerError(w, h.Log, "candidates.list", err)
		return
	}

	views := make([]candidateView, 0, len(candidates))
	for _, cand := range candidates {
		view, err := h.resolveView(ctx, cand)
		if err != nil {
			httpx.ServerError(w, h.Log, "candidates.list.resolve", err)
			return
		}
		views = append(views, view)
	}
	httpx.OK(w, views)
}

// ServeView fetches one candidate with notes and events resolved.
//
// Route: GET /api/candidates/{id}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	cid, ok := candIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := h.Candidates.GetByID(ctx, cid, authz.UserOrgID(r))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "candidate not found")
			return
		}
		httpx.ServerError(w, h.Log, "candidates.view", err)
		return
	}

	view, err := h.resolveView(ctx, cand)
	if err != nil {
		httpx.ServerError(w, h.Log, "candidates.view.resolve", err)
		return
	}
	httpx.OK(w, view)
}
