// internal/app/features/events/update.go
package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type updateRequest struct {
	Name          *string      `json:"name"`
	Start         *time.Time   `json:"start"`
	End           *time.Time   `json:"end"`
	Location      *string      `json:"location"`
	MemberForm    *models.Form `json:"member_form"`
	CandidateForm *models.Form `json:"candidate_form"`
}

// HandleUpdate applies a partial update. A change to either end of the
// time window is validated against the stored other end.
//
// Route: PATCH /api/events/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	eid, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Start != nil {
		set["start"] = *req.Start
	}
	if req.End != nil {
		set["end"] = *req.End
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.MemberForm != nil {
		set["member_form"] = *req.MemberForm
	}
	if req.CandidateForm != nil {
		set["candidate_form"] = *req.CandidateForm
	}
	if len(set) == 0 {
		httpx.BadRequest(w, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.Update(ctx, eid, authz.UserOrgID(r), set)
	switch {
	case err == nil:
		httpx.OK(w, ev)
	case errors.Is(err, eventstore.ErrEndBeforeStart),
		errors.Is(err, eventstore.ErrBadQuestionType):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "event not found")
	default:
		httpx.ServerError(w, h.Log, "events.update", err)
	}
}
