// internal/app/features/events/create.go
package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
)

type createRequest struct {
	Name          string      `json:"name"`
	Start         time.Time   `json:"start"`
	End           time.Time   `json:"end"`
	Location      string      `json:"location"`
	MemberForm    models.Form `json:"member_form"`
	CandidateForm models.Form `json:"candidate_form"`
}

// HandleCreate creates an event in the caller's organization. The
// window must be non-empty and every form question must carry a
// recognized type.
//
// Route: POST /api/events
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpx.BadRequest(w, "name is required")
		return
	}
	if req.Start.IsZero() || req.End.IsZero() {
		httpx.BadRequest(w, "start and end are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.Create(ctx, models.Event{
		Name:           req.Name,
		OrganizationID: authz.UserOrgID(r),
		Start:          req.Start,
		End:            req.End,
		Location:       req.Location,
		MemberForm:     req.MemberForm,
		CandidateForm:  req.CandidateForm,
	})
	switch {
	case err == nil:
		httpx.Created(w, ev)
	case errors.Is(err, eventstore.ErrEndBeforeStart),
		errors.Is(err, eventstore.ErrBadQuestionType):
		httpx.BadRequest(w, err.Error())
	default:
		httpx.ServerError(w, h.Log, "events.create", err)
	}
}
