// internal/app/features/events/submissions.go
package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	"github.com/rushtracker/rushtracker/internal/app/store/queries/submissionviews"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type memberSubmissionRequest struct {
	Responses json.RawMessage `json:"responses"`
}

// HandleMemberSubmission upserts the caller's form submission and
// records their attendance. Resubmitting replaces the responses in
// place.
//
// Route: POST /api/events/{id}/submissions/member
func (h *Handler) HandleMemberSubmission(w http.ResponseWriter, r *http.Request) {
	eid, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req memberSubmissionRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ev, err := h.Events.Submit(ctx, h.Client, eid, authz.UserOrgID(r),
		models.SubjectMember, userID, string(req.Responses), h.Members)
	h.respondSubmission(w, ev, err, "events.submit_member")
}

type candidateSubmissionRequest struct {
	CandidateID string          `json:"candidate_id"`
	Responses   json.RawMessage `json:"responses"`
}

// HandleCandidateSubmission is the public form submission for a
// rushee. The candidate must belong to the target organization.
//
// Route: POST /api/events/{id}/submissions/candidate?org=
func (h *Handler) HandleCandidateSubmission(w http.ResponseWriter, r *http.Request) {
	eid, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	orgID, ok := orgQueryParam(w, r)
	if !ok {
		return
	}

	var req candidateSubmissionRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	cid, err := primitive.ObjectIDFromHex(req.CandidateID)
	if err != nil {
		httpx.BadRequest(w, "bad candidate id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// The candidate reference must resolve inside the organization
	// before anything is written.
	if _, err := h.Candidates.GetByID(ctx, cid, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "candidate not found")
			return
		}
		httpx.ServerError(w, h.Log, "events.submit_candidate.lookup", err)
		return
	}

	ev, err := h.Events.Submit(ctx, h.Client, eid, orgID,
		models.SubjectCandidate, cid, string(req.Responses), h.Candidates)
	h.respondSubmission(w, ev, err, "events.submit_candidate")
}

func (h *Handler) respondSubmission(w http.ResponseWriter, ev models.Event, err error, op string) {
	switch {
	case err == nil:
		httpx.OK(w, ev)
	case errors.Is(err, eventstore.ErrInvalidResponses):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "event not found")
	default:
		httpx.ServerError(w, h.Log, op, err)
	}
}

// ServeSubmissions returns one submission sequence with subject
// display fields resolved.
//
// Route: GET /api/events/{id}/submissions?kind=member|candidate
func (h *Handler) ServeSubmissions(w http.ResponseWriter, r *http.Request) {
	eid, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	kind := models.SubjectKind(r.URL.Query().Get("kind"))
	if !models.ValidSubjectKind(kind) {
		httpx.BadRequest(w, `kind must be "member" or "candidate"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subs, err := h.Events.ListSubmissions(ctx, eid, authz.UserOrgID(r), kind)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "event not found")
			return
		}
		httpx.ServerError(w, h.Log, "events.submissions", err)
		return
	}

	views, err := h.Resolver.Submissions(ctx, subs, kind)
	if err != nil {
		httpx.ServerError(w, h.Log, "events.submissions.resolve", err)
		return
	}
	httpx.OK(w, views)
}

// attendee is one subject who submitted the event form.
type attendee struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

type attendeesResponse struct {
	Members    []attendee `json:"members"`
	Candidates []attendee `json:"candidates"`
}

// ServeAttendees returns who attended, derived from the submission
// sequences.
//
// Route: GET /api/events/{id}/attendees
func (h *Handler) ServeAttendees(w http.ResponseWriter, r *http.Request) {
	eid, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, eid, authz.UserOrgID(r))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "event not found")
			return
		}
		httpx.ServerError(w, h.Log, "events.attendees", err)
		return
	}

	memberViews, err := h.Resolver.Submissions(ctx, ev.MemberSubmissions, models.SubjectMember)
	if err != nil {
		httpx.ServerError(w, h.Log, "events.attendees.members", err)
		return
	}
	candidateViews, err := h.Resolver.Submissions(ctx, ev.CandidateSubmissions, models.SubjectCandidate)
	if err != nil {
		httpx.ServerError(w, h.Log, "events.attendees.candidates", err)
		return
	}

	httpx.OK(w, attendeesResponse{
		Members:    toAttendees(memberViews),
		Candidates: toAttendees(candidateViews),
	})
}

func toAttendees(views []submissionviews.SubmissionView) []attendee {
	out := make([]attendee, 0, len(views))
	for _, v := range views {
		out = append(out, attendee{ID: v.Subject, Name: v.Name, Email: v.Email})
	}
	return out
}
