// internal/app/features/candidates/update.go
package candidates

import (
	"context"
	"errors"
	"net/http"

	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	"github.com/rushtracker/rushtracker/internal/app/system/fieldmask"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	updateMask     = fieldmask.New("name", "phone", "major", "year", "gpa", "summary", "status", "picture", "resume")
	onboardingMask = fieldmask.New("phone", "major", "year", "gpa", "picture", "resume")
)

// HandleUpdate applies a whitelisted change set to a candidate.
// Public: candidates maintain their own profile before they have any
// kind of account.
//
// Route: PATCH /api/candidates/{id}?org=
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	cid, ok := candIDParam(w, r)
	if !ok {
		return
	}
	orgID, ok := orgQueryParam(w, r)
	if !ok {
		return
	}
	set, ok := decodeMasked(w, r, updateMask)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := h.Candidates.ApplyUpdate(ctx, cid, orgID, set)
	switch {
	case err == nil:
		httpx.OK(w, cand)
	case errors.Is(err, candidatestore.ErrInvalidStatus):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "candidate not found")
	default:
		httpx.ServerError(w, h.Log, "candidates.update", err)
	}
}

type onboardingRequest struct {
	Email string `json:"email"`
}

// HandleOnboarding is the public self-service profile update,
// addressed by email because the candidate has no id on hand yet.
//
// Route: PATCH /api/candidates/onboarding?org=
func (h *Handler) HandleOnboarding(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgQueryParam(w, r)
	if !ok {
		return
	}

	var raw map[string]any
	if err := httpx.Decode(r, &raw); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	email, _ := raw["email"].(string)
	email = normalize.Email(email)
	if email == "" {
		httpx.BadRequest(w, "email is required")
		return
	}
	delete(raw, "email")

	set, ok := maskChanges(w, raw, onboardingMask)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := h.Candidates.UpdateByEmail(ctx, email, orgID, set)
	switch {
	case err == nil:
		httpx.OK(w, cand)
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "candidate not found")
	default:
		httpx.ServerError(w, h.Log, "candidates.onboarding", err)
	}
}

// decodeMasked decodes the body and filters it through mask, answering
// 400 itself on any problem.
func decodeMasked(w http.ResponseWriter, r *http.Request, mask fieldmask.Mask) (bson.M, bool) {
	var raw map[string]any
	if err := httpx.Decode(r, &raw); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return nil, false
	}
	return maskChanges(w, raw, mask)
}

func maskChanges(w http.ResponseWriter, raw map[string]any, mask fieldmask.Mask) (bson.M, bool) {
	allowed, err := mask.Apply(raw)
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return nil, false
	}
	set := bson.M{}
	for k, v := range allowed {
		set[k] = v
	}
	return set, true
}
