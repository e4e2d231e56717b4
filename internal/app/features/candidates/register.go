// internal/app/features/candidates/register.go
package candidates

import (
	"context"
	"errors"
	"net/http"
	"strings"

	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type registerRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	OrganizationID string          `json:"organization_id"`
	Phone          string          `json:"phone"`
	Major          string          `json:"major"`
	Year           string          `json:"year"`
	GPA            *float64        `json:"gpa"`
	Summary        string          `json:"summary"`
	RushCycle      models.Semester `json:"rush_cycle"`
}

// HandleRegister is the public candidate self-registration. The same
// email may register with a different organization; registering twice
// with the same one conflicts.
//
// Route: POST /api/candidates
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		httpx.BadRequest(w, "name and email are required")
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		httpx.BadRequest(w, "bad organization id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := h.Candidates.Create(ctx, models.Candidate{
		Name:           req.Name,
		Email:          req.Email,
		OrganizationID: orgID,
		Phone:          req.Phone,
		Major:          req.Major,
		Year:           req.Year,
		GPA:            req.GPA,
		Summary:        req.Summary,
		RushCycle:      req.RushCycle,
	})
	switch {
	case err == nil:
		httpx.Created(w, cand)
	case errors.Is(err, candidatestore.ErrDuplicateCandidate):
		httpx.Conflict(w, err.Error())
	default:
		httpx.ServerError(w, h.Log, "candidates.register", err)
	}
}

// ServeSearch resolves a candidate by email within one organization.
// Public: the onboarding pages use it to find the caller's record.
//
// Route: GET /api/candidates/search?email=&org=
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgQueryParam(w, r)
	if !ok {
		return
	}
	email := normalize.QueryParam(r.URL.Query().Get("email"))
	if email == "" {
		httpx.BadRequest(w, "missing email parameter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cand, err := h.Candidates.FindByEmail(ctx, email, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "candidate not found")
			return
		}
		httpx.ServerError(w, h.Log, "candidates.search", err)
		return
	}
	httpx.OK(w, cand)
}
