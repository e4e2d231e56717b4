// internal/app/features/members/create.go
package members

import (
	"context"
	"errors"
	"net/http"
	"strings"

	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/credentials"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/app/system/txn"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type createRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Major          string          `json:"major"`
	Year           int             `json:"year"`
	Role           string          `json:"role"`
	PledgeSemester models.Semester `json:"pledge_semester"`
}

// HandleCreate adds a member to the leader's organization with the
// configured default credential. The member record is written first,
// then the reference is registered in the organization's member set;
// both land in one transaction when the deployment supports it. On a
// standalone deployment a failed second step answers 503 so the caller
// retries (registration is idempotent).
//
// Route: POST /api/members
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		httpx.BadRequest(w, "name and email are required")
		return
	}

	hash, err := credentials.Hash(h.DefaultPassword)
	if err != nil {
		httpx.ServerError(w, h.Log, "members.create.hash", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var created models.Member
	apply := func(ctx context.Context) error {
		m, err := h.Members.Create(ctx, models.Member{
			Name:           req.Name,
			Email:          req.Email,
			PasswordHash:   hash,
			Phone:          req.Phone,
			Major:          req.Major,
			Year:           req.Year,
			OrganizationID: orgID,
			Role:           req.Role,
			PledgeSemester: req.PledgeSemester,
		})
		if err != nil {
			return err
		}
		created = m
		return h.Orgs.RegisterMember(ctx, orgID, m.ID)
	}

	err = txn.WithTransaction(ctx, h.Client, func(sc mongo.SessionContext) error {
		return apply(sc)
	})
	if err != nil && txn.IsNotSupported(err) {
		err = apply(ctx)
	}
	switch {
	case err == nil:
		httpx.Created(w, created)
	case errors.Is(err, memberstore.ErrDuplicateEmail):
		httpx.Conflict(w, err.Error())
	case errors.Is(err, memberstore.ErrBadRole):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "organization not found")
	default:
		httpx.ServerError(w, h.Log, "members.create", err)
	}
}
