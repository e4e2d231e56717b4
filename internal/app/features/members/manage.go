// internal/app/features/members/manage.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type roleRequest struct {
	Role string `json:"role"`
}

// HandleUpdateRole changes another member's role within the leader's
// organization.
//
// Route: PATCH /api/members/{id}/role
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	mid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.BadRequest(w, "bad member id")
		return
	}
	var req roleRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Members.UpdateRole(ctx, mid, authz.UserOrgID(r), req.Role)
	switch {
	case err == nil:
		httpx.OK(w, m)
	case errors.Is(err, memberstore.ErrBadRole):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "member not found")
	default:
		httpx.ServerError(w, h.Log, "members.update_role", err)
	}
}

// HandleToggleActive flips a member's active flag. Deactivated members
// cannot sign in and any outstanding tokens stop resolving.
//
// Route: PATCH /api/members/{id}/toggle-active
func (h *Handler) HandleToggleActive(w http.ResponseWriter, r *http.Request) {
	mid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpx.BadRequest(w, "bad member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Members.ToggleActive(ctx, mid, authz.UserOrgID(r))
	switch {
	case err == nil:
		httpx.OK(w, m)
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "member not found")
	default:
		httpx.ServerError(w, h.Log, "members.toggle_active", err)
	}
}
