// internal/app/features/members/password.go
package members

import (
	"context"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/credentials"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
)

type resetPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// HandleResetPassword rotates the caller's own credential after
// verifying the current one.
//
// Route: PATCH /api/members/reset-password
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req resetPasswordRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	if len(req.NewPassword) < 8 {
		httpx.BadRequest(w, "new password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Members.GetByID(ctx, userID)
	if err != nil {
		httpx.ServerError(w, h.Log, "members.reset_password", err)
		return
	}
	if !credentials.Verify(m.PasswordHash, req.CurrentPassword) {
		httpx.Fail(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := credentials.Hash(req.NewPassword)
	if err != nil {
		httpx.ServerError(w, h.Log, "members.reset_password.hash", err)
		return
	}
	if err := h.Members.ReplacePassword(ctx, userID, hash); err != nil {
		httpx.ServerError(w, h.Log, "members.reset_password.store", err)
		return
	}
	httpx.OK(w, map[string]string{"status": "password updated"})
}
