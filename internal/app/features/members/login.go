// internal/app/features/members/login.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/system/credentials"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string        `json:"token"`
	Member models.Member `json:"member"`
}

// HandleLogin verifies a credential and mints a bearer token. Unknown
// emails, wrong passwords, and deactivated accounts all answer the
// same 401, so the endpoint never confirms which emails exist.
//
// Route: POST /api/members/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.BadRequest(w, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Members.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.Fail(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		httpx.ServerError(w, h.Log, "members.login", err)
		return
	}
	if !m.IsActive || !credentials.Verify(m.PasswordHash, req.Password) {
		httpx.Fail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(m.ID.Hex())
	if err != nil {
		httpx.ServerError(w, h.Log, "members.login.issue", err)
		return
	}
	httpx.OK(w, loginResponse{Token: token, Member: m})
}
