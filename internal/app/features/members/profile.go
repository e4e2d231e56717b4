// internal/app/features/members/profile.go
package members

import (
	"context"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/fieldmask"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

var profileMask = fieldmask.New("phone", "major", "year")

// HandleUpdateProfile applies a whitelisted change set to the caller's
// own record. Unknown fields reject the whole request.
//
// Route: PATCH /api/members/profile
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var changes map[string]any
	if err := httpx.Decode(r, &changes); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	allowed, err := profileMask.Apply(changes)
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	set := bson.M{}
	for k, v := range allowed {
		if k == "year" {
			// JSON numbers decode as float64.
			f, ok := v.(float64)
			if !ok || f != float64(int(f)) {
				httpx.BadRequest(w, "year must be an integer")
				return
			}
			set[k] = int(f)
			continue
		}
		if _, ok := v.(string); !ok {
			httpx.BadRequest(w, k+" must be a string")
			return
		}
		set[k] = v
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Members.UpdateProfile(ctx, userID, set)
	if err != nil {
		httpx.ServerError(w, h.Log, "members.update_profile", err)
		return
	}
	httpx.OK(w, m)
}
