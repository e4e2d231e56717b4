// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/system/authz"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
)

// ServeList returns the caller's organization roster. Credential
// hashes never serialize.
//
// Route: GET /api/members
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Members.ListByOrg(ctx, orgID)
	if err != nil {
		httpx.ServerError(w, h.Log, "members.list", err)
		return
	}
	httpx.OK(w, members)
}
