// internal/app/features/organizations/contact.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type contactRequest struct {
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// HandleUpdateContact updates the organization's public contact
// fields. Callers may only touch their own organization.
//
// Route: PATCH /api/organizations/{id}/contact
func (h *Handler) HandleUpdateContact(w http.ResponseWriter, r *http.Request) {
	oid, ok := ownOrgParam(w, r)
	if !ok {
		return
	}

	var req contactRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.UpdateContact(ctx, oid, req.ContactEmail, req.ContactPhone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "organization not found")
			return
		}
		httpx.ServerError(w, h.Log, "organizations.update_contact", err)
		return
	}
	httpx.OK(w, org)
}
