// internal/app/features/organizations/members.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	organizationstore "github.com/rushtracker/rushtracker/internal/app/store/organizations"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type replaceMembersRequest struct {
	Members []string `json:"members"`
}

// HandleReplaceMembers swaps the organization's member-reference set.
// A set that excludes the current leader is rejected.
//
// Route: PATCH /api/organizations/{id}/members
func (h *Handler) HandleReplaceMembers(w http.ResponseWriter, r *http.Request) {
	oid, ok := ownOrgParam(w, r)
	if !ok {
		return
	}

	var req replaceMembersRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	members := make([]primitive.ObjectID, 0, len(req.Members))
	for _, hex := range req.Members {
		mid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpx.BadRequest(w, "bad member id: "+hex)
			return
		}
		members = append(members, mid)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.ReplaceMembers(ctx, oid, members)
	switch {
	case err == nil:
		httpx.OK(w, org)
	case errors.Is(err, organizationstore.ErrLeaderNotInSet):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "organization not found")
	default:
		httpx.ServerError(w, h.Log, "organizations.replace_members", err)
	}
}

type setLeaderRequest struct {
	Leader string `json:"leader"`
}

// HandleSetLeader designates the organization leader. The proposed
// leader must already be in the member set.
//
// Route: PATCH /api/organizations/{id}/leader
func (h *Handler) HandleSetLeader(w http.ResponseWriter, r *http.Request) {
	oid, ok := ownOrgParam(w, r)
	if !ok {
		return
	}

	var req setLeaderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}
	leaderID, err := primitive.ObjectIDFromHex(req.Leader)
	if err != nil {
		httpx.BadRequest(w, "bad leader id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.SetLeader(ctx, oid, leaderID)
	switch {
	case err == nil:
		httpx.OK(w, org)
	case errors.Is(err, organizationstore.ErrNotAMember):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "organization not found")
	default:
		httpx.ServerError(w, h.Log, "organizations.set_leader", err)
	}
}
