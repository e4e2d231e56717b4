// internal/app/features/organizations/tags.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	"github.com/rushtracker/rushtracker/internal/app/store/tagset"
	"github.com/rushtracker/rushtracker/internal/app/system/httpx"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type tagRequest struct {
	Tag string `json:"tag"`
}

func tagOwner(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid}
}

// ServeTags lists the organization's tags in insertion order.
//
// Route: GET /api/organizations/{id}/tags
func (h *Handler) ServeTags(w http.ResponseWriter, r *http.Request) {
	oid, ok := ownOrgParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tags, err := h.Tags.List(ctx, tagOwner(oid))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpx.NotFound(w, "organization not found")
			return
		}
		httpx.ServerError(w, h.Log, "organizations.tags.list", err)
		return
	}
	httpx.OK(w, tags)
}

// HandleAddTag appends a tag; duplicates conflict.
//
// Route: POST /api/organizations/{id}/tags
func (h *Handler) HandleAddTag(w http.ResponseWriter, r *http.Request) {
	oid, ok := ownOrgParam(w, r)
	if !ok {
		return
	}
	var req tagRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tags, err := h.Tags.Add(ctx, tagOwner(oid), normalize.Tag(req.Tag))
	switch {
	case err == nil:
		httpx.OK(w, tags)
	case errors.Is(err, tagset.ErrInvalidTag):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, tagset.ErrDuplicateTag):
		httpx.Conflict(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "organization not found")
	default:
		httpx.ServerError(w, h.Log, "organizations.tags.add", err)
	}
}

// HandleRemoveTag deletes a tag; a missing tag is 404.
//
// Route: DELETE /api/organizations/{id}/tags
func (h *Handler) HandleRemoveTag(w http.ResponseWriter, r *http.Request) {
	oid, ok := ownOrgParam(w, r)
	if !ok {
		return
	}
	var req tagRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tags, err := h.Tags.Remove(ctx, tagOwner(oid), normalize.Tag(req.Tag))
	switch {
	case err == nil:
		httpx.OK(w, tags)
	case errors.Is(err, tagset.ErrInvalidTag):
		httpx.BadRequest(w, err.Error())
	case errors.Is(err, tagset.ErrTagNotFound):
		httpx.NotFound(w, err.Error())
	case errors.Is(err, mongo.ErrNoDocuments):
		httpx.NotFound(w, "organization not found")
	default:
		httpx.ServerError(w, h.Log, "organizations.tags.remove", err)
	}
}
