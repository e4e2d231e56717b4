// internal/app/store/tagset/tagset.go
//
// Package tagset manages the unique string tag set embedded on an
// owning document (organizations and candidates both carry one). All
// mutations are single conditional updates: the presence check lives in
// the filter, so concurrent adds or removes of the same tag cannot both
// succeed.
package tagset

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrInvalidTag is returned for an empty tag.
	ErrInvalidTag = errors.New("tag must be a non-empty string")

	// ErrDuplicateTag is returned when the tag is already present
	// (case-sensitive exact match).
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrTagNotFound is returned when removing a tag that is absent.
	ErrTagNotFound = errors.New("tag not found")
)

// Store operates on the "tags" array of documents in one collection.
// The owner filter passed to each method scopes both the document id
// and its tenant, so cross-tenant tag edits resolve as not-found.
type Store struct {
	c *mongo.Collection
}

func New(c *mongo.Collection) *Store {
	return &Store{c: c}
}

// Add appends tag, preserving insertion order. Fails with
// ErrDuplicateTag when present and ErrInvalidTag when empty.
func (s *Store) Add(ctx context.Context, owner bson.M, tag string) ([]string, error) {
	if tag == "" {
		return nil, ErrInvalidTag
	}

	filter := withTagGuard(owner, bson.M{"$ne": tag})
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"tags": tag}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		// Either the owner is missing or the tag already exists.
		if _, lerr := s.List(ctx, owner); lerr != nil {
			return nil, lerr
		}
		return nil, ErrDuplicateTag
	}
	return s.List(ctx, owner)
}

// Remove deletes tag, preserving the relative order of the remainder.
// Fails with ErrTagNotFound when absent.
func (s *Store) Remove(ctx context.Context, owner bson.M, tag string) ([]string, error) {
	if tag == "" {
		return nil, ErrInvalidTag
	}

	filter := withTagGuard(owner, tag)
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"tags": tag}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, lerr := s.List(ctx, owner); lerr != nil {
			return nil, lerr
		}
		return nil, ErrTagNotFound
	}
	return s.List(ctx, owner)
}

// List returns the current ordered tag sequence. Read-only.
func (s *Store) List(ctx context.Context, owner bson.M) ([]string, error) {
	var doc struct {
		Tags []string `bson:"tags"`
	}
	opts := options.FindOne().SetProjection(bson.M{"tags": 1})
	if err := s.c.FindOne(ctx, owner, opts).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Tags == nil {
		return []string{}, nil
	}
	return doc.Tags, nil
}

func withTagGuard(owner bson.M, guard any) bson.M {
	filter := make(bson.M, len(owner)+1)
	for k, v := range owner {
		filter[k] = v
	}
	filter["tags"] = guard
	return filter
}
