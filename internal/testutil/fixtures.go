package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization inserts a test organization and returns it.
func (f *Fixtures) CreateOrganization(ctx context.Context, name, university string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		University: university,
		Tags:       []string{},
		Members:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("insert test organization: %v", err)
	}
	return org
}

// CreateMember inserts a test member with the given role and registers
// it in the organization's member set.
func (f *Fixtures) CreateMember(ctx context.Context, orgID primitive.ObjectID, name, email, role string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		Email:          email,
		PasswordHash:   "$2a$10$fixturefixturefixturefixturefixturefixturefixture",
		OrganizationID: orgID,
		Role:           role,
		EventsAttended: []primitive.ObjectID{},
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("insert test member: %v", err)
	}
	_, err := f.db.Collection("organizations").UpdateByID(ctx, orgID,
		map[string]any{"$addToSet": map[string]any{"members": m.ID}})
	if err != nil {
		f.t.Fatalf("register test member: %v", err)
	}
	return m
}

// CreateCandidate inserts a test candidate.
func (f *Fixtures) CreateCandidate(ctx context.Context, orgID primitive.ObjectID, name, email string) models.Candidate {
	f.t.Helper()

	now := time.Now().UTC()
	cand := models.Candidate{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		Email:          email,
		OrganizationID: orgID,
		Tags:           []string{},
		Notes:          []models.Note{},
		Status:         models.StatusActive,
		EventsAttended: []primitive.ObjectID{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("candidates").InsertOne(ctx, cand); err != nil {
		f.t.Fatalf("insert test candidate: %v", err)
	}
	return cand
}

// CreateEvent inserts a test event with a one-hour window starting at
// the given time.
func (f *Fixtures) CreateEvent(ctx context.Context, orgID primitive.ObjectID, name string, start time.Time) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	ev := models.Event{
		ID:                   primitive.NewObjectID(),
		Name:                 name,
		NameCI:               text.Fold(name),
		OrganizationID:       orgID,
		Start:                start,
		End:                  start.Add(time.Hour),
		MemberSubmissions:    []models.Submission{},
		CandidateSubmissions: []models.Submission{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("insert test event: %v", err)
	}
	return ev
}
