// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/app/system/urlname"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

var (
	// ErrNotAMember is returned when the proposed leader is not in the
	// organization's member set.
	ErrNotAMember = errors.New("leader must be a member of the organization")

	// ErrLeaderNotInSet is returned when a member-set replacement would
	// exclude the current leader.
	ErrLeaderNotInSet = errors.New("member set must contain the current leader")
)

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.Name = normalize.Name(org.Name)
	org.NameCI = text.Fold(org.Name)
	org.University = normalize.Name(org.University)
	if org.Tags == nil {
		org.Tags = []string{}
	}
	if org.Members == nil {
		org.Members = []primitive.ObjectID{}
	}
	org.Leader = nil
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, org); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// FindByURLName resolves an organization from its URL slug, matching
// either the bare name or "name university". Organizations are a tiny
// collection, so the linear scan is fine.
func (s *Store) FindByURLName(ctx context.Context, slug string) (models.Organization, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return models.Organization{}, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var org models.Organization
		if err := cur.Decode(&org); err != nil {
			return models.Organization{}, err
		}
		if urlname.Format(org.Name) == slug || urlname.Format(org.Name+" "+org.University) == slug {
			return org, nil
		}
	}
	if err := cur.Err(); err != nil {
		return models.Organization{}, err
	}
	return models.Organization{}, mongo.ErrNoDocuments
}

// UpdateContact sets the contact email/phone and refreshes UpdatedAt.
func (s *Store) UpdateContact(ctx context.Context, id primitive.ObjectID, email, phone string) (models.Organization, error) {
	set := bson.M{
		"contact_email": normalize.Email(email),
		"contact_phone": normalize.QueryParam(phone),
		"updated_at":    time.Now().UTC(),
	}
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// RegisterMember adds a member reference to the organization's member
// set. Idempotent: registering an already-present reference is a no-op.
func (s *Store) RegisterMember(ctx context.Context, id, memberID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"members": memberID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReplaceMembers swaps the entire member-reference set. When a leader
// is set, the new set must still contain them; silently clearing the
// leader would break the leader-is-a-member invariant.
func (s *Store) ReplaceMembers(ctx context.Context, id primitive.ObjectID, members []primitive.ObjectID) (models.Organization, error) {
	org, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Organization{}, err
	}
	if org.Leader != nil && !contains(members, *org.Leader) {
		return models.Organization{}, ErrLeaderNotInSet
	}
	if members == nil {
		members = []primitive.ObjectID{}
	}

	// Guard on the leader still being unchanged so a concurrent
	// SetLeader cannot slip a leader outside the new set.
	filter := bson.M{"_id": id}
	if org.Leader == nil {
		filter["leader"] = bson.M{"$exists": false}
	} else {
		filter["leader"] = *org.Leader
	}
	return s.findOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{
		"members":    members,
		"updated_at": time.Now().UTC(),
	}})
}

// SetLeader designates a leader. The member-set check lives in the
// update filter, so a concurrent member removal cannot race it past
// the invariant.
func (s *Store) SetLeader(ctx context.Context, id, memberID primitive.ObjectID) (models.Organization, error) {
	org, err := s.findOneAndUpdate(ctx,
		bson.M{"_id": id, "members": memberID},
		bson.M{"$set": bson.M{"leader": memberID, "updated_at": time.Now().UTC()}},
	)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing organization from a non-member leader.
		if _, gerr := s.GetByID(ctx, id); gerr == nil {
			return models.Organization{}, ErrNotAMember
		}
		return models.Organization{}, mongo.ErrNoDocuments
	}
	return org, err
}

// Delete removes an organization by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) findOneAndUpdate(ctx context.Context, filter, update bson.M) (models.Organization, error) {
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Organization{}, err
	}
	if res.MatchedCount == 0 {
		return models.Organization{}, mongo.ErrNoDocuments
	}
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"_id": filter["_id"]}).Decode(&org); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

func contains(ids []primitive.ObjectID, want primitive.ObjectID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
