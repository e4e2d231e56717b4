// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

var (
	// ErrDuplicateEmail is returned when the email is already
	// registered to any member, in any organization. Member identity is
	// globally unique, unlike candidate identity.
	ErrDuplicateEmail = errors.New("a member with this email already exists")

	// ErrBadRole is returned for a role outside the recognized set.
	ErrBadRole = errors.New(`role must be "leader", "recruitment_chair", or "member"`)
)

// Create inserts a new member after normalizing and validating fields.
// The unique email index arbitrates concurrent creates; a duplicate
// maps to ErrDuplicateEmail. Registration in the organization's member
// set is the caller's second step (child first, then parent).
func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	m.ID = primitive.NewObjectID()
	m.Name = normalize.Name(m.Name)
	m.NameCI = text.Fold(m.Name)
	m.Email = normalize.Email(m.Email)
	m.Role = normalize.Role(m.Role)
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	if !models.ValidRole(m.Role) {
		return models.Member{}, ErrBadRole
	}
	if m.EventsAttended == nil {
		m.EventsAttended = []primitive.ObjectID{}
	}
	m.IsActive = true

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Member{}, ErrDuplicateEmail
		}
		return models.Member{}, err
	}
	return m, nil
}

// GetByID loads a member by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// GetByEmail looks up a member by normalized email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// GetInOrg loads a member only if they belong to the given
// organization; cross-tenant ids resolve as not-found.
func (s *Store) GetInOrg(ctx context.Context, id, orgID primitive.ObjectID) (models.Member, error) {
	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&m)
	if err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// ListByOrg returns all members of an organization, sorted by folded
// name.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetByIDs batch-loads members for the read-side resolver.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateProfile applies a whitelisted profile change set (phone, major,
// year) to the member's own record.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Member, error) {
	set["updated_at"] = time.Now().UTC()
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// UpdateRole changes a member's role, tenant-scoped.
func (s *Store) UpdateRole(ctx context.Context, id, orgID primitive.ObjectID, role string) (models.Member, error) {
	role = normalize.Role(role)
	if !models.ValidRole(role) {
		return models.Member{}, ErrBadRole
	}
	return s.update(ctx,
		bson.M{"_id": id, "organization_id": orgID},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}},
	)
}

// ToggleActive flips the is_active flag, tenant-scoped.
func (s *Store) ToggleActive(ctx context.Context, id, orgID primitive.ObjectID) (models.Member, error) {
	m, err := s.GetInOrg(ctx, id, orgID)
	if err != nil {
		return models.Member{}, err
	}
	return s.update(ctx,
		// Guard on the current value so two racing toggles land on
		// opposite states instead of cancelling out.
		bson.M{"_id": id, "organization_id": orgID, "is_active": m.IsActive},
		bson.M{"$set": bson.M{"is_active": !m.IsActive, "updated_at": time.Now().UTC()}},
	)
}

// ReplacePassword stores a new credential hash.
func (s *Store) ReplacePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RecordAttendance adds an event reference to the member's attended
// set. Idempotent.
func (s *Store) RecordAttendance(ctx context.Context, id, eventID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"events_attended": eventID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) update(ctx context.Context, filter, update bson.M) (models.Member, error) {
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Member{}, err
	}
	if res.MatchedCount == 0 {
		return models.Member{}, mongo.ErrNoDocuments
	}
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": filter["_id"]}).Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}
