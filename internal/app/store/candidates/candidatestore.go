// internal/app/store/candidates/candidatestore.go
package candidatestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c        *mongo.Collection
	sanitize *bluemonday.Policy
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("candidates"),
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Collection exposes the underlying collection for the embedded tag
// set; candidate tags live on the same documents.
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

var (
	// ErrDuplicateCandidate is returned when the email is already
	// rushing this organization. The same email may rush a different
	// organization.
	ErrDuplicateCandidate = errors.New("a candidate with this email already exists in this organization")

	// ErrInvalidStatus is returned for a status outside the recognized
	// set.
	ErrInvalidStatus = errors.New(`status must be "Potential", "Active", "Dropped", or "Rejected"`)
)

// Create inserts a new candidate. The (email, organization_id) unique
// index arbitrates concurrent registrations; a duplicate maps to
// ErrDuplicateCandidate.
func (s *Store) Create(ctx context.Context, cand models.Candidate) (models.Candidate, error) {
	cand.ID = primitive.NewObjectID()
	cand.Name = normalize.Name(cand.Name)
	cand.NameCI = text.Fold(cand.Name)
	cand.Email = normalize.Email(cand.Email)
	cand.Summary = s.sanitize.Sanitize(cand.Summary)
	if cand.Status == "" {
		cand.Status = models.StatusActive
	}
	if !models.ValidStatus(cand.Status) {
		return models.Candidate{}, ErrInvalidStatus
	}
	if cand.Tags == nil {
		cand.Tags = []string{}
	}
	if cand.Notes == nil {
		cand.Notes = []models.Note{}
	}
	if cand.EventsAttended == nil {
		cand.EventsAttended = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	cand.CreatedAt = now
	cand.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cand); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Candidate{}, ErrDuplicateCandidate
		}
		return models.Candidate{}, err
	}
	return cand, nil
}

// GetByID loads a candidate scoped to an organization. A valid id in
// the wrong organization resolves as not-found.
func (s *Store) GetByID(ctx context.Context, id, orgID primitive.ObjectID) (models.Candidate, error) {
	var cand models.Candidate
	err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&cand)
	if err != nil {
		return models.Candidate{}, err
	}
	return cand, nil
}

// ListByOrg returns all candidates for an organization, sorted by
// folded name.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Candidate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var candidates []models.Candidate
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// FindByEmail resolves one candidate by (email, organization). The
// unique pair index guarantees at most one match.
func (s *Store) FindByEmail(ctx context.Context, email string, orgID primitive.ObjectID) (models.Candidate, error) {
	var cand models.Candidate
	filter := bson.M{"email": normalize.Email(email), "organization_id": orgID}
	if err := s.c.FindOne(ctx, filter).Decode(&cand); err != nil {
		return models.Candidate{}, err
	}
	return cand, nil
}

// GetByIDs batch-loads candidates for the read-side resolver.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var candidates []models.Candidate
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// ApplyUpdate sets a whitelisted change set on a candidate. Status
// values, when present, must be recognized; summaries are sanitized.
func (s *Store) ApplyUpdate(ctx context.Context, id, orgID primitive.ObjectID, set bson.M) (models.Candidate, error) {
	if v, ok := set["status"]; ok {
		str, _ := v.(string)
		if !models.ValidStatus(str) {
			return models.Candidate{}, ErrInvalidStatus
		}
	}
	if v, ok := set["summary"]; ok {
		str, _ := v.(string)
		set["summary"] = s.sanitize.Sanitize(str)
	}
	if v, ok := set["name"]; ok {
		str, _ := v.(string)
		set["name"] = normalize.Name(str)
		set["name_ci"] = text.Fold(normalize.Name(str))
	}
	set["updated_at"] = time.Now().UTC()

	return s.update(ctx, bson.M{"_id": id, "organization_id": orgID}, bson.M{"$set": set})
}

// SetStatus changes the candidate's pipeline status.
func (s *Store) SetStatus(ctx context.Context, id, orgID primitive.ObjectID, status string) (models.Candidate, error) {
	if !models.ValidStatus(status) {
		return models.Candidate{}, ErrInvalidStatus
	}
	return s.update(ctx,
		bson.M{"_id": id, "organization_id": orgID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
}

// UpdateByEmail applies a change set to the candidate addressed by
// (email, organization). Used by the public onboarding flow, where the
// candidate has an email but no id yet.
func (s *Store) UpdateByEmail(ctx context.Context, email string, orgID primitive.ObjectID, set bson.M) (models.Candidate, error) {
	cand, err := s.FindByEmail(ctx, email, orgID)
	if err != nil {
		return models.Candidate{}, err
	}
	return s.ApplyUpdate(ctx, cand.ID, orgID, set)
}

// Delete removes a candidate, tenant-scoped. Returns
// mongo.ErrNoDocuments when nothing matched.
func (s *Store) Delete(ctx context.Context, id, orgID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RecordAttendance adds an event reference to the candidate's attended
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

func (s *Store) update(ctx context.Context, filter, update bson.M) (models.Candidate, error) {
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Candidate{}, err
	}
	if res.MatchedCount == 0 {
		return models.Candidate{}, mongo.ErrNoDocuments
	}
	var cand models.Candidate
	if err := s.c.FindOne(ctx, bson.M{"_id": filter["_id"]}).Decode(&cand); err != nil {
		return models.Candidate{}, err
	}
	return cand, nil
}
