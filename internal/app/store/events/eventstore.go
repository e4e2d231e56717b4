// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/rushtracker/rushtracker/internal/app/system/normalize"
	"github.com/rushtracker/rushtracker/internal/app/system/urlname"
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
	return &Store{c: db.Collection("events")}
}

var (
	// ErrEndBeforeStart is returned when the event window is inverted
	// or empty.
	ErrEndBeforeStart = errors.New("event end must be after start")

	// ErrBadQuestionType is returned when a form question carries an
	// unrecognized type.
	ErrBadQuestionType = errors.New("unrecognized question type")
)

// ListFilter narrows the event listing. Zero values mean "no bound".
type ListFilter struct {
	From time.Time
	To   time.Time
	Name string
}

// Create inserts a new event after validating the time window and both
// form definitions.
func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	if !ev.End.After(ev.Start) {
		return models.Event{}, ErrEndBeforeStart
	}
	if err := validateForm(ev.MemberForm); err != nil {
		return models.Event{}, err
	}
	if err := validateForm(ev.CandidateForm); err != nil {
		return models.Event{}, err
	}

	ev.ID = primitive.NewObjectID()
	ev.Name = normalize.Name(ev.Name)
	ev.NameCI = text.Fold(ev.Name)
	if ev.MemberSubmissions == nil {
		ev.MemberSubmissions = []models.Submission{}
	}
	if ev.CandidateSubmissions == nil {
		ev.CandidateSubmissions = []models.Submission{}
	}

	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// GetByID loads an event scoped to an organization.
func (s *Store) GetByID(ctx context.Context, id, orgID primitive.ObjectID) (models.Event, error) {
	var ev models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&ev)
	if err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// GetByIDs batch-loads events for the read-side resolver, sorted by
// start time and tenant-scoped.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID, orgID primitive.ObjectID) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "organization_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FindByURLName resolves an event from its URL slug within one
// organization.
func (s *Store) FindByURLName(ctx context.Context, slug string, orgID primitive.ObjectID) (models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return models.Event{}, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var ev models.Event
		if err := cur.Decode(&ev); err != nil {
			return models.Event{}, err
		}
		if urlname.Format(ev.Name) == slug {
			return ev, nil
		}
	}
	if err := cur.Err(); err != nil {
		return models.Event{}, err
	}
	return models.Event{}, mongo.ErrNoDocuments
}

// List returns an organization's events sorted by start time,
// optionally bounded by a date range and a case-insensitive name
// substring.
func (s *Store) List(ctx context.Context, orgID primitive.ObjectID, f ListFilter) ([]models.Event, error) {
	filter := bson.M{"organization_id": orgID}
	if !f.From.IsZero() || !f.To.IsZero() {
		window := bson.M{}
		if !f.From.IsZero() {
			window["$gte"] = f.From
		}
		if !f.To.IsZero() {
			window["$lte"] = f.To
		}
		filter["start"] = window
	}
	if f.Name != "" {
		filter["name_ci"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(text.Fold(f.Name)),
		}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update applies a whitelisted change set. When either end of the time
// window changes, the resulting window must still be valid, checked
// against the stored value for the side the change set omits.
func (s *Store) Update(ctx context.Context, id, orgID primitive.ObjectID, set bson.M) (models.Event, error) {
	_, hasStart := set["start"]
	_, hasEnd := set["end"]
	if hasStart || hasEnd {
		current, err := s.GetByID(ctx, id, orgID)
		if err != nil {
			return models.Event{}, err
		}
		start, end := current.Start, current.End
		if hasStart {
			start = set["start"].(time.Time)
		}
		if hasEnd {
			end = set["end"].(time.Time)
		}
		if !end.After(start) {
			return models.Event{}, ErrEndBeforeStart
		}
	}
	if v, ok := set["name"]; ok {
		name := normalize.Name(v.(string))
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if v, ok := set["member_form"]; ok {
		if err := validateForm(v.(models.Form)); err != nil {
			return models.Event{}, err
		}
	}
	if v, ok := set["candidate_form"]; ok {
		if err := validateForm(v.(models.Form)); err != nil {
			return models.Event{}, err
		}
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "organization_id": orgID}, bson.M{"$set": set})
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		return models.Event{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id, orgID)
}

func validateForm(f models.Form) error {
	for _, q := range f.Questions {
		if !models.ValidQuestionType(q.Type) {
			return ErrBadQuestionType
		}
	}
	return nil
}
