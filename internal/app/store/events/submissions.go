// internal/app/store/events/submissions.go
//
// Submissions are keyed by subject within each event. A resubmission
// replaces the prior responses in place (insertion order is preserved)
// and never double-counts attendance. The replace and the first-insert
// are both single conditional updates; the attendance side effect runs
// in a transaction when the deployment supports one, and as ordered
// writes otherwise (the submission lands first, so a crash between the
// two leaves attendance recoverable by resubmitting).
package eventstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rushtracker/rushtracker/internal/app/system/txn"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInvalidResponses is returned when the responses payload is not
// valid JSON. The payload is otherwise opaque.
var ErrInvalidResponses = errors.New("responses must be a JSON document")

// AttendanceRecorder records that a subject attended an event. Both the
// member and candidate stores satisfy it.
type AttendanceRecorder interface {
	RecordAttendance(ctx context.Context, id, eventID primitive.ObjectID) error
}

// Submit upserts a form submission for one subject and records their
// attendance. kind selects the member or candidate sequence; rec must
// belong to the same kind.
func (s *Store) Submit(ctx context.Context, client *mongo.Client, eventID, orgID primitive.ObjectID, kind models.SubjectKind, subject primitive.ObjectID, responses string, rec AttendanceRecorder) (models.Event, error) {
	if !json.Valid([]byte(responses)) {
		return models.Event{}, ErrInvalidResponses
	}
	field := submissionField(kind)

	apply := func(ctx context.Context) error {
		if err := s.upsertSubmission(ctx, eventID, orgID, field, subject, responses); err != nil {
			return err
		}
		return rec.RecordAttendance(ctx, subject, eventID)
	}

	err := txn.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		return apply(sc)
	})
	if err != nil {
		if !txn.IsNotSupported(err) {
			return models.Event{}, err
		}
		// Standalone deployment. Ordered writes, submission first.
		if err := apply(ctx); err != nil {
			return models.Event{}, err
		}
	}
	return s.GetByID(ctx, eventID, orgID)
}

// ListSubmissions returns one submission sequence in insertion order.
func (s *Store) ListSubmissions(ctx context.Context, eventID, orgID primitive.ObjectID, kind models.SubjectKind) ([]models.Submission, error) {
	ev, err := s.GetByID(ctx, eventID, orgID)
	if err != nil {
		return nil, err
	}
	if kind == models.SubjectMember {
		return ev.MemberSubmissions, nil
	}
	return ev.CandidateSubmissions, nil
}

func (s *Store) upsertSubmission(ctx context.Context, eventID, orgID primitive.ObjectID, field string, subject primitive.ObjectID, responses string) error {
	now := time.Now().UTC()

	// Replace in place when the subject already submitted.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": eventID, "organization_id": orgID, field + ".subject": subject},
		bson.M{"$set": bson.M{
			field + ".$.responses": responses,
			"updated_at":           now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// First submission. The $ne guard keeps a concurrent first
	// submission by the same subject from appending twice.
	res, err = s.c.UpdateOne(ctx,
		bson.M{"_id": eventID, "organization_id": orgID, field + ".subject": bson.M{"$ne": subject}},
		bson.M{
			"$push": bson.M{field: models.Submission{Subject: subject, Responses: responses}},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Both writes missed: either the event is gone, or a concurrent
	// first submission landed between them. Retry the replace once.
	res, err = s.c.UpdateOne(ctx,
		bson.M{"_id": eventID, "organization_id": orgID, field + ".subject": subject},
		bson.M{"$set": bson.M{
			field + ".$.responses": responses,
			"updated_at":           now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func submissionField(kind models.SubjectKind) string {
	if kind == models.SubjectMember {
		return "member_submissions"
	}
	return "candidate_submissions"
}
