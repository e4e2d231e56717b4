// internal/app/store/candidates/notes.go
package candidatestore

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrEmptyNote is returned when the note content is blank after
// sanitization.
var ErrEmptyNote = errors.New("note content must not be empty")

// AddNote appends a note to the candidate. Notes are append-only and
// addressed by index thereafter. Pass a nil author for an anonymous
// note; the author id is then never persisted.
func (s *Store) AddNote(ctx context.Context, id, orgID primitive.ObjectID, content string, author *primitive.ObjectID) (models.Candidate, error) {
	content = strings.TrimSpace(s.sanitize.Sanitize(content))
	if content == "" {
		return models.Candidate{}, ErrEmptyNote
	}

	note := models.Note{
		Content:   content,
		Author:    author,
		Anonymous: author == nil,
		Timestamp: time.Now().UTC(),
		Upvotes:   []primitive.ObjectID{},
		Downvotes: []primitive.ObjectID{},
	}
	return s.update(ctx,
		bson.M{"_id": id, "organization_id": orgID},
		bson.M{
			"$push": bson.M{"notes": note},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
}

// NoteAt bounds-checks a note index against the candidate's note
// sequence and returns the note.
func NoteAt(cand models.Candidate, index int) (models.Note, error) {
	if index < 0 || index >= len(cand.Notes) {
		return models.Note{}, ErrNoteNotFound
	}
	return cand.Notes[index], nil
}

func noteField(index int, field string) string {
	return "notes." + strconv.Itoa(index) + "." + field
}
