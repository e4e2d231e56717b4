// internal/app/store/queries/submissionviews/submissionviews.go
//
// Package submissionviews is the read side for hydrated API responses.
// Documents store subject and author references as ObjectIDs; these
// resolvers batch-load the referenced records and attach the display
// fields clients render.
package submissionviews

import (
	"context"
	"time"

	candidatestore "github.com/rushtracker/rushtracker/internal/app/store/candidates"
	eventstore "github.com/rushtracker/rushtracker/internal/app/store/events"
	memberstore "github.com/rushtracker/rushtracker/internal/app/store/members"
	"github.com/rushtracker/rushtracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnonymousAuthor is the display name for notes left without
// attribution.
const AnonymousAuthor = "Anonymous"

type Resolver struct {
	Members    *memberstore.Store
	Candidates *candidatestore.Store
	Events     *eventstore.Store
}

// SubmissionView is one submission with its subject's display fields
// attached.
type SubmissionView struct {
	Subject   primitive.ObjectID `json:"subject"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Responses string             `json:"responses"`
}

// NoteView is one candidate note with the author reference replaced by
// a display name.
type NoteView struct {
	Content   string               `json:"content"`
	Author    string               `json:"author"`
	Timestamp time.Time            `json:"timestamp"`
	Upvotes   []primitive.ObjectID `json:"upvotes"`
	Downvotes []primitive.ObjectID `json:"downvotes"`
}

// EventRef is a resolved attended-event reference.
type EventRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Start time.Time          `json:"start"`
}

// Submissions resolves one submission sequence against the store for
// its subject kind. Subjects whose records have since been deleted are
// kept with blank display fields rather than dropped, so the sequence
// still lines up with the stored one.
func (r *Resolver) Submissions(ctx context.Context, subs []models.Submission, kind models.SubjectKind) ([]SubmissionView, error) {
	ids := make([]primitive.ObjectID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.Subject)
	}

	names := make(map[primitive.ObjectID][2]string, len(ids))
	switch kind {
	case models.SubjectMember:
		members, err := r.Members.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			names[m.ID] = [2]string{m.Name, m.Email}
		}
	case models.SubjectCandidate:
		candidates, err := r.Candidates.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			names[c.ID] = [2]string{c.Name, c.Email}
		}
	}

	views := make([]SubmissionView, 0, len(subs))
	for _, sub := range subs {
		display := names[sub.Subject]
		views = append(views, SubmissionView{
			Subject:   sub.Subject,
			Name:      display[0],
			Email:     display[1],
			Responses: sub.Responses,
		})
	}
	return views, nil
}

// Notes resolves the author display name for each note. Anonymous
// notes, and notes whose author has since been deleted, render as
// AnonymousAuthor.
func (r *Resolver) Notes(ctx context.Context, notes []models.Note) ([]NoteView, error) {
	var ids []primitive.ObjectID
	for _, n := range notes {
		if n.Author != nil {
			ids = append(ids, *n.Author)
		}
	}

	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) > 0 {
		members, err := r.Members.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			names[m.ID] = m.Name
		}
	}

	views := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		author := AnonymousAuthor
		if n.Author != nil {
			if name, ok := names[*n.Author]; ok {
				author = name
			}
		}
		views = append(views, NoteView{
			Content:   n.Content,
			Author:    author,
			Timestamp: n.Timestamp,
			Upvotes:   n.Upvotes,
			Downvotes: n.Downvotes,
		})
	}
	return views, nil
}

// AttendedEvents resolves attended-event references to id, name, and
// start time, dropping references to deleted events.
func (r *Resolver) AttendedEvents(ctx context.Context, ids []primitive.ObjectID, orgID primitive.ObjectID) ([]EventRef, error) {
	events, err := r.Events.GetByIDs(ctx, ids, orgID)
	if err != nil {
		return nil, err
	}
	refs := make([]EventRef, 0, len(events))
	for _, ev := range events {
		refs = append(refs, EventRef{ID: ev.ID, Name: ev.Name, Start: ev.Start})
	}
	return refs, nil
}
