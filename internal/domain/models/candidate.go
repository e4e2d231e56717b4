// internal/domain/models/candidate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate is a prospective member ("rushee") being evaluated by one
// organization. The (email, organization_id) pair is unique; the same
// email may rush a different organization independently.
type Candidate struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	NameCI         string               `bson:"name_ci" json:"-"`
	Email          string               `bson:"email" json:"email"`
	OrganizationID primitive.ObjectID   `bson:"organization_id" json:"organization_id"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Major          string               `bson:"major,omitempty" json:"major,omitempty"`
	Year           string               `bson:"year,omitempty" json:"year,omitempty"`
	GPA            *float64             `bson:"gpa,omitempty" json:"gpa,omitempty"`
	Picture        string               `bson:"picture,omitempty" json:"picture,omitempty"`
	Resume         string               `bson:"resume,omitempty" json:"resume,omitempty"`
	Tags           []string             `bson:"tags" json:"tags"`
	RushCycle      Semester             `bson:"rush_cycle,omitempty" json:"rush_cycle"`
	Notes          []Note               `bson:"notes" json:"notes"`
	Summary        string               `bson:"summary,omitempty" json:"summary,omitempty"`
	Status         string               `bson:"status" json:"status"`
	EventsAttended []primitive.ObjectID `bson:"events_attended" json:"events_attended"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Note is a timestamped comment attached to a candidate. Notes are
// append-only; there is no edit or delete (the audit trail is the point).
//
// Author is nil when the note was left anonymously; the read side
// renders those with the display name "Anonymous".
//
// Invariant: a member id appears in at most one of Upvotes/Downvotes.
type Note struct {
	Content   string               `bson:"content" json:"content"`
	Author    *primitive.ObjectID  `bson:"author,omitempty" json:"author,omitempty"`
	Anonymous bool                 `bson:"anonymous" json:"anonymous"`
	Timestamp time.Time            `bson:"timestamp" json:"timestamp"`
	Upvotes   []primitive.ObjectID `bson:"upvotes" json:"upvotes"`
	Downvotes []primitive.ObjectID `bson:"downvotes" json:"downvotes"`
}
