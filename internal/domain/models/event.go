// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a recruitment event with two form definitions and the
// submissions collected against them. Submission order is insertion
// order; a resubmission replaces the prior payload in place.
type Event struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"-"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Start          time.Time          `bson:"start" json:"start"`
	End            time.Time          `bson:"end" json:"end"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`

	MemberForm    Form `bson:"member_form" json:"member_form"`
	CandidateForm Form `bson:"candidate_form" json:"candidate_form"`

	MemberSubmissions    []Submission `bson:"member_submissions" json:"member_submissions"`
	CandidateSubmissions []Submission `bson:"candidate_submissions" json:"candidate_submissions"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Form is an ordered list of questions.
type Form struct {
	Questions []Question `bson:"questions" json:"questions"`
}

// Question is one form field definition.
type Question struct {
	Type     string   `bson:"type" json:"type"` // see QuestionTypes
	Prompt   string   `bson:"prompt" json:"prompt"`
	Options  []string `bson:"options,omitempty" json:"options,omitempty"`
	Required bool     `bson:"required" json:"required"`
}

// Submission ties one subject (member or candidate, by id) to the
// responses they submitted for this event. Responses are stored as an
// opaque JSON string; the core never interprets the payload.
type Submission struct {
	Subject   primitive.ObjectID `bson:"subject" json:"subject"`
	Responses string             `bson:"responses" json:"responses"`
}
