// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is the fraternity chapter tenant. Members, candidates,
// and events are all scoped to exactly one organization.
//
// Invariant: Leader, when set, must be an element of Members.
type Organization struct {
	ID                 primitive.ObjectID   `bson:"_id" json:"id"`
	Name               string               `bson:"name" json:"name"`
	NameCI             string               `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	University         string               `bson:"university" json:"university"`
	ChapterDesignation string               `bson:"chapter_designation,omitempty" json:"chapter_designation,omitempty"`
	ContactEmail       string               `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactPhone       string               `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Tags               []string             `bson:"tags" json:"tags"`
	Members            []primitive.ObjectID `bson:"members" json:"members"`
	Leader             *primitive.ObjectID  `bson:"leader,omitempty" json:"leader,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FormattedName returns the display name used on public pages,
// e.g. "Alpha Tau - State University".
func (o Organization) FormattedName() string {
	return o.Name + " - " + o.University
}
