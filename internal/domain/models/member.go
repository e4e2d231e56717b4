// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a current organization participant with a role.
//
// Emails are globally unique across all organizations (unlike
// candidates, which are unique per organization only).
type Member struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	NameCI         string               `bson:"name_ci" json:"-"`
	Email          string               `bson:"email" json:"email"`
	PasswordHash   string               `bson:"password_hash" json:"-"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Major          string               `bson:"major,omitempty" json:"major,omitempty"`
	Year           int                  `bson:"year,omitempty" json:"year,omitempty"`
	OrganizationID primitive.ObjectID   `bson:"organization_id" json:"organization_id"`
	Role           string               `bson:"role" json:"role"` // leader | recruitment_chair | member
	PledgeSemester Semester             `bson:"pledge_semester,omitempty" json:"pledge_semester"`
	EventsAttended []primitive.ObjectID `bson:"events_attended" json:"events_attended"`
	IsActive       bool                 `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Semester identifies a recruitment cycle (e.g. "Fall" 2025).
type Semester struct {
	Semester string `bson:"semester,omitempty" json:"semester,omitempty"`
	Year     int    `bson:"year,omitempty" json:"year,omitempty"`
}
