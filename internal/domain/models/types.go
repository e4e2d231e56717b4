// internal/domain/models/types.go
package models

// Member roles.
const (
	RoleLeader           = "leader"
	RoleRecruitmentChair = "recruitment_chair"
	RoleMember           = "member"
)

// Candidate statuses. These are wire values and persisted as-is.
const (
	StatusPotential = "Potential"
	StatusActive    = "Active"
	StatusDropped   = "Dropped"
	StatusRejected  = "Rejected"
)

// ValidStatus reports whether s is a recognized candidate status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPotential, StatusActive, StatusDropped, StatusRejected:
		return true
	}
	return false
}

// ValidRole reports whether r is a recognized member role.
func ValidRole(r string) bool {
	switch r {
	case RoleLeader, RoleRecruitmentChair, RoleMember:
		return true
	}
	return false
}

// Question types for event forms.
const (
	QuestionText           = "text"
	QuestionRating         = "rating"
	QuestionMultipleChoice = "multipleChoice"
	QuestionCheckbox       = "checkbox"
	QuestionTextArea       = "textarea"
	QuestionImage          = "image"
)

// ValidQuestionType reports whether t is a recognized question type.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionText, QuestionRating, QuestionMultipleChoice,
		QuestionCheckbox, QuestionTextArea, QuestionImage:
		return true
	}
	return false
}

// SubjectKind selects which submission sequence an operation targets.
type SubjectKind string

const (
	SubjectMember    SubjectKind = "member"
	SubjectCandidate SubjectKind = "candidate"
)

// ValidSubjectKind reports whether k is "member" or "candidate".
func ValidSubjectKind(k SubjectKind) bool {
	return k == SubjectMember || k == SubjectCandidate
}
