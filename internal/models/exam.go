package models

import "time"

// ExamType values.
const (
	ExamTypeNational = "National"
	ExamTypeState    = "State"
)

// Exam is an entrance or admission test.
type Exam struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Slug           string    `db:"slug" json:"slug"`
	ExamType       string    `db:"exam_type" json:"exam_type"`
	Overview       string    `db:"overview" json:"overview"`
	Eligibility    string    `db:"eligibility" json:"eligibility"`
	ExamPattern    string    `db:"exam_pattern" json:"exam_pattern"`
	Syllabus       string    `db:"syllabus" json:"syllabus"`
	ImportantDates string    `db:"important_dates" json:"important_dates"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedBy      *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ExamRequest is the create/update payload for exams.
type ExamRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Slug           string `json:"slug" validate:"omitempty,max=255"`
	ExamType       string `json:"exam_type" validate:"required,oneof=National State"`
	Overview       string `json:"overview"`
	Eligibility    string `json:"eligibility"`
	ExamPattern    string `json:"exam_pattern"`
	Syllabus       string `json:"syllabus"`
	ImportantDates string `json:"important_dates"`
}
