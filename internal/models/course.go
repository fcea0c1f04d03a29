package models

import (
	"time"

	"github.com/lib/pq"
)

// Course is a programme of study listed in the catalog.
type Course struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Slug        string         `db:"slug" json:"slug"`
	Description string         `db:"description" json:"description"`
	Category    string         `db:"category" json:"category"`
	Duration    string         `db:"duration" json:"duration"`
	Level       string         `db:"level" json:"level"`
	Fees        string         `db:"fees" json:"fees"`
	Prospects   string         `db:"prospects" json:"prospects"`
	PopularIn   pq.StringArray `db:"popular_in" json:"popular_in"`
	Image       string         `db:"image" json:"image"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	CreatedBy   *string        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// CourseRequest is the create/update payload for courses.
type CourseRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Slug        string   `json:"slug" validate:"omitempty,max=255"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"omitempty,max=100"`
	Duration    string   `json:"duration" validate:"omitempty,max=100"`
	Level       string   `json:"level" validate:"omitempty,max=100"`
	Fees        string   `json:"fees" validate:"omitempty,max=100"`
	Prospects   string   `json:"prospects"`
	PopularIn   []string `json:"popular_in" validate:"omitempty,dive,max=100"`
	Image       string   `json:"image" validate:"omitempty,max=500"`
}
