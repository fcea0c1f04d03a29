package models

import "time"

// Country is a study destination.
type Country struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// University is a partner institution shown under a destination country.
type University struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Country     string    `db:"country" json:"country"`
	Location    string    `db:"location" json:"location"`
	Logo        string    `db:"logo" json:"logo"`
	Image       string    `db:"image" json:"image"`
	Description string    `db:"description" json:"description"`
	IsFeatured  bool      `db:"is_featured" json:"is_featured"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedBy   *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// UniversityRequest is the create/update payload for universities.
type UniversityRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"omitempty,max=255"`
	Country     string `json:"country" validate:"required,max=100"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	Logo        string `json:"logo" validate:"omitempty,max=500"`
	Image       string `json:"image" validate:"omitempty,max=500"`
	Description string `json:"description"`
	IsFeatured  bool   `json:"is_featured"`
}
