package models

import "time"

// Blog is an article published by the consultancy.
type Blog struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Slug            string    `db:"slug" json:"slug"`
	Description     string    `db:"description" json:"description"`
	Content         string    `db:"content" json:"content"`
	Category        string    `db:"category" json:"category"`
	AuthorName      string    `db:"author_name" json:"author_name"`
	Image           string    `db:"image" json:"image"`
	ReadTime        string    `db:"read_time" json:"read_time"`
	ReadTimeMinutes int       `db:"read_time_minutes" json:"read_time_minutes"`
	PublishedAt     time.Time `db:"published_at" json:"published_at"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedBy       *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// BlogRequest is the create/update payload for blogs. ReadTimeMinutes is
// derived from ReadTime when omitted.
type BlogRequest struct {
	Title           string     `json:"title" validate:"required,max=255"`
	Slug            string     `json:"slug" validate:"omitempty,max=255"`
	Description     string     `json:"description"`
	Content         string     `json:"content"`
	Category        string     `json:"category" validate:"omitempty,max=100"`
	AuthorName      string     `json:"author_name" validate:"omitempty,max=150"`
	Image           string     `json:"image" validate:"omitempty,max=500"`
	ReadTime        string     `json:"read_time" validate:"omitempty,max=50"`
	ReadTimeMinutes int        `json:"read_time_minutes" validate:"gte=0"`
	PublishedAt     *time.Time `json:"published_at"`
}
