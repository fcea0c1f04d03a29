package models

import (
	"time"

	"github.com/lib/pq"
)

// CollegeStatus values.
const (
	CollegeStatusActive   = "Active"
	CollegeStatusInactive = "Inactive"
)

// College is an institution listed in the catalog.
type College struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Slug          string         `db:"slug" json:"slug"`
	Location      string         `db:"location" json:"location"`
	Type          string         `db:"type" json:"type"`
	Rank          string         `db:"rank" json:"rank"`
	RankPosition  int            `db:"rank_position" json:"rank_position"`
	Tuition       string         `db:"tuition" json:"tuition"`
	Acceptance    string         `db:"acceptance" json:"acceptance"`
	Rating        string         `db:"rating" json:"rating"`
	Employability string         `db:"employability" json:"employability"`
	Overview      string         `db:"overview" json:"overview"`
	Website       string         `db:"website" json:"website"`
	Image         string         `db:"image" json:"image"`
	Tags          pq.StringArray `db:"tags" json:"tags"`
	Status        string         `db:"status" json:"status"`
	CreatedBy     *string        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// CollegeRequest is the create/update payload for colleges.
type CollegeRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Location      string   `json:"location" validate:"omitempty,max=255"`
	Type          string   `json:"type" validate:"omitempty,max=100"`
	Rank          string   `json:"rank" validate:"omitempty,max=50"`
	RankPosition  int      `json:"rank_position" validate:"gte=0"`
	Tuition       string   `json:"tuition" validate:"omitempty,max=100"`
	Acceptance    string   `json:"acceptance" validate:"omitempty,max=50"`
	Rating        string   `json:"rating" validate:"omitempty,max=20"`
	Employability string   `json:"employability" validate:"omitempty,max=50"`
	Overview      string   `json:"overview"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Image         string   `json:"image" validate:"omitempty,max=500"`
	Tags          []string `json:"tags" validate:"omitempty,dive,max=50"`
	Status        string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
}
