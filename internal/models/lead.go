package models

import "time"

// Lead is a consultation request submitted through the contact form.
type Lead struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	City      string    `db:"city" json:"city"`
	Message   string    `db:"message" json:"message,omitempty"`
	Source    string    `db:"source" json:"source"`
	IPAddress string    `db:"ip_address" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LeadRequest is the contact form payload.
type LeadRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=30"`
	City    string `json:"city" validate:"required,max=100"`
	Message string `json:"message" validate:"omitempty,max=2000"`
	Source  string `json:"source" validate:"omitempty,max=50"`
}

// LeadFilter narrows the admin lead list.
type LeadFilter struct {
	Search   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
