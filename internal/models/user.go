package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RolePublisher UserRole = "PUBLISHER"
	RoleStudent   UserRole = "STUDENT"
)

// User represents an account stored in the users table. Students carry their
// study-abroad profile captured at sign-up.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	Country      *string    `db:"country" json:"country,omitempty"`
	FieldOfStudy *string    `db:"field_of_study" json:"field_of_study,omitempty"`
	Level        *string    `db:"level" json:"level,omitempty"`
	EnglishTest  *string    `db:"english_test" json:"english_test,omitempty"`
	Funds        *string    `db:"funds" json:"funds,omitempty"`
	WantsLoan    bool       `db:"wants_loan" json:"wants_loan"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
