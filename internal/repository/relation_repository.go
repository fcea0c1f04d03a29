package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studyabroad-api/internal/models"
)

// RelationRepository manages college-course links.
type RelationRepository struct {
	db *sqlx.DB
}

// NewRelationRepository constructs a RelationRepository.
func NewRelationRepository(db *sqlx.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// Exists reports whether the college already offers the course.
func (r *RelationRepository) Exists(ctx context.Context, collegeID, courseID string) (bool, error) {
	const query = `SELECT 1 FROM college_courses WHERE college_id = $1 AND course_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, collegeID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check college course: %w", err)
	}
	return true, nil
}

// Create links a course to a college.
func (r *RelationRepository) Create(ctx context.Context, rel *models.CollegeCourse) error {
	if rel.ID == "" {
		rel.ID = uuid.NewString()
	}
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO college_courses (id, college_id, course_id, created_at) VALUES (:id, :college_id, :course_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rel); err != nil {
		return fmt.Errorf("create college course: %w", err)
	}
	return nil
}
