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

const courseColumns = `id, title, slug, description, category, duration, level, fees, prospects, popular_in, image, is_active, created_by, created_at, updated_at`

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListActive returns every active course, newest first.
func (r *CourseRepository) ListActive(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE is_active = TRUE ORDER BY created_at DESC`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	return r.findOne(ctx, "id", id)
}

// FindBySlug fetches an active course by slug.
func (r *CourseRepository) FindBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *CourseRepository) findOne(ctx context.Context, column, value string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE ` + column + ` = $1`
	if column == "slug" {
		query += ` AND is_active = TRUE`
	}
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, value); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course by %s: %w", column, err)
	}
	return &course, nil
}

// ListByCollege returns the active courses linked to a college.
func (r *CourseRepository) ListByCollege(ctx context.Context, collegeID string) ([]models.Course, error) {
	query := `SELECT c.id, c.title, c.slug, c.description, c.category, c.duration, c.level, c.fees, c.prospects, c.popular_in, c.image, c.is_active, c.created_by, c.created_at, c.updated_at
        FROM courses c JOIN college_courses cc ON cc.course_id = c.id
        WHERE cc.college_id = $1 AND c.is_active = TRUE ORDER BY c.title`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, collegeID); err != nil {
		return nil, fmt.Errorf("list courses by college: %w", err)
	}
	return courses, nil
}

// SlugExists checks whether slug is taken, optionally excluding one course.
func (r *CourseRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "courses", slug, excludeID)
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, title, slug, description, category, duration, level, fees, prospects, popular_in, image, is_active, created_by, created_at, updated_at)
        VALUES (:id, :title, :slug, :description, :category, :duration, :level, :fees, :prospects, :popular_in, :image, :is_active, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET title = :title, slug = :slug, description = :description, category = :category, duration = :duration, level = :level,
        fees = :fees, prospects = :prospects, popular_in = :popular_in, image = :image, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Deactivate soft deletes a course.
func (r *CourseRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE courses SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate course: %w", err)
	}
	return nil
}
