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

const examColumns = `id, name, slug, exam_type, overview, eligibility, exam_pattern, syllabus, important_dates, is_active, created_by, created_at, updated_at`

// ExamRepository manages persistence for exams.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs an ExamRepository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// ListActive returns every active exam, newest first.
func (r *ExamRepository) ListActive(ctx context.Context) ([]models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE is_active = TRUE ORDER BY created_at DESC`
	exams := []models.Exam{}
	if err := r.db.SelectContext(ctx, &exams, query); err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// FindByID fetches an exam by identifier.
func (r *ExamRepository) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE id = $1`
	var exam models.Exam
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find exam by id: %w", err)
	}
	return &exam, nil
}

// SlugExists checks whether slug is taken, optionally excluding one exam.
func (r *ExamRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "exams", slug, excludeID)
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = now
	}
	exam.UpdatedAt = now
	const query = `INSERT INTO exams (id, name, slug, exam_type, overview, eligibility, exam_pattern, syllabus, important_dates, is_active, created_by, created_at, updated_at)
        VALUES (:id, :name, :slug, :exam_type, :overview, :eligibility, :exam_pattern, :syllabus, :important_dates, :is_active, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exam); err != nil {
		return fmt.Errorf("create exam: %w", err)
	}
	return nil
}

// Update modifies an existing exam.
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	exam.UpdatedAt = time.Now().UTC()
	const query = `UPDATE exams SET name = :name, slug = :slug, exam_type = :exam_type, overview = :overview, eligibility = :eligibility, exam_pattern = :exam_pattern,
        syllabus = :syllabus, important_dates = :important_dates, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, exam); err != nil {
		return fmt.Errorf("update exam: %w", err)
	}
	return nil
}

// Deactivate soft deletes an exam.
func (r *ExamRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE exams SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate exam: %w", err)
	}
	return nil
}
