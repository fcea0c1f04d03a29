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

const universityColumns = `id, name, slug, country, location, logo, image, description, is_featured, is_active, created_by, created_at, updated_at`

// UniversityRepository manages persistence for partner universities.
type UniversityRepository struct {
	db *sqlx.DB
}

// NewUniversityRepository constructs a UniversityRepository.
func NewUniversityRepository(db *sqlx.DB) *UniversityRepository {
	return &UniversityRepository{db: db}
}

// ListActive returns every active university, featured first.
func (r *UniversityRepository) ListActive(ctx context.Context) ([]models.University, error) {
	query := `SELECT ` + universityColumns + ` FROM universities WHERE is_active = TRUE ORDER BY is_featured DESC, name`
	universities := []models.University{}
	if err := r.db.SelectContext(ctx, &universities, query); err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	return universities, nil
}

// FindByID fetches a university by identifier.
func (r *UniversityRepository) FindByID(ctx context.Context, id string) (*models.University, error) {
	query := `SELECT ` + universityColumns + ` FROM universities WHERE id = $1`
	var university models.University
	if err := r.db.GetContext(ctx, &university, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find university by id: %w", err)
	}
	return &university, nil
}

// SlugExists checks whether slug is taken, optionally excluding one university.
func (r *UniversityRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "universities", slug, excludeID)
}

// Create inserts a new university.
func (r *UniversityRepository) Create(ctx context.Context, university *models.University) error {
	if university.ID == "" {
		university.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if university.CreatedAt.IsZero() {
		university.CreatedAt = now
	}
	university.UpdatedAt = now
	const query = `INSERT INTO universities (id, name, slug, country, location, logo, image, description, is_featured, is_active, created_by, created_at, updated_at)
        VALUES (:id, :name, :slug, :country, :location, :logo, :image, :description, :is_featured, :is_active, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, university); err != nil {
		return fmt.Errorf("create university: %w", err)
	}
	return nil
}

// Update modifies an existing university.
func (r *UniversityRepository) Update(ctx context.Context, university *models.University) error {
	university.UpdatedAt = time.Now().UTC()
	const query = `UPDATE universities SET name = :name, slug = :slug, country = :country, location = :location, logo = :logo, image = :image,
        description = :description, is_featured = :is_featured, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, university); err != nil {
		return fmt.Errorf("update university: %w", err)
	}
	return nil
}

// Deactivate soft deletes a university.
func (r *UniversityRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE universities SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate university: %w", err)
	}
	return nil
}
