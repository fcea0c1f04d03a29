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

const collegeColumns = `id, name, slug, location, type, rank, rank_position, tuition, acceptance, rating, employability, overview, website, image, tags, status, created_by, created_at, updated_at`

// CollegeRepository manages persistence for colleges.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// ListActive returns every active college, newest first.
func (r *CollegeRepository) ListActive(ctx context.Context) ([]models.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE status = $1 ORDER BY created_at DESC`
	colleges := []models.College{}
	if err := r.db.SelectContext(ctx, &colleges, query, models.CollegeStatusActive); err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// FindByID fetches a college by identifier.
func (r *CollegeRepository) FindByID(ctx context.Context, id string) (*models.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE id = $1`
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find college by id: %w", err)
	}
	return &college, nil
}

// FindBySlug fetches a college by its exact slug.
func (r *CollegeRepository) FindBySlug(ctx context.Context, slug string) (*models.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE slug = $1`
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find college by slug: %w", err)
	}
	return &college, nil
}

// FindByName returns colleges whose name equals name, ignoring case.
func (r *CollegeRepository) FindByName(ctx context.Context, name string) ([]models.College, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE LOWER(name) = LOWER($1)`
	colleges := []models.College{}
	if err := r.db.SelectContext(ctx, &colleges, query, name); err != nil {
		return nil, fmt.Errorf("find colleges by name: %w", err)
	}
	return colleges, nil
}

// SlugExists checks whether slug is taken, optionally excluding one college.
func (r *CollegeRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "colleges", slug, excludeID)
}

// Create inserts a new college.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	if college.ID == "" {
		college.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if college.CreatedAt.IsZero() {
		college.CreatedAt = now
	}
	college.UpdatedAt = now
	const query = `INSERT INTO colleges (id, name, slug, location, type, rank, rank_position, tuition, acceptance, rating, employability, overview, website, image, tags, status, created_by, created_at, updated_at)
        VALUES (:id, :name, :slug, :location, :type, :rank, :rank_position, :tuition, :acceptance, :rating, :employability, :overview, :website, :image, :tags, :status, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return fmt.Errorf("create college: %w", err)
	}
	return nil
}

// Update modifies an existing college.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	college.UpdatedAt = time.Now().UTC()
	const query = `UPDATE colleges SET name = :name, slug = :slug, location = :location, type = :type, rank = :rank, rank_position = :rank_position, tuition = :tuition,
        acceptance = :acceptance, rating = :rating, employability = :employability, overview = :overview, website = :website, image = :image, tags = :tags,
        status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, college); err != nil {
		return fmt.Errorf("update college: %w", err)
	}
	return nil
}

// Deactivate hides a college from listings.
func (r *CollegeRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE colleges SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.CollegeStatusInactive, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate college: %w", err)
	}
	return nil
}

func slugExists(ctx context.Context, db *sqlx.DB, table, slug, excludeID string) (bool, error) {
	query := "SELECT 1 FROM " + table + " WHERE slug = $1"
	args := []interface{}{slug}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check %s slug: %w", table, err)
	}
	return true, nil
}
