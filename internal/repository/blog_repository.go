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

const blogColumns = `id, title, slug, description, content, category, author_name, image, read_time, read_time_minutes, published_at, is_active, created_by, created_at, updated_at`

// BlogRepository manages persistence for blog posts.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository constructs a BlogRepository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// ListActive returns every active blog post, most recently published first.
func (r *BlogRepository) ListActive(ctx context.Context) ([]models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE is_active = TRUE ORDER BY published_at DESC`
	blogs := []models.Blog{}
	if err := r.db.SelectContext(ctx, &blogs, query); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

// FindByID fetches a blog post by identifier.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`
	var blog models.Blog
	if err := r.db.GetContext(ctx, &blog, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return &blog, nil
}

// FindBySlug fetches an active blog post by slug.
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE slug = $1 AND is_active = TRUE`
	var blog models.Blog
	if err := r.db.GetContext(ctx, &blog, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return &blog, nil
}

// SlugExists checks whether slug is taken, optionally excluding one post.
func (r *BlogRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugExists(ctx, r.db, "blogs", slug, excludeID)
}

// Create inserts a new blog post.
func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	if blog.PublishedAt.IsZero() {
		blog.PublishedAt = now
	}
	blog.UpdatedAt = now
	const query = `INSERT INTO blogs (id, title, slug, description, content, category, author_name, image, read_time, read_time_minutes, published_at, is_active, created_by, created_at, updated_at)
        VALUES (:id, :title, :slug, :description, :content, :category, :author_name, :image, :read_time, :read_time_minutes, :published_at, :is_active, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, blog); err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

// Update modifies an existing blog post.
func (r *BlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	blog.UpdatedAt = time.Now().UTC()
	const query = `UPDATE blogs SET title = :title, slug = :slug, description = :description, content = :content, category = :category, author_name = :author_name,
        image = :image, read_time = :read_time, read_time_minutes = :read_time_minutes, published_at = :published_at, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, blog); err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return nil
}

// Deactivate soft deletes a blog post.
func (r *BlogRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE blogs SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate blog: %w", err)
	}
	return nil
}
