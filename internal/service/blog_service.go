package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
)

type blogRepository interface {
	ListActive(ctx context.Context) ([]models.Blog, error)
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	Deactivate(ctx context.Context, id string) error
}

// BlogService implements blog management.
type BlogService struct {
	contentBase
	repo blogRepository
	now  func() time.Time
}

// NewBlogService constructs a BlogService.
func NewBlogService(repo blogRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *BlogService {
	return &BlogService{contentBase: newContentBase(catalog.KindBlogs, validate, logger, cache), repo: repo, now: time.Now}
}

// ListActive returns the authoritative blog collection.
func (s *BlogService) ListActive(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, internal(err, "failed to list blogs")
	}
	return blogs, nil
}

// Get returns a blog by id.
func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "blog")
	}
	return blog, nil
}

// GetBySlug returns a blog by slug.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, s.lookupError(err, "blog")
	}
	return blog, nil
}

// Create validates and stores a blog. PublishedAt defaults to now.
func (s *BlogService) Create(ctx context.Context, req models.BlogRequest, actorID string) (*models.Blog, error) {
	if err := s.validate(req, "blog"); err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Title, "", "blog")
	if err != nil {
		return nil, err
	}
	blog := &models.Blog{Slug: slug, IsActive: true, PublishedAt: s.now().UTC(), CreatedBy: optionalString(actorID)}
	applyBlog(blog, req)
	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, internal(err, "failed to create blog")
	}
	s.invalidate(ctx)
	return blog, nil
}

// Update replaces the mutable fields of a blog.
func (s *BlogService) Update(ctx context.Context, id string, req models.BlogRequest) (*models.Blog, error) {
	if err := s.validate(req, "blog"); err != nil {
		return nil, err
	}
	blog, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Title, id, "blog")
	if err != nil {
		return nil, err
	}
	blog.Slug = slug
	applyBlog(blog, req)
	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, internal(err, "failed to update blog")
	}
	s.invalidate(ctx)
	return blog, nil
}

// Delete hides a blog from listings.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return internal(err, "failed to delete blog")
	}
	s.invalidate(ctx)
	return nil
}

func applyBlog(b *models.Blog, req models.BlogRequest) {
	b.Title = req.Title
	b.Description = req.Description
	b.Content = req.Content
	b.Category = req.Category
	b.AuthorName = req.AuthorName
	b.Image = req.Image
	b.ReadTime = req.ReadTime
	b.ReadTimeMinutes = req.ReadTimeMinutes
	if b.ReadTimeMinutes == 0 {
		b.ReadTimeMinutes = catalog.ParseReadTime(req.ReadTime)
	}
	if req.PublishedAt != nil {
		b.PublishedAt = req.PublishedAt.UTC()
	}
}
