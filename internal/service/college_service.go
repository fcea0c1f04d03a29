package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
)

type collegeRepository interface {
	ListActive(ctx context.Context) ([]models.College, error)
	FindByID(ctx context.Context, id string) (*models.College, error)
	FindBySlug(ctx context.Context, slug string) (*models.College, error)
	FindByName(ctx context.Context, name string) ([]models.College, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, college *models.College) error
	Update(ctx context.Context, college *models.College) error
	Deactivate(ctx context.Context, id string) error
}

// CollegeService implements college management.
type CollegeService struct {
	contentBase
	repo collegeRepository
}

// NewCollegeService constructs a CollegeService.
func NewCollegeService(repo collegeRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *CollegeService {
	return &CollegeService{contentBase: newContentBase(catalog.KindColleges, validate, logger, cache), repo: repo}
}

// ListActive returns the authoritative college collection.
func (s *CollegeService) ListActive(ctx context.Context) ([]models.College, error) {
	colleges, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, internal(err, "failed to list colleges")
	}
	return colleges, nil
}

// Lookup finds colleges by exact slug, falling back to a case-insensitive name
// match built from the slug words. An unmatched slug yields an empty slice.
func (s *CollegeService) Lookup(ctx context.Context, slug string) ([]models.College, error) {
	college, err := s.repo.FindBySlug(ctx, slug)
	if err == nil {
		return []models.College{*college}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, internal(err, "failed to load college")
	}
	colleges, err := s.repo.FindByName(ctx, catalog.SlugToName(slug))
	if err != nil {
		return nil, internal(err, "failed to load college")
	}
	return colleges, nil
}

// Get returns a college by id.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "college")
	}
	return college, nil
}

// GetBySlug returns a college by exact slug.
func (s *CollegeService) GetBySlug(ctx context.Context, slug string) (*models.College, error) {
	college, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, s.lookupError(err, "college")
	}
	return college, nil
}

// Create validates and stores a college. The slug is always derived from the name.
func (s *CollegeService) Create(ctx context.Context, req models.CollegeRequest, actorID string) (*models.College, error) {
	if err := s.validate(req, "college"); err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, "", req.Name, "", "college")
	if err != nil {
		return nil, err
	}
	college := &models.College{Slug: slug, CreatedBy: optionalString(actorID)}
	applyCollege(college, req)
	if college.Status == "" {
		college.Status = models.CollegeStatusActive
	}
	if err := s.repo.Create(ctx, college); err != nil {
		return nil, internal(err, "failed to create college")
	}
	s.invalidate(ctx)
	return college, nil
}

// Update replaces the mutable fields of a college.
func (s *CollegeService) Update(ctx context.Context, id string, req models.CollegeRequest) (*models.College, error) {
	if err := s.validate(req, "college"); err != nil {
		return nil, err
	}
	college, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, "", req.Name, id, "college")
	if err != nil {
		return nil, err
	}
	college.Slug = slug
	status := college.Status
	applyCollege(college, req)
	if college.Status == "" {
		college.Status = status
	}
	if err := s.repo.Update(ctx, college); err != nil {
		return nil, internal(err, "failed to update college")
	}
	s.invalidate(ctx)
	return college, nil
}

// Delete hides a college from listings.
func (s *CollegeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return internal(err, "failed to delete college")
	}
	s.invalidate(ctx)
	return nil
}

func applyCollege(c *models.College, req models.CollegeRequest) {
	c.Name = req.Name
	c.Location = req.Location
	c.Type = req.Type
	c.Rank = req.Rank
	c.RankPosition = req.RankPosition
	c.Tuition = req.Tuition
	c.Acceptance = req.Acceptance
	c.Rating = req.Rating
	c.Employability = req.Employability
	c.Overview = req.Overview
	c.Website = req.Website
	c.Image = req.Image
	c.Tags = append([]string{}, req.Tags...)
	c.Status = req.Status
}
