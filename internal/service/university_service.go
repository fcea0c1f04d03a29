package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
)

type universityRepository interface {
	ListActive(ctx context.Context) ([]models.University, error)
	FindByID(ctx context.Context, id string) (*models.University, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, university *models.University) error
	Update(ctx context.Context, university *models.University) error
	Deactivate(ctx context.Context, id string) error
}

// UniversityService implements partner university management.
type UniversityService struct {
	contentBase
	repo universityRepository
}

// NewUniversityService constructs a UniversityService.
func NewUniversityService(repo universityRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *UniversityService {
	return &UniversityService{contentBase: newContentBase(catalog.KindUniversities, validate, logger, cache), repo: repo}
}

// ListActive returns the authoritative university collection.
func (s *UniversityService) ListActive(ctx context.Context) ([]models.University, error) {
	universities, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, internal(err, "failed to list universities")
	}
	return universities, nil
}

// Countries returns the destination countries.
func (s *UniversityService) Countries() []models.Country {
	return append([]models.Country(nil), catalog.Countries...)
}

// Get returns a university by id.
func (s *UniversityService) Get(ctx context.Context, id string) (*models.University, error) {
	university, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "university")
	}
	return university, nil
}

// Create validates and stores a university.
func (s *UniversityService) Create(ctx context.Context, req models.UniversityRequest, actorID string) (*models.University, error) {
	if err := s.validate(req, "university"); err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Name, "", "university")
	if err != nil {
		return nil, err
	}
	university := &models.University{Slug: slug, IsActive: true, CreatedBy: optionalString(actorID)}
	applyUniversity(university, req)
	if err := s.repo.Create(ctx, university); err != nil {
		return nil, internal(err, "failed to create university")
	}
	s.invalidate(ctx)
	return university, nil
}

// Update replaces the mutable fields of a university.
func (s *UniversityService) Update(ctx context.Context, id string, req models.UniversityRequest) (*models.University, error) {
	if err := s.validate(req, "university"); err != nil {
		return nil, err
	}
	university, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Name, id, "university")
	if err != nil {
		return nil, err
	}
	university.Slug = slug
	applyUniversity(university, req)
	if err := s.repo.Update(ctx, university); err != nil {
		return nil, internal(err, "failed to update university")
	}
	s.invalidate(ctx)
	return university, nil
}

// Delete hides a university from listings.
func (s *UniversityService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return internal(err, "failed to delete university")
	}
	s.invalidate(ctx)
	return nil
}

func applyUniversity(u *models.University, req models.UniversityRequest) {
	u.Name = req.Name
	u.Country = req.Country
	u.Location = req.Location
	u.Logo = req.Logo
	u.Image = req.Image
	u.Description = req.Description
	u.IsFeatured = req.IsFeatured
}
