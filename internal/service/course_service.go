package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
)

type courseRepository interface {
	ListActive(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindBySlug(ctx context.Context, slug string) (*models.Course, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Deactivate(ctx context.Context, id string) error
}

// CourseService implements course management.
type CourseService struct {
	contentBase
	repo courseRepository
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *CourseService {
	return &CourseService{contentBase: newContentBase(catalog.KindCourses, validate, logger, cache), repo: repo}
}

// ListActive returns the authoritative course collection.
func (s *CourseService) ListActive(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, internal(err, "failed to list courses")
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "course")
	}
	return course, nil
}

// GetBySlug returns a course by slug.
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	course, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, s.lookupError(err, "course")
	}
	return course, nil
}

// Create validates and stores a course.
func (s *CourseService) Create(ctx context.Context, req models.CourseRequest, actorID string) (*models.Course, error) {
	if err := s.validate(req, "course"); err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Title, "", "course")
	if err != nil {
		return nil, err
	}
	course := &models.Course{Slug: slug, IsActive: true, CreatedBy: optionalString(actorID)}
	applyCourse(course, req)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, internal(err, "failed to create course")
	}
	s.invalidate(ctx)
	return course, nil
}

// Update replaces the mutable fields of a course.
func (s *CourseService) Update(ctx context.Context, id string, req models.CourseRequest) (*models.Course, error) {
	if err := s.validate(req, "course"); err != nil {
		return nil, err
	}
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Title, id, "course")
	if err != nil {
		return nil, err
	}
	course.Slug = slug
	applyCourse(course, req)
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, internal(err, "failed to update course")
	}
	s.invalidate(ctx)
	return course, nil
}

// Delete hides a course from listings.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return internal(err, "failed to delete course")
	}
	s.invalidate(ctx)
	return nil
}

func applyCourse(c *models.Course, req models.CourseRequest) {
	c.Title = req.Title
	c.Description = req.Description
	c.Category = req.Category
	c.Duration = req.Duration
	c.Level = req.Level
	c.Fees = req.Fees
	c.Prospects = req.Prospects
	c.PopularIn = append([]string{}, req.PopularIn...)
	c.Image = req.Image
}
