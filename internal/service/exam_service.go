package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
)

type examRepository interface {
	ListActive(ctx context.Context) ([]models.Exam, error)
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, exam *models.Exam) error
	Deactivate(ctx context.Context, id string) error
}

// ExamService implements exam management.
type ExamService struct {
	contentBase
	repo examRepository
}

// NewExamService constructs an ExamService.
func NewExamService(repo examRepository, validate *validator.Validate, logger *zap.Logger, cache *CacheService) *ExamService {
	return &ExamService{contentBase: newContentBase(catalog.KindExams, validate, logger, cache), repo: repo}
}

// ListActive returns the authoritative exam collection.
func (s *ExamService) ListActive(ctx context.Context) ([]models.Exam, error) {
	exams, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, internal(err, "failed to list exams")
	}
	return exams, nil
}

// Get returns an exam by id.
func (s *ExamService) Get(ctx context.Context, id string) (*models.Exam, error) {
	exam, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, "exam")
	}
	return exam, nil
}

// Create validates and stores an exam.
func (s *ExamService) Create(ctx context.Context, req models.ExamRequest, actorID string) (*models.Exam, error) {
	if err := s.validate(req, "exam"); err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Name, "", "exam")
	if err != nil {
		return nil, err
	}
	exam := &models.Exam{Slug: slug, IsActive: true, CreatedBy: optionalString(actorID)}
	applyExam(exam, req)
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, internal(err, "failed to create exam")
	}
	s.invalidate(ctx)
	return exam, nil
}

// Update replaces the mutable fields of an exam.
func (s *ExamService) Update(ctx context.Context, id string, req models.ExamRequest) (*models.Exam, error) {
	if err := s.validate(req, "exam"); err != nil {
		return nil, err
	}
	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, s.repo, req.Slug, req.Name, id, "exam")
	if err != nil {
		return nil, err
	}
	exam.Slug = slug
	applyExam(exam, req)
	if err := s.repo.Update(ctx, exam); err != nil {
		return nil, internal(err, "failed to update exam")
	}
	s.invalidate(ctx)
	return exam, nil
}

// Delete hides an exam from listings.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return internal(err, "failed to delete exam")
	}
	s.invalidate(ctx)
	return nil
}

func applyExam(e *models.Exam, req models.ExamRequest) {
	e.Name = req.Name
	e.ExamType = req.ExamType
	e.Overview = req.Overview
	e.Eligibility = req.Eligibility
	e.ExamPattern = req.ExamPattern
	e.Syllabus = req.Syllabus
	e.ImportantDates = req.ImportantDates
}
