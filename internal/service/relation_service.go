package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
)

type relationRepository interface {
	Exists(ctx context.Context, collegeID, courseID string) (bool, error)
	Create(ctx context.Context, rel *models.CollegeCourse) error
}

type relationCourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ListByCollege(ctx context.Context, collegeID string) ([]models.Course, error)
}

type relationCollegeReader interface {
	FindByID(ctx context.Context, id string) (*models.College, error)
}

// RelationService links courses to the colleges that offer them.
type RelationService struct {
	contentBase
	repo     relationRepository
	colleges relationCollegeReader
	courses  relationCourseReader
}

// NewRelationService constructs a RelationService.
func NewRelationService(repo relationRepository, colleges relationCollegeReader, courses relationCourseReader, validate *validator.Validate, logger *zap.Logger) *RelationService {
	return &RelationService{
		contentBase: newContentBase(catalog.KindCourses, validate, logger, nil),
		repo:        repo,
		colleges:    colleges,
		courses:     courses,
	}
}

// Link records that a college offers a course.
func (s *RelationService) Link(ctx context.Context, req models.CollegeCourseRequest) (*models.CollegeCourse, error) {
	if err := s.validate(req, "relation"); err != nil {
		return nil, err
	}
	if _, err := s.colleges.FindByID(ctx, req.CollegeID); err != nil {
		return nil, s.lookupError(err, "college")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		return nil, s.lookupError(err, "course")
	}
	exists, err := s.repo.Exists(ctx, req.CollegeID, req.CourseID)
	if err != nil {
		return nil, internal(err, "failed to check relation")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrAlreadyLinked, "")
	}
	rel := &models.CollegeCourse{CollegeID: req.CollegeID, CourseID: req.CourseID}
	if err := s.repo.Create(ctx, rel); err != nil {
		return nil, internal(err, "failed to create relation")
	}
	return rel, nil
}

// CoursesOf lists the active courses a college offers.
func (s *RelationService) CoursesOf(ctx context.Context, collegeID string) ([]models.Course, error) {
	if _, err := s.colleges.FindByID(ctx, collegeID); err != nil {
		return nil, s.lookupError(err, "college")
	}
	courses, err := s.courses.ListByCollege(ctx, collegeID)
	if err != nil {
		return nil, internal(err, "failed to list college courses")
	}
	return courses, nil
}
