package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/response"
)

type collegeLookup interface {
	ListActive(ctx context.Context) ([]models.College, error)
	Lookup(ctx context.Context, slug string) ([]models.College, error)
}

type relationService interface {
	Link(ctx context.Context, req models.CollegeCourseRequest) (*models.CollegeCourse, error)
	CoursesOf(ctx context.Context, collegeID string) ([]models.Course, error)
}

// CollegeHandler serves the college listing and the college-course relations.
type CollegeHandler struct {
	colleges  collegeLookup
	relations relationService
}

// NewCollegeHandler constructs a CollegeHandler.
func NewCollegeHandler(colleges collegeLookup, relations relationService) *CollegeHandler {
	return &CollegeHandler{colleges: colleges, relations: relations}
}

// List godoc
// @Summary List colleges
// @Description All active colleges, or those matching a slug (falling back to a name match)
// @Tags Colleges
// @Produce json
// @Param slug query string false "College slug"
// @Success 200 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	var (
		colleges []models.College
		err      error
	)
	if slug := strings.TrimSpace(c.Query("slug")); slug != "" {
		colleges, err = h.colleges.Lookup(c.Request.Context(), slug)
	} else {
		colleges, err = h.colleges.ListActive(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colleges, nil)
}

// Courses godoc
// @Summary List courses offered by a college
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /colleges/{id}/courses [get]
func (h *CollegeHandler) Courses(c *gin.Context) {
	courses, err := h.relations.CoursesOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// LinkCourse godoc
// @Summary Link a course to a college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body models.CollegeCourseRequest true "Relation"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /relations/college-courses [post]
func (h *CollegeHandler) LinkCourse(c *gin.Context) {
	var req models.CollegeCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid relation payload"))
		return
	}
	rel, err := h.relations.Link(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rel)
}
