package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/response"
)

// contentService is the CRUD surface shared by every catalog type.
type contentService[T any, R any] interface {
	ListActive(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req R, actorID string) (*T, error)
	Update(ctx context.Context, id string, req R) (*T, error)
	Delete(ctx context.Context, id string) error
}

type slugReader[T any] interface {
	GetBySlug(ctx context.Context, slug string) (*T, error)
}

// ContentHandler exposes CRUD endpoints for one catalog type.
type ContentHandler[T any, R any] struct {
	service contentService[T, R]
	label   string
}

// NewContentHandler builds a handler; label names the type in error messages.
func NewContentHandler[T any, R any](svc contentService[T, R], label string) *ContentHandler[T, R] {
	return &ContentHandler[T, R]{service: svc, label: label}
}

// List returns every active record.
func (h *ContentHandler[T, R]) List(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get returns one record by id.
func (h *ContentHandler[T, R]) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// GetBySlug returns one record by slug when the service supports it.
func (h *ContentHandler[T, R]) GetBySlug(c *gin.Context) {
	reader, ok := h.service.(slugReader[T])
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, h.label+" not found"))
		return
	}
	item, err := reader.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create stores a new record owned by the caller.
func (h *ContentHandler[T, R]) Create(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+h.label+" payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update replaces a record.
func (h *ContentHandler[T, R]) Update(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+h.label+" payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete hides a record from listings.
func (h *ContentHandler[T, R]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
