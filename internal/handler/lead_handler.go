package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyabroad-api/internal/models"
	"github.com/noah-isme/studyabroad-api/internal/service"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/response"
)

type leadService interface {
	Submit(ctx context.Context, req models.LeadRequest, ip string) (*models.Lead, error)
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, *models.Pagination, error)
}

type leadExporter interface {
	ExportLeads(ctx context.Context, filter models.LeadFilter, format string) (*service.ExportFile, error)
}

// LeadHandler accepts contact requests and serves them to admins.
type LeadHandler struct {
	leads    leadService
	exporter leadExporter
}

// NewLeadHandler constructs a LeadHandler.
func NewLeadHandler(leads leadService, exporter leadExporter) *LeadHandler {
	return &LeadHandler{leads: leads, exporter: exporter}
}

// Contact godoc
// @Summary Request a free consultation
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body models.LeadRequest true "Contact form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /contact [post]
func (h *LeadHandler) Contact(c *gin.Context) {
	var req models.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contact form"))
		return
	}
	lead, err := h.leads.Submit(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": lead.ID, "message": "Thank you! Our counsellors will contact you shortly."})
}

// List godoc
// @Summary List consultation requests
// @Tags Leads
// @Produce json
// @Param search query string false "Name, e-mail or city"
// @Param from query string false "Earliest submission date (YYYY-MM-DD)"
// @Param to query string false "Latest submission date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	filter, err := leadFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	leads, pagination, err := h.leads.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leads, pagination)
}

// Export godoc
// @Summary Export consultation requests
// @Tags Leads
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Param search query string false "Name, e-mail or city"
// @Param from query string false "Earliest submission date (YYYY-MM-DD)"
// @Param to query string false "Latest submission date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /leads/export [get]
func (h *LeadHandler) Export(c *gin.Context) {
	filter, err := leadFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.ExportLeads(c.Request.Context(), filter, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Download(c, file.Filename, file.ContentType, file.Body)
}
