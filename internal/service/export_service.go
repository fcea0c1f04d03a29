package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/export"
)

const defaultExportRows = 5000

var leadHeaders = []string{"Submitted", "Name", "Email", "Phone", "City", "Source", "Message"}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders the lead list as a downloadable file.
type ExportService struct {
	leads   leadRepository
	maxRows int
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService. maxRows <= 0 uses the default cap.
func NewExportService(leads leadRepository, maxRows int, logger *zap.Logger) *ExportService {
	if maxRows <= 0 {
		maxRows = defaultExportRows
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{leads: leads, maxRows: maxRows, logger: logger, now: time.Now}
}

// ExportLeads renders the leads matching filter in the requested format.
func (s *ExportService) ExportLeads(ctx context.Context, filter models.LeadFilter, format string) (*ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format")
	}
	if err := checkLeadRange(filter); err != nil {
		return nil, err
	}
	leads, err := s.leads.Export(ctx, filter, s.maxRows)
	if err != nil {
		return nil, internal(err, "failed to load leads")
	}

	dataset := export.Dataset{Title: "Consultation Requests", Headers: leadHeaders, Rows: make([]map[string]string, 0, len(leads))}
	for _, lead := range leads {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Submitted": leadDay(lead.CreatedAt),
			"Name":      lead.Name,
			"Email":     lead.Email,
			"Phone":     lead.Phone,
			"City":      lead.City,
			"Source":    lead.Source,
			"Message":   lead.Message,
		})
	}

	renderer := export.For(f)
	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, internal(err, "failed to render export")
	}
	if len(leads) == s.maxRows {
		s.logger.Warn("lead export truncated", zap.Int("max_rows", s.maxRows))
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("leads-%s.%s", s.now().UTC().Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
		Rows:        len(leads),
	}, nil
}
