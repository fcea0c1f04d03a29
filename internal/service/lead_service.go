package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/jobs"
)

// JobLeadNotification is the job type that tells the admins about a new lead.
const JobLeadNotification = "lead.notification"

// Lead outcomes recorded in metrics.
const (
	LeadAccepted = "accepted"
	LeadInvalid  = "invalid"
	LeadLimited  = "limited"
)

const defaultLeadSource = "website"

type leadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, int, error)
	Export(ctx context.Context, filter models.LeadFilter, limit int) ([]models.Lead, error)
}

type jobEnqueuer interface {
	Enqueue(ctx context.Context, job jobs.Job) error
}

// LeadNotifier delivers a new-lead notice to the consultancy.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead models.Lead) error
}

// LeadService accepts contact form submissions and serves the admin lead list.
type LeadService struct {
	repo      leadRepository
	queue     jobEnqueuer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewLeadService constructs a LeadService. A nil queue disables notifications.
func NewLeadService(repo leadRepository, queue jobEnqueuer, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *LeadService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{repo: repo, queue: queue, validator: validate, metrics: metrics, logger: logger}
}

// Submit stores a contact form submission and queues the admin notification.
// A notification that cannot be queued is logged and does not fail the submission.
func (s *LeadService) Submit(ctx context.Context, req models.LeadRequest, ip string) (*models.Lead, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.City = strings.TrimSpace(req.City)
	if err := s.validator.Struct(req); err != nil {
		s.metrics.ObserveLead(LeadInvalid)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact form")
	}

	lead := &models.Lead{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		City:      req.City,
		Message:   strings.TrimSpace(req.Message),
		Source:    req.Source,
		IPAddress: ip,
	}
	if lead.Source == "" {
		lead.Source = defaultLeadSource
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, internal(err, "failed to save contact request")
	}
	s.metrics.ObserveLead(LeadAccepted)

	if s.queue != nil {
		job := jobs.Job{Type: JobLeadNotification, Payload: *lead}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			s.logger.Warn("lead notification not queued", zap.String("lead_id", lead.ID), zap.Error(err))
		}
	}
	return lead, nil
}

// RecordLimited counts a submission rejected by the rate limiter.
func (s *LeadService) RecordLimited() {
	s.metrics.ObserveLead(LeadLimited)
}

// List returns one page of leads.
func (s *LeadService) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if err := checkLeadRange(filter); err != nil {
		return nil, nil, err
	}
	leads, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internal(err, "failed to list leads")
	}
	pages := 0
	if total > 0 {
		pages = (total + filter.PageSize - 1) / filter.PageSize
	}
	return leads, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total, TotalPages: pages}, nil
}

func checkLeadRange(filter models.LeadFilter) error {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return appErrors.Clone(appErrors.ErrValidation, "from must not be after to")
	}
	return nil
}

// NewLeadNotificationHandler returns the job handler delivering lead notifications.
func NewLeadNotificationHandler(notifier LeadNotifier, metrics *MetricsService) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		lead, ok := job.Payload.(models.Lead)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
		}
		err := notifier.NotifyLead(ctx, lead)
		metrics.ObserveNotification(err == nil)
		return err
	}
}

// LogNotifier writes lead notifications to the structured log, addressed to
// the configured recipient.
type LogNotifier struct {
	logger    *zap.Logger
	recipient string
}

// NewLogNotifier constructs a LogNotifier.
func NewLogNotifier(logger *zap.Logger, recipient string) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger, recipient: recipient}
}

// NotifyLead logs the lead as a notification message.
func (n *LogNotifier) NotifyLead(_ context.Context, lead models.Lead) error {
	n.logger.Info("new consultation request",
		zap.String("to", n.recipient),
		zap.String("subject", LeadSubject(lead)),
		zap.String("lead_id", lead.ID),
		zap.String("name", lead.Name),
		zap.String("email", lead.Email),
		zap.String("phone", lead.Phone),
		zap.String("city", lead.City),
		zap.String("source", lead.Source),
		zap.Time("submitted_at", lead.CreatedAt),
	)
	return nil
}

// LeadSubject is the notification subject line for a lead.
func LeadSubject(lead models.Lead) string {
	return fmt.Sprintf("New consultation request from %s (%s)", lead.Name, lead.City)
}

// leadDay formats a lead timestamp for exports.
func leadDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}
