package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studyabroad-api/internal/models"
)

const leadColumns = `id, name, email, phone, city, message, source, ip_address, created_at`

// LeadRepository stores consultation requests.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository constructs a LeadRepository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO leads (id, name, email, phone, city, message, source, ip_address, created_at)
        VALUES (:id, :name, :email, :phone, :city, :message, :source, :ip_address, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lead); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

// List returns leads matching filter, newest first, with the total count.
func (r *LeadRepository) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, int, error) {
	where, args := leadConditions(filter)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM leads%s ORDER BY created_at DESC LIMIT %d OFFSET %d", leadColumns, where, size, offset)
	leads := []models.Lead{}
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM leads"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}
	return leads, total, nil
}

// Export returns up to limit leads matching filter, newest first.
func (r *LeadRepository) Export(ctx context.Context, filter models.LeadFilter, limit int) ([]models.Lead, error) {
	where, args := leadConditions(filter)
	query := fmt.Sprintf("SELECT %s FROM leads%s ORDER BY created_at DESC LIMIT %d", leadColumns, where, limit)
	leads := []models.Lead{}
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, fmt.Errorf("export leads: %w", err)
	}
	return leads, nil
}

func leadConditions(filter models.LeadFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d OR LOWER(city) LIKE $%d)", n, n, n))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
