package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
)

type slugChecker interface {
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// contentBase carries what every catalog CRUD service needs.
type contentBase struct {
	kind      catalog.Kind
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
}

func newContentBase(kind catalog.Kind, validate *validator.Validate, logger *zap.Logger, cache *CacheService) contentBase {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return contentBase{kind: kind, validator: validate, logger: logger.With(zap.String("listing", string(kind))), cache: cache}
}

func (b contentBase) validate(payload interface{}, label string) error {
	if err := b.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+label+" payload")
	}
	return nil
}

// slugFor picks the explicit slug when given, otherwise derives one from title,
// and rejects it when another record already uses it.
func (b contentBase) slugFor(ctx context.Context, repo slugChecker, explicit, title, excludeID, label string) (string, error) {
	slug := catalog.Slugify(explicit)
	if slug == "" {
		slug = catalog.Slugify(title)
	}
	if slug == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, label+" slug cannot be derived from an empty title")
	}
	exists, err := repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check "+label+" slug")
	}
	if exists {
		return "", appErrors.Clone(appErrors.ErrSlugTaken, label+" slug already exists")
	}
	return slug, nil
}

func (b contentBase) invalidate(ctx context.Context) {
	if err := b.cache.InvalidateListing(ctx, string(b.kind)); err != nil {
		b.logger.Warn("failed to invalidate listing cache", zap.Error(err))
	}
}

func (b contentBase) lookupError(err error, label string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, label+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+label)
}

func internal(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
