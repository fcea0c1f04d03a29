package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/listing"
)

// DateLayout is the calendar date format accepted by the from/to browse parameters.
const DateLayout = "2006-01-02"

var openEnd = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// BrowseQuery is one browse request against a listing type.
type BrowseQuery struct {
	Search   string
	Category string
	Sort     string
	Page     int
	Filters  map[string]string
	From     string
	To       string
}

// BrowseMeta describes the state that produced a page.
type BrowseMeta struct {
	Listing     string               `json:"listing"`
	Search      string               `json:"search"`
	Category    string               `json:"category"`
	Categories  []string             `json:"categories"`
	Sort        listing.SortOption   `json:"sort"`
	SortOptions []listing.SortOption `json:"sort_options"`
	Filters     listing.Filters      `json:"filters"`
	FilterKeys  []string             `json:"filter_keys"`
	CacheHit    bool                 `json:"cache_hit"`
}

// BrowseResult is one page of a listing.
type BrowseResult struct {
	Items      interface{}        `json:"items"`
	Pagination *models.Pagination `json:"pagination"`
	Meta       BrowseMeta         `json:"meta"`
}

// BrowseSources supplies the authoritative collection of each listing type.
// A nil source leaves its listing unavailable.
type BrowseSources struct {
	Colleges     listing.Fetcher[models.College]
	Courses      listing.Fetcher[models.Course]
	Blogs        listing.Fetcher[models.Blog]
	Universities listing.Fetcher[models.University]
	Exams        listing.Fetcher[models.Exam]
}

type browser interface {
	browse(ctx context.Context, q BrowseQuery, filters listing.Filters) (*BrowseResult, error)
	filterKeys() []string
}

// BrowseService serves search, filter, sort and pagination over the catalog listings.
type BrowseService struct {
	browsers map[catalog.Kind]browser
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewBrowseService constructs a BrowseService. pageSize <= 0 uses the listing default.
func NewBrowseService(sources BrowseSources, cache *CacheService, metrics *MetricsService, pageSize int, logger *zap.Logger) *BrowseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BrowseService{browsers: map[catalog.Kind]browser{}, metrics: metrics, logger: logger}
	if sources.Colleges != nil {
		s.browsers[catalog.KindColleges] = newCatalogBrowser(catalog.KindColleges, catalog.Colleges(pageSize), sources.Colleges, cache, logger)
	}
	if sources.Courses != nil {
		s.browsers[catalog.KindCourses] = newCatalogBrowser(catalog.KindCourses, catalog.Courses(pageSize), sources.Courses, cache, logger)
	}
	if sources.Blogs != nil {
		s.browsers[catalog.KindBlogs] = newCatalogBrowser(catalog.KindBlogs, catalog.Blogs(pageSize), sources.Blogs, cache, logger)
	}
	if sources.Universities != nil {
		s.browsers[catalog.KindUniversities] = newCatalogBrowser(catalog.KindUniversities, catalog.Universities(pageSize), sources.Universities, cache, logger)
	}
	if sources.Exams != nil {
		s.browsers[catalog.KindExams] = newCatalogBrowser(catalog.KindExams, catalog.Exams(pageSize), sources.Exams, cache, logger)
	}
	return s
}

// Browse returns one page of the named listing after applying q.
func (s *BrowseService) Browse(ctx context.Context, name string, q BrowseQuery) (*BrowseResult, error) {
	kind, ok := catalog.ParseKind(name)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownListing, "")
	}
	b, ok := s.browsers[kind]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownListing, "")
	}

	if kind == catalog.KindUniversities && q.Category == "" {
		q.Category = q.Filters["country"]
	}

	filters := listing.Filters{}
	for _, key := range b.filterKeys() {
		if key == catalog.FilterDateRange {
			value, err := dateRange(q.From, q.To)
			if err != nil {
				return nil, err
			}
			if !value.IsZero() {
				filters[key] = value
			}
			continue
		}
		if v := strings.TrimSpace(q.Filters[key]); v != "" {
			filters[key] = listing.Text(v)
		}
	}

	result, err := b.browse(ctx, q, filters)
	if err != nil {
		s.logger.Error("browse failed", zap.String("listing", string(kind)), zap.Error(err))
		return nil, err
	}
	s.metrics.ObserveBrowse(string(kind), result.Meta.CacheHit, result.Pagination.TotalCount)
	return result, nil
}

// Kinds returns the listing types this service can browse.
func (s *BrowseService) Kinds() []catalog.Kind {
	kinds := make([]catalog.Kind, 0, len(s.browsers))
	for _, k := range catalog.Kinds() {
		if _, ok := s.browsers[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func dateRange(from, to string) (listing.FilterValue, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return listing.FilterValue{}, nil
	}
	start, end := time.Time{}, openEnd
	if from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return listing.FilterValue{}, appErrors.Clone(appErrors.ErrValidation, "from must be a YYYY-MM-DD date")
		}
		start = t
	}
	if to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return listing.FilterValue{}, appErrors.Clone(appErrors.ErrValidation, "to must be a YYYY-MM-DD date")
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return listing.FilterValue{}, appErrors.Clone(appErrors.ErrValidation, "from must not be after to")
	}
	return listing.Between(start, end), nil
}

type catalogBrowser[T any] struct {
	kind   catalog.Kind
	cfg    *listing.Config[T]
	source listing.Fetcher[T]
	cache  *CacheService
	logger *zap.Logger
}

func newCatalogBrowser[T any](kind catalog.Kind, cfg *listing.Config[T], source listing.Fetcher[T], cache *CacheService, logger *zap.Logger) *catalogBrowser[T] {
	return &catalogBrowser[T]{kind: kind, cfg: cfg, source: source, cache: cache, logger: logger}
}

func (b *catalogBrowser[T]) filterKeys() []string {
	keys := b.cfg.FilterKeys()
	sort.Strings(keys)
	return keys
}

// load returns the authoritative collection, preferring the cache.
func (b *catalogBrowser[T]) load(ctx context.Context) ([]T, bool, error) {
	key := CatalogKey(string(b.kind))
	var cached []T
	if hit, err := b.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}
	items, err := b.source.FetchAll(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := b.cache.Set(ctx, key, items, 0); err != nil {
		b.logger.Debug("listing not cached", zap.String("listing", string(b.kind)), zap.Error(err))
	}
	return items, false, nil
}

func (b *catalogBrowser[T]) browse(ctx context.Context, q BrowseQuery, filters listing.Filters) (*BrowseResult, error) {
	items, hit, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	ctl := listing.New(b.cfg)
	ctl.SetItems(items)
	ctl.SetFilters(filters)
	if q.Search != "" {
		ctl.SetSearch(strings.TrimSpace(q.Search))
	}
	if q.Category != "" {
		ctl.SetCategory(q.Category)
	}
	if q.Sort != "" {
		ctl.SetSort(listing.SortOption(q.Sort))
	}
	ctl.SetPage(q.Page)

	state := ctl.State()
	return &BrowseResult{
		Items: ctl.PageItems(),
		Pagination: &models.Pagination{
			Page:       state.Page,
			PageSize:   ctl.PageSize(),
			TotalCount: ctl.Total(),
			TotalPages: ctl.TotalPages(),
		},
		Meta: BrowseMeta{
			Listing:     string(b.kind),
			Search:      state.Search,
			Category:    state.Category,
			Categories:  append([]string{}, b.cfg.Categories...),
			Sort:        state.Sort,
			SortOptions: append([]listing.SortOption{}, b.cfg.SortOptions...),
			Filters:     state.Filters,
			FilterKeys:  b.filterKeys(),
			CacheHit:    hit,
		},
	}, nil
}
