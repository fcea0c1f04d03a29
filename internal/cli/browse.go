package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/noah-isme/studyabroad-api/internal/catalog"
	"github.com/noah-isme/studyabroad-api/pkg/catalogclient"
	"github.com/noah-isme/studyabroad-api/pkg/listing"
)

const (
	dateLayout    = "2006-01-02"
	filterCountry = "country"
)

// BrowseOptions is one browse request.
type BrowseOptions struct {
	Search   string
	Category string
	Sort     string
	Page     int
	PageSize int
	Filters  map[string]string
	From     string
	To       string
}

// Browser fetches listings from the catalog API and renders one page window.
type Browser struct {
	client *catalogclient.Client
	logger *log.Logger
	out    io.Writer
}

// NewBrowser builds a browser writing tables to out.
func NewBrowser(client *catalogclient.Client, logger *log.Logger, out io.Writer) *Browser {
	return &Browser{client: client, logger: logger, out: out}
}

// Browse loads kind once and prints the page selected by opts.
func (b *Browser) Browse(ctx context.Context, kind catalog.Kind, opts BrowseOptions) error {
	filters, err := buildFilters(opts)
	if err != nil {
		return err
	}

	switch kind {
	case catalog.KindColleges:
		return browse(ctx, b, kind, catalog.Colleges(opts.PageSize), collegeColumns, filters, opts)
	case catalog.KindCourses:
		return browse(ctx, b, kind, catalog.Courses(opts.PageSize), courseColumns, filters, opts)
	case catalog.KindBlogs:
		return browse(ctx, b, kind, catalog.Blogs(opts.PageSize), blogColumns, filters, opts)
	case catalog.KindUniversities:
		return browse(ctx, b, kind, catalog.Universities(opts.PageSize), universityColumns, filters, opts)
	case catalog.KindExams:
		return browse(ctx, b, kind, catalog.Exams(opts.PageSize), examColumns, filters, opts)
	}
	return fmt.Errorf("unknown listing %q", kind)
}

func browse[T any](ctx context.Context, b *Browser, kind catalog.Kind, cfg *listing.Config[T], cols []column[T], filters listing.Filters, opts BrowseOptions) error {
	ctl := listing.New(cfg)
	filters, opts = b.normalize(kind, ctl.Config().FilterKeys(), filters, opts)
	endpoint := catalogclient.Endpoint[T]{Client: b.client, Path: "/" + string(kind), Field: string(kind)}

	b.logger.Debug("fetching listing", "kind", kind)
	if err := ctl.Load(ctx, endpoint); err != nil {
		if ctx.Err() != nil {
			return err
		}
		b.logger.Warn("listing unavailable, showing empty results", "kind", kind, "err", err)
	}

	if len(filters) > 0 {
		ctl.SetFilters(filters)
	}
	if opts.Search != "" {
		ctl.SetSearch(opts.Search)
	}
	if opts.Category != "" {
		ctl.SetCategory(opts.Category)
	}
	if opts.Sort != "" {
		if !ctl.Config().HasSort(listing.SortOption(opts.Sort)) {
			b.logger.Warn("unknown sort option ignored", "sort", opts.Sort, "options", ctl.Config().SortOptions)
		}
		ctl.SetSort(listing.SortOption(opts.Sort))
	}
	ctl.SetPage(opts.Page)

	renderPage(b.out, ctl, cols)
	return nil
}

// normalize moves a university country filter into the category, as the API
// does, and drops filter keys the listing does not understand.
func (b *Browser) normalize(kind catalog.Kind, known []string, filters listing.Filters, opts BrowseOptions) (listing.Filters, BrowseOptions) {
	if kind == catalog.KindUniversities {
		if country, ok := filters[filterCountry]; ok {
			if opts.Category == "" {
				opts.Category = country.Text
			}
			delete(filters, filterCountry)
		}
	}

	allowed := make(map[string]struct{}, len(known))
	for _, k := range known {
		allowed[k] = struct{}{}
	}
	for key := range filters {
		if _, ok := allowed[key]; !ok {
			b.logger.Warn("unknown filter ignored", "kind", kind, "filter", key, "known", known)
			delete(filters, key)
		}
	}
	return filters, opts
}

func buildFilters(opts BrowseOptions) (listing.Filters, error) {
	filters := listing.Filters{}
	for key, value := range opts.Filters {
		filters[strings.TrimSpace(key)] = listing.Text(strings.TrimSpace(value))
	}
	if opts.From == "" && opts.To == "" {
		return filters, nil
	}

	start := time.Time{}
	end := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if opts.From != "" {
		t, err := time.Parse(dateLayout, opts.From)
		if err != nil {
			return nil, fmt.Errorf("invalid --from %q: want YYYY-MM-DD", opts.From)
		}
		start = t
	}
	if opts.To != "" {
		t, err := time.Parse(dateLayout, opts.To)
		if err != nil {
			return nil, fmt.Errorf("invalid --to %q: want YYYY-MM-DD", opts.To)
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("--to is before --from")
	}
	filters[catalog.FilterDateRange] = listing.Between(start, end)
	return filters, nil
}
