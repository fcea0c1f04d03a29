package listing

import (
	"context"
)

// Fetcher loads the authoritative collection for a listing.
type Fetcher[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context) ([]T, error)

// FetchAll calls f.
func (f FetcherFunc[T]) FetchAll(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// State is a snapshot of a Controller.
type State[T any] struct {
	Items    []T        `json:"-"`
	Filtered []T        `json:"-"`
	Filters  Filters    `json:"filters"`
	Search   string     `json:"search"`
	Category string     `json:"category"`
	Sort     SortOption `json:"sort"`
	Page     int        `json:"page"`
	Loading  bool       `json:"loading"`
	Err      string     `json:"error,omitempty"`
}

// Controller owns one listing's authoritative collection and browse state.
// Every transition derives Filtered from Items, never from the previous Filtered.
// A Controller is not safe for concurrent use.
type Controller[T any] struct {
	cfg   *Config[T]
	state State[T]
}

// New returns an empty controller for cfg.
func New[T any](cfg *Config[T]) *Controller[T] {
	return &Controller[T]{
		cfg: cfg,
		state: State[T]{
			Items:    []T{},
			Filtered: []T{},
			Filters:  Filters{},
			Category: cfg.AllCategory,
			Sort:     cfg.DefaultSort,
			Page:     1,
		},
	}
}

// Config returns the listing configuration.
func (c *Controller[T]) Config() *Config[T] {
	return c.cfg
}

// State returns a snapshot. Slices are shared with the controller and must not be modified.
func (c *Controller[T]) State() State[T] {
	s := c.state
	s.Filters = c.state.Filters.clone()
	return s
}

// SetItems replaces the authoritative collection. Filtered becomes the full,
// unfiltered and unsorted set; callers reapply state with Refresh when needed.
func (c *Controller[T]) SetItems(items []T) {
	owned := make([]T, len(items))
	copy(owned, items)
	c.state.Items = owned
	c.state.Filtered = append([]T(nil), owned...)
	if c.state.Filtered == nil {
		c.state.Filtered = []T{}
	}
	c.state.Page = 1
}

// SetSearch updates the free-text query and recomputes.
func (c *Controller[T]) SetSearch(query string) {
	c.state.Search = query
	c.recompute()
	c.state.Page = 1
}

// SetCategory selects a category. An empty value selects the sentinel.
func (c *Controller[T]) SetCategory(category string) {
	if category == "" {
		category = c.cfg.AllCategory
	}
	c.state.Category = category
	c.recompute()
	c.state.Page = 1
}

// SetFilters merges partial into the active filters and recomputes.
// Keys absent from partial are kept; zero values remove their key.
func (c *Controller[T]) SetFilters(partial Filters) {
	c.state.Filters = c.state.Filters.merge(partial)
	c.recompute()
	c.state.Page = 1
}

// SetSort re-sorts the current filtered collection without re-filtering.
func (c *Controller[T]) SetSort(option SortOption) {
	c.state.Sort = option
	c.state.Filtered = Sort(c.cfg, c.state.Filtered, option)
	c.state.Page = 1
}

// SetPage moves to page, clamped to the available range.
func (c *Controller[T]) SetPage(page int) {
	c.state.Page = ClampPage(page, len(c.state.Filtered), c.cfg.pageSize())
}

// ResetFilters clears filters, search and category and re-sorts the full collection.
func (c *Controller[T]) ResetFilters() {
	c.state.Filters = Filters{}
	c.state.Search = ""
	c.state.Category = c.cfg.AllCategory
	c.state.Filtered = Sort(c.cfg, c.state.Items, c.state.Sort)
	c.state.Page = 1
}

// Refresh reapplies the active search, category, filters and sort to the
// authoritative collection, keeping the current page when it is still in range.
func (c *Controller[T]) Refresh() {
	c.recompute()
}

// SetLoading records whether a fetch is in flight.
func (c *Controller[T]) SetLoading(loading bool) {
	c.state.Loading = loading
}

// SetError records a human-readable fetch error.
func (c *Controller[T]) SetError(msg string) {
	c.state.Err = msg
	c.state.Loading = false
}

// Load fetches the authoritative collection and reapplies the active state to it.
// A failed fetch leaves an empty collection and the error message in state.
// If ctx is cancelled the result is discarded and state is left untouched.
func (c *Controller[T]) Load(ctx context.Context, f Fetcher[T]) error {
	c.SetLoading(true)
	items, err := f.FetchAll(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.SetLoading(false)
		return ctxErr
	}
	if err != nil {
		c.SetItems(nil)
		c.SetError(err.Error())
		return err
	}
	c.state.Err = ""
	c.SetLoading(false)
	c.SetItems(items)
	c.recompute()
	return nil
}

// PageItems returns the current page window.
func (c *Controller[T]) PageItems() []T {
	return Window(c.state.Filtered, c.state.Page, c.cfg.pageSize())
}

// TotalPages returns the number of pages of the filtered collection.
func (c *Controller[T]) TotalPages() int {
	return TotalPages(len(c.state.Filtered), c.cfg.pageSize())
}

// Total returns the size of the filtered collection.
func (c *Controller[T]) Total() int {
	return len(c.state.Filtered)
}

// PageSize returns the fixed page size of the listing.
func (c *Controller[T]) PageSize() int {
	return c.cfg.pageSize()
}

func (c *Controller[T]) recompute() {
	filtered := Filter(c.cfg, c.state.Items, c.state.Filters, c.state.Search, c.state.Category)
	c.state.Filtered = Sort(c.cfg, filtered, c.state.Sort)
	c.state.Page = ClampPage(c.state.Page, len(c.state.Filtered), c.cfg.pageSize())
}
