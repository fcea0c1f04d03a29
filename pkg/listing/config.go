// Package listing implements the browse state shared by every catalog listing:
// free-text search, a category pill, per-type filters, a sort order and a page window,
// all recomputed from one authoritative collection.
package listing

import "time"

// DefaultPageSize is used when a Config does not set PageSize.
const DefaultPageSize = 6

// SortOption names a sort field and direction, e.g. "title-asc".
type SortOption string

// DateRange is an inclusive interval used by date filters.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// FilterValue is the constraint stored under one filter key.
type FilterValue struct {
	Text  string     `json:"text,omitempty"`
	Range *DateRange `json:"range,omitempty"`
}

// IsZero reports whether the value carries no constraint.
func (v FilterValue) IsZero() bool {
	return v.Text == "" && v.Range == nil
}

// Text builds a text filter value.
func Text(s string) FilterValue {
	return FilterValue{Text: s}
}

// Between builds a date range filter value.
func Between(start, end time.Time) FilterValue {
	return FilterValue{Range: &DateRange{Start: start, End: end}}
}

// Filters maps a filter name to its value. An absent key means no constraint.
type Filters map[string]FilterValue

func (f Filters) clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// merge returns f overlaid with partial. Zero values in partial drop the key.
func (f Filters) merge(partial Filters) Filters {
	out := f.clone()
	for k, v := range partial {
		if v.IsZero() {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Predicate decides whether an item satisfies one filter value.
type Predicate[T any] func(item T, value FilterValue) bool

// Comparator orders two items: negative, zero or positive.
type Comparator[T any] func(a, b T) int

// Config describes one listing type.
type Config[T any] struct {
	Name     string
	PageSize int

	// Categories lists the selectable categories; AllCategory is the sentinel
	// meaning "no category constraint".
	Categories  []string
	AllCategory string
	CategoryOf  func(T) string

	// SearchFields returns the values matched by the free-text query.
	SearchFields func(T) []string

	Filters map[string]Predicate[T]

	Sorts       map[SortOption]Comparator[T]
	SortOptions []SortOption
	DefaultSort SortOption
}

func (c *Config[T]) pageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// FilterKeys returns the filter names this listing understands.
func (c *Config[T]) FilterKeys() []string {
	keys := make([]string, 0, len(c.Filters))
	for k := range c.Filters {
		keys = append(keys, k)
	}
	return keys
}

// HasSort reports whether option is a known sort strategy.
func (c *Config[T]) HasSort(option SortOption) bool {
	_, ok := c.Sorts[option]
	return ok
}
