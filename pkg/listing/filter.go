package listing

import (
	"strconv"
	"strings"
	"time"
)

// Matches reports whether item passes the search query, the category and every filter.
func Matches[T any](cfg *Config[T], item T, filters Filters, search, category string) bool {
	if search != "" && !matchesSearch(cfg, item, search) {
		return false
	}

	if category != "" && category != cfg.AllCategory && cfg.CategoryOf != nil {
		if cfg.CategoryOf(item) != category {
			return false
		}
	}

	for key, value := range filters {
		if value.IsZero() {
			continue
		}
		pred, ok := cfg.Filters[key]
		if !ok {
			continue
		}
		if !pred(item, value) {
			return false
		}
	}
	return true
}

func matchesSearch[T any](cfg *Config[T], item T, search string) bool {
	if cfg.SearchFields == nil {
		return true
	}
	query := strings.ToLower(search)
	for _, field := range cfg.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Filter returns the items of src that match, preserving order. src is not modified.
func Filter[T any](cfg *Config[T], src []T, filters Filters, search, category string) []T {
	out := make([]T, 0, len(src))
	for _, item := range src {
		if Matches(cfg, item, filters, search, category) {
			out = append(out, item)
		}
	}
	return out
}

// Contains matches when the value text is a case-insensitive substring of field.
func Contains[T any](field func(T) string) Predicate[T] {
	return func(item T, value FilterValue) bool {
		if value.Text == "" {
			return true
		}
		return strings.Contains(strings.ToLower(field(item)), strings.ToLower(value.Text))
	}
}

// ContainsExact matches when the value text is a substring of field, case preserved.
func ContainsExact[T any](field func(T) string) Predicate[T] {
	return func(item T, value FilterValue) bool {
		if value.Text == "" {
			return true
		}
		return strings.Contains(field(item), value.Text)
	}
}

// Within matches when field falls inside the value range, bounds included.
func Within[T any](field func(T) time.Time) Predicate[T] {
	return func(item T, value FilterValue) bool {
		if value.Range == nil {
			return true
		}
		return value.Range.Contains(field(item))
	}
}

// Flag matches a boolean field against "true"/"false". Unparseable text passes everything.
func Flag[T any](field func(T) bool) Predicate[T] {
	return func(item T, value FilterValue) bool {
		want, err := strconv.ParseBool(value.Text)
		if err != nil {
			return true
		}
		return field(item) == want
	}
}

// Equal matches when field equals the value text, ignoring case.
func Equal[T any](field func(T) string) Predicate[T] {
	return func(item T, value FilterValue) bool {
		if value.Text == "" {
			return true
		}
		return strings.EqualFold(field(item), value.Text)
	}
}
