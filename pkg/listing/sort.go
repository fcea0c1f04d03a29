package listing

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators keep scratch buffers and are not safe for concurrent use.
var collators = sync.Pool{
	New: func() interface{} {
		return collate.New(language.English, collate.Loose, collate.Numeric)
	},
}

func compareText(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// Compare orders a and b with the named strategy. Unknown options compare equal.
func Compare[T any](cfg *Config[T], a, b T, option SortOption) int {
	cmp, ok := cfg.Sorts[option]
	if !ok {
		return 0
	}
	return cmp(a, b)
}

// Sort returns a stably sorted copy of src. src is not modified.
func Sort[T any](cfg *Config[T], src []T, option SortOption) []T {
	out := make([]T, len(src))
	copy(out, src)

	cmp, ok := cfg.Sorts[option]
	if !ok || len(out) < 2 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// ByText orders by a display string using English collation.
func ByText[T any](field func(T) string, desc bool) Comparator[T] {
	return func(a, b T) int {
		return direction(compareText(field(a), field(b)), desc)
	}
}

// ByTime orders by a calendar timestamp.
func ByTime[T any](field func(T) time.Time, desc bool) Comparator[T] {
	return func(a, b T) int {
		return direction(field(a).Compare(field(b)), desc)
	}
}

// ByInt orders by a structured integer field.
func ByInt[T any](field func(T) int, desc bool) Comparator[T] {
	return func(a, b T) int {
		x, y := field(a), field(b)
		var res int
		switch {
		case x < y:
			res = -1
		case x > y:
			res = 1
		}
		return direction(res, desc)
	}
}

func direction(res int, desc bool) int {
	if desc {
		return -res
	}
	return res
}
