package listing

// TotalPages returns ceil(total/perPage).
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// ClampPage bounds page to [1, max(1, TotalPages(total, perPage))].
func ClampPage(page, total, perPage int) int {
	last := TotalPages(total, perPage)
	if last < 1 {
		last = 1
	}
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

// Window returns the slice of items shown on page. Out-of-range pages yield an empty slice.
func Window[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return []T{}
	}
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if page > TotalPages(len(items), perPage) {
		return []T{}
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
