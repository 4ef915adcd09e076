package listing

// Pagination boundary policy. These are pure functions of
// (page, limit, total) so they can be tested without rendering anything.

// TotalPages returns the number of pages needed for total rows.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// HasPrev reports whether a previous page exists. "Previous" is disabled when
// page equals 1.
func HasPrev(page int) bool {
	return page > 1
}

// HasNext reports whether a next page exists. "Next" is disabled when
// page*limit >= total.
func HasNext(page, limit int, total int64) bool {
	return int64(page)*int64(limit) < total
}
