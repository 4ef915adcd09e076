// Package listing implements the product list view state: URL-driven query
// parameters, pagination boundaries, and a controller that coordinates
// identity resolution, debounced search and fetch reconciliation.
package listing

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query is the list view's navigation state. The URL is its source of truth:
// on (re)entry the state is parsed from the query string, and every transition
// writes the new state back, keeping the view shareable and back-button-safe.
type Query struct {
	Page   int
	Limit  int
	Search string
}

// ParseQuery reads list state from URL query parameters. Missing, malformed or
// out-of-range values fall back to defaults, so a manually edited URL is
// always usable.
func ParseQuery(values url.Values) Query {
	q := Query{
		Page:   parsePositive(values.Get("page"), DefaultPage),
		Limit:  parsePositive(values.Get("limit"), DefaultLimit),
		Search: values.Get("search"),
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Values encodes the state back into URL query parameters. An empty search is
// omitted rather than written as "search=".
func (q Query) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	return values
}

// WithSearch returns the state after committing a new search term. A changed
// term invalidates the prior pagination position, so page resets to 1.
func (q Query) WithSearch(search string) Query {
	if search == q.Search {
		return q
	}
	q.Search = search
	q.Page = 1
	return q
}

// WithLimit returns the state after a page-size change, which resets page to 1.
func (q Query) WithLimit(limit int) Query {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	q.Limit = limit
	q.Page = 1
	return q
}

// WithPage returns the state on page navigation. Page size and search are
// untouched.
func (q Query) WithPage(page int) Query {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}
