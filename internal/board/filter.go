package board

import (
	"strconv"
	"strings"

	"github.com/studiowebux/postboard/internal/types"
)

// Filter is an id-equality predicate over posts. The zero value matches everything.
type Filter struct {
	query  string
	active bool
	valid  bool
	id     int
}

// ParseFilter builds a filter from a search query. An empty query matches
// everything; a query that is not a base-10 integer matches nothing.
func ParseFilter(query string) Filter {
	if query == "" {
		return Filter{}
	}

	f := Filter{query: query, active: true}
	id, err := strconv.Atoi(strings.TrimSpace(query))
	if err == nil {
		f.id = id
		f.valid = true
	}
	return f
}

// Matches reports whether p passes the filter
func (f Filter) Matches(p types.Post) bool {
	if !f.active {
		return true
	}
	return f.valid && p.ID == f.id
}

// IsActive reports whether the filter narrows the collection
func (f Filter) IsActive() bool {
	return f.active
}

// IsValid is false for an active filter whose query is not an integer
func (f Filter) IsValid() bool {
	return !f.active || f.valid
}

// Query returns the raw query the filter was built from
func (f Filter) Query() string {
	return f.query
}
