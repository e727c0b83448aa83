package api

import (
	"net/url"
	"strconv"
)

// Query defaults. Limit and Sort mirror the backend's own defaults so an
// unconfigured client sees the same first page the server would serve anyway.
const (
	DefaultLimit = 20
	DefaultSort  = "created_at_desc"
)

// ListQuery holds list parameters. The zero value encodes to the default page.
type ListQuery struct {
	Limit  int
	Offset int
	Sort   string
	Q      string
}

// Encode builds the query string. Limit, Offset and Sort always appear,
// normalized to their defaults when unset or out of range. Q is omitted
// entirely when empty so the server never sees an empty filter.
func (q ListQuery) Encode() string {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	sort := q.Sort
	if sort == "" {
		sort = DefaultSort
	}

	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(offset))
	v.Set("sort", sort)
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	return v.Encode()
}

// ClampOffset bounds a candidate offset to [0, max(0, total-1)]. It is used
// only when deriving prev/next navigation targets; an offset the caller asks
// for explicitly is sent as given.
func ClampOffset(candidate, total int) int {
	max := total - 1
	if max < 0 {
		max = 0
	}
	if candidate < 0 {
		return 0
	}
	if candidate > max {
		return max
	}
	return candidate
}

// CanPrev reports whether a previous page exists.
func (p ContentListPage) CanPrev() bool { return p.Offset > 0 }

// CanNext reports whether a next page exists.
func (p ContentListPage) CanNext() bool { return p.Offset+p.Limit < p.Total }

// PrevOffset derives the previous page's offset.
func (p ContentListPage) PrevOffset() int { return ClampOffset(p.Offset-p.Limit, p.Total) }

// NextOffset derives the next page's offset.
func (p ContentListPage) NextOffset() int { return ClampOffset(p.Offset+p.Limit, p.Total) }

// ShowingRange returns the 1-based first and last display indices for the
// "Showing X–Y of N" footer. Both are 0 when the result set is empty.
func (p ContentListPage) ShowingRange() (int, int) {
	if p.Total == 0 {
		return 0, 0
	}
	first := p.Offset + 1
	if first > p.Total {
		first = p.Total
	}
	last := p.Offset + p.Limit
	if last > p.Total {
		last = p.Total
	}
	return first, last
}
