package gateway

import (
	"net/url"
	"strconv"
)

// ListQuery holds the filters shared by the paginated list endpoints. Zero
// fields are left out of the query string.
type ListQuery struct {
	Search   string
	Ordering string
	Page     int
	PageSize int
	// Filters are passed through as exact-match query parameters,
	// e.g. {"category": "3", "status": "low_stock"}.
	Filters map[string]string
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Ordering != "" {
		v.Set("ordering", q.Ordering)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

func intQuery(key string, n int) url.Values {
	if n <= 0 {
		return nil
	}
	return url.Values{key: {strconv.Itoa(n)}}
}

func idPath(base string, id int64) string {
	return base + strconv.FormatInt(id, 10) + "/"
}
