package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultPageSize is the backend's page size when none is requested.
const DefaultPageSize = 10

// List is a decoded collection response.
type List[T any] struct {
	Results []T
	// Paged is true when the backend sent {count, next, previous, results}.
	Paged bool
	// Count is the total across all pages. Equal to len(Results) when not paged.
	Count    int
	Next     string
	Previous string
}

type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = List[T]{Results: []T{}}
		return nil
	}

	switch b[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		if items == nil {
			items = []T{}
		}
		*l = List[T]{Results: items, Count: len(items)}
		return nil
	case '{':
		var p page[T]
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		if p.Results == nil {
			return fmt.Errorf("models: object without results is not a list")
		}
		*l = List[T]{Results: p.Results, Paged: true, Count: p.Count}
		if p.Next != nil {
			l.Next = *p.Next
		}
		if p.Previous != nil {
			l.Previous = *p.Previous
		}
		return nil
	default:
		return fmt.Errorf("models: cannot decode %q as a list", b[:1])
	}
}

// MarshalJSON writes the paginated shape when the list was paged and a bare
// array otherwise.
func (l List[T]) MarshalJSON() ([]byte, error) {
	results := l.Results
	if results == nil {
		results = []T{}
	}
	if !l.Paged {
		return json.Marshal(results)
	}
	p := page[T]{Count: l.Count, Results: results}
	if l.Next != "" {
		p.Next = &l.Next
	}
	if l.Previous != "" {
		p.Previous = &l.Previous
	}
	return json.Marshal(p)
}

// Pages is the number of pages of size pageSize needed to hold Count items.
func (l List[T]) Pages(pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if l.Count <= 0 {
		return 0
	}
	return (l.Count + pageSize - 1) / pageSize
}

// HasMore reports whether the backend advertised a next page.
func (l List[T]) HasMore() bool {
	return l.Next != ""
}
