package transport

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"time"
)

// Descriptor describes a single backend call. Builders return copies, so a
// Descriptor can be replayed after a token refresh without side effects.
type Descriptor struct {
	Method string
	// Path is relative to the API root, e.g. "/inventory/items/".
	Path  string
	Query url.Values
	// Body is JSON-encoded. Ignored when Upload is set.
	Body   any
	Upload *Upload
	Header http.Header
	// SkipAuth marks login, registration and refresh calls: no bearer header
	// and never a refresh on 401.
	SkipAuth bool
	// Timeout overrides the executor default when non-zero.
	Timeout time.Duration
}

// Upload is a multipart/form-data payload held in memory.
type Upload struct {
	Fields map[string]string
	Files  []FilePart
}

type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Get describes a GET of path, relative to the API root.
func Get(path string) Descriptor { return Descriptor{Method: http.MethodGet, Path: path} }

// Post describes a POST of body, encoded as JSON.
func Post(path string, body any) Descriptor {
	return Descriptor{Method: http.MethodPost, Path: path, Body: body}
}

// Put describes a PUT of body, encoded as JSON.
func Put(path string, body any) Descriptor {
	return Descriptor{Method: http.MethodPut, Path: path, Body: body}
}

// Patch describes a PATCH of body, encoded as JSON.
func Patch(path string, body any) Descriptor {
	return Descriptor{Method: http.MethodPatch, Path: path, Body: body}
}

// Delete describes a DELETE of path.
func Delete(path string) Descriptor { return Descriptor{Method: http.MethodDelete, Path: path} }

// WithQuery returns a copy of d with q merged into its query.
func (d Descriptor) WithQuery(q url.Values) Descriptor {
	merged := url.Values{}
	for k, v := range d.Query {
		merged[k] = slices.Clone(v)
	}
	for k, v := range q {
		merged[k] = slices.Clone(v)
	}
	d.Query = merged
	return d
}

func (d Descriptor) WithHeader(key, value string) Descriptor {
	h := d.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set(key, value)
	d.Header = h
	return d
}

// WithUpload returns a copy of d sent as multipart/form-data.
func (d Descriptor) WithUpload(u Upload) Descriptor {
	cp := Upload{Fields: maps.Clone(u.Fields), Files: slices.Clone(u.Files)}
	d.Upload = &cp
	return d
}

// WithoutAuth returns a copy of d sent without a bearer token.
func (d Descriptor) WithoutAuth() Descriptor {
	d.SkipAuth = true
	return d
}

func (d Descriptor) WithTimeout(t time.Duration) Descriptor {
	d.Timeout = t
	return d
}

// Mutating reports whether the call changes backend state.
func (d Descriptor) Mutating() bool {
	switch d.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// Target renders path and query, e.g. "/inventory/items/?search=bolt".
func (d Descriptor) Target() string {
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}
