package gateway

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

// Result is the typed outcome of a gateway call. When Success is false,
// Error is set and Data is the zero value.
type Result[T any] struct {
	Success bool
	Data    T
	Error   *transport.Failure
}

// Err returns Error as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.Success || r.Error == nil {
		return nil
	}
	return r.Error
}

// Message is the failure message, or "" on success.
func (r Result[T]) Message() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

type EnvelopeError struct {
	Message string `json:"message"`
}

// Envelope is the {success, data, error} shape handed to callers that want
// plain JSON.
type Envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *EnvelopeError `json:"error,omitempty"`
}

func (r Result[T]) Envelope() Envelope {
	if !r.Success {
		msg := transport.MsgRequest
		if r.Error != nil {
			msg = r.Error.Message
		}
		return Envelope{Error: &EnvelopeError{Message: msg}}
	}
	return Envelope{Success: true, Data: r.Data}
}

func failed[T any](f *transport.Failure) Result[T] {
	return Result[T]{Error: f}
}

// decode turns an untyped result into a typed one. A payload that does not
// fit T is a protocol failure.
func decode[T any](res transport.Result) Result[T] {
	if !res.Success {
		return failed[T](res.Err)
	}
	var out T
	if len(res.Data) > 0 && string(res.Data) != "null" {
		if err := json.Unmarshal(res.Data, &out); err != nil {
			return failed[T](&transport.Failure{
				Kind:    transport.KindProtocol,
				Message: transport.MsgProtocol,
				Status:  res.Status,
			})
		}
	}
	return Result[T]{Success: true, Data: out}
}

// fetch sends a read.
func fetch[T any](ctx context.Context, c *Client, d transport.Descriptor) Result[T] {
	return decode[T](c.Do(ctx, d))
}

// mutate validates the body, sends a write and drops the whole cache when it
// succeeds.
func mutate[T any](ctx context.Context, c *Client, d transport.Descriptor) Result[T] {
	if err := models.Validate(d.Body); err != nil {
		return failed[T](transport.InvalidFailure(err.Error()))
	}
	res := c.Do(ctx, d)
	if res.Success {
		c.cache.Invalidate(ctx)
	}
	return decode[T](res)
}

// cachedList is a read-through for list endpoints. The cache key is the
// resource name plus the encoded query.
func cachedList[T any](ctx context.Context, c *Client, resource string, d transport.Descriptor) Result[models.List[T]] {
	key := cacheKey(resource, d.Query)

	if raw, ok := c.cache.Get(ctx, key); ok {
		var l models.List[T]
		if err := json.Unmarshal(raw, &l); err == nil {
			c.metrics.CacheLookup(true)
			return Result[models.List[T]]{Success: true, Data: l}
		}
		c.cache.Invalidate(ctx, key)
	}
	c.metrics.CacheLookup(false)

	res := c.Do(ctx, d)
	out := decode[models.List[T]](res)
	if out.Success {
		c.cache.Set(ctx, key, res.Data)
	}
	return out
}

func cacheKey(resource string, q url.Values) string {
	if len(q) == 0 {
		return resource
	}
	return resource + "?" + q.Encode()
}
