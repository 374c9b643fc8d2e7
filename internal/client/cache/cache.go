// Package cache is the short-lived response cache for list reads.
//
// The cache is advisory: a backend failure reads as a miss and a failed write
// is dropped, so callers always fall back to fetching.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultDuration is how long a list response stays fresh.
const DefaultDuration = 30 * time.Second

type Cache interface {
	// Get returns the value stored under key if it is still fresh.
	Get(ctx context.Context, key string) (json.RawMessage, bool)
	// Set stores value under key, replacing any previous entry.
	Set(ctx context.Context, key string, value json.RawMessage)
	// Invalidate drops the named keys, or every key when none are given.
	Invalidate(ctx context.Context, keys ...string)
}

// None never holds anything.
type None struct{}

func (None) Get(context.Context, string) (json.RawMessage, bool) { return nil, false }
func (None) Set(context.Context, string, json.RawMessage)        {}
func (None) Invalidate(context.Context, ...string)               {}
