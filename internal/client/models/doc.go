// Package models holds the typed shapes exchanged with the warehouse
// backend.
//
// Responses are decoded once, at the gateway boundary, into these structs.
// Lists are decoded with List, which accepts either a bare JSON array or a
// paginated page and records which one arrived, so callers never have to
// guess the shape again.
//
// Request payloads carry validate tags; Validate checks them before anything
// is sent.
package models
