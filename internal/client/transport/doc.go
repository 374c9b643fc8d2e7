// Package transport is the request executor for the warehouse backend.
//
// An Executor sends one Descriptor and folds every outcome into a Result:
// transport errors, timeouts, non-JSON bodies and non-2xx statuses all come
// back as a *Failure with a Kind, never as a Go error or a panic. A 401 is
// reported as KindAuthExpired; deciding whether to refresh and replay is left
// to the caller (see package gateway).
package transport
