// Package session holds the process-wide authentication state of the client:
// the credential store (access token, refresh token, user profile) split
// across a durable and a session-scoped tier, and the redirect guard that
// makes the "session expired, go to login" side effect happen once.
//
// Everything lives on an explicit *Context value handed to the gateway, so
// tests build a fresh one per case.
//
// Storage failures never escape: reads degrade to "not logged in", writes
// are logged at WARN.
package session
