package cli

import "sync/atomic"

// LoginBoundary is the CLI's login page. It implements gateway.Navigator.
type LoginBoundary struct {
	pending atomic.Bool
}

func NewLoginBoundary() *LoginBoundary { return &LoginBoundary{} }

// NavigateToLogin is called by the gateway after it has cleared the session.
func (b *LoginBoundary) NavigateToLogin() { b.pending.Store(true) }

// Take reports whether a navigation happened since the last call.
func (b *LoginBoundary) Take() bool { return b.pending.Swap(false) }
