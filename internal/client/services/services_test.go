package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway/gatewaytest"
	"github.com/dmitrijs2005/stockkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/stockkeeper/internal/client/session"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

type navCounter struct{ n atomic.Int32 }

func (c *navCounter) NavigateToLogin() { c.n.Add(1) }

type env struct {
	backend *gatewaytest.Backend
	durable *metadata.MemoryStore
	sess    *session.Context
	nav     *navCounter
	gw      *gateway.Client
}

// newEnv wires a gateway to a fresh fake backend. Nobody is signed in.
func newEnv(t *testing.T) *env {
	t.Helper()
	b := gatewaytest.New(t)
	durable := metadata.NewMemoryStore()
	sess := session.NewContext(session.NewStore(durable, metadata.NewMemoryStore(), nil))
	nav := &navCounter{}
	exec := transport.NewExecutor(b.URL(), transport.WithHTTPClient(b.HTTPClient()))
	gw := gateway.New(exec, sess, gateway.WithNavigator(nav), gateway.WithRedirectDelay(time.Millisecond))
	return &env{backend: b, durable: durable, sess: sess, nav: nav, gw: gw}
}

// signIn stores a token pair issued by the backend, as a prior login would.
func (e *env) signIn(t *testing.T) {
	t.Helper()
	access, refresh := e.backend.Login("admin")
	e.sess.Credentials.Save(context.Background(), session.Bundle{AccessToken: access, RefreshToken: refresh}, session.Session)
}
