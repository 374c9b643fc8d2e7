package gateway

import (
	"context"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/cache"
	"github.com/dmitrijs2005/stockkeeper/internal/client/metrics"
	"github.com/dmitrijs2005/stockkeeper/internal/client/session"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"golang.org/x/sync/singleflight"
)

// DefaultRedirectDelay is the pause between tearing down the session and
// showing the login boundary.
const DefaultRedirectDelay = 100 * time.Millisecond

// Executor sends a single request. *transport.Executor implements it.
type Executor interface {
	Execute(ctx context.Context, d transport.Descriptor, token string) transport.Result
}

// Navigator is the login boundary.
type Navigator interface {
	NavigateToLogin()
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) NavigateToLogin() { f() }

// Client is the API gateway. Every method returns a Result and never panics;
// 401s go through the refresh coordinator in Do. Safe for concurrent use.
type Client struct {
	exec    Executor
	sess    *session.Context
	cache   cache.Cache
	nav     Navigator
	log     logging.Logger
	metrics *metrics.Collectors

	redirectDelay time.Duration
	refreshes     singleflight.Group

	Auth       *AuthAPI
	Dashboard  *DashboardAPI
	Items      *ItemsAPI
	Categories *CategoriesAPI
	Operations *OperationsAPI
	Warehouses *WarehousesAPI
	Suppliers  *SuppliersAPI
}

type Option func(*Client)

// WithCache sets the response cache for list reads. The default caches nothing.
func WithCache(c cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithNavigator sets the login boundary shown when the session ends.
func WithNavigator(n Navigator) Option {
	return func(cl *Client) { cl.nav = n }
}

func WithLogger(l logging.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

func WithMetrics(m *metrics.Collectors) Option {
	return func(cl *Client) { cl.metrics = m }
}

// WithRedirectDelay sets how long navigation waits after the session is cleared.
func WithRedirectDelay(d time.Duration) Option {
	return func(cl *Client) { cl.redirectDelay = d }
}

// New builds a Client that sends through exec and keeps credentials in sess.
func New(exec Executor, sess *session.Context, opts ...Option) *Client {
	c := &Client{
		exec:          exec,
		sess:          sess,
		cache:         cache.None{},
		nav:           NavigatorFunc(func() {}),
		log:           logging.Nop{},
		redirectDelay: DefaultRedirectDelay,
	}
	for _, o := range opts {
		o(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Dashboard = &DashboardAPI{c: c}
	c.Items = &ItemsAPI{c: c}
	c.Categories = &CategoriesAPI{c: c}
	c.Operations = &OperationsAPI{c: c}
	c.Warehouses = &WarehousesAPI{c: c}
	c.Suppliers = &SuppliersAPI{c: c}
	return c
}

// Session returns the shared session context.
func (c *Client) Session() *session.Context { return c.sess }

// InvalidateCache drops every cached list.
func (c *Client) InvalidateCache(ctx context.Context) { c.cache.Invalidate(ctx) }

// Ping reports whether the backend answers at all. Any HTTP response counts,
// including 401; only transport failures do not. It bypasses the refresh
// logic so a logged-out client can probe without ending a session.
func (c *Client) Ping(ctx context.Context) error {
	res := c.exec.Execute(ctx, transport.Get("/dashboard/system-info/").WithoutAuth(), "")
	if !res.Success && res.Err.Kind == transport.KindNetwork {
		return res.Err
	}
	return nil
}
