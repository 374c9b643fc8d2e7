package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/services"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Pinger probes backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config    *config.Config
	gw        *gateway.Client
	auth      services.AuthService
	dashboard services.DashboardService
	scan      services.ScanService
	boundary  *LoginBoundary
	log       logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu          sync.Mutex
	mode        Mode
	userName    string
	expiryShown bool
}

// Deps are the collaborators an App drives.
type Deps struct {
	Gateway   *gateway.Client
	Auth      services.AuthService
	Dashboard services.DashboardService
	Scan      services.ScanService
	Boundary  *LoginBoundary
	Logger    logging.Logger
}

func NewApp(c *config.Config, d Deps, in io.Reader, out io.Writer) *App {
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	if d.Boundary == nil {
		d.Boundary = NewLoginBoundary()
	}
	return &App{
		config:    c,
		gw:        d.Gateway,
		auth:      d.Auth,
		dashboard: d.Dashboard,
		scan:      d.Scan,
		boundary:  d.Boundary,
		log:       d.Logger,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
		a.println(mutedStyle.Render(fmt.Sprintf("Switched to %s mode", mode)))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) user() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated(context.Background())
}

// sessionExpired reports once per expiry that the session ended. It fires
// as soon as the redirect guard is set, without waiting for the navigation.
func (a *App) sessionExpired() bool {
	navigated := a.boundary.Take()
	redirecting := a.gw != nil && a.gw.Session().Redirecting()

	a.mu.Lock()
	defer a.mu.Unlock()
	if !navigated && !redirecting {
		a.expiryShown = false
		return false
	}
	if a.expiryShown {
		return false
	}
	a.expiryShown = true
	a.userName = ""
	return true
}

// Run shows the login prompt unless a remembered session exists, starts the
// connectivity watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to StockKeeper CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.gw, a.config.OnlineCheckInterval)

	if a.isLoggedIn() {
		a.setUser(a.auth.CurrentUser(ctx).DisplayName())
	} else if err := a.Login(ctx, nil); err != nil {
		a.printErr(err)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// StartOnlineStatusWatcher pings p every interval and flips the mode.
// It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, p Pinger, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := p.Ping(pctx); err != nil {
			a.setMode(ModeOffline)
			return
		}
		a.setMode(ModeOnline)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.user(); u != "" {
		s = u + " "
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
