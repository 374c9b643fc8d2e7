package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/session"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
)

// ErrNoToken is returned by Login and Register when the backend accepted the
// credentials but sent no access token.
var ErrNoToken = errors.New("login response carries no access token")

// AuthService defines the sign-in flows.
//
//   - Login / Register: call the backend, store the bundle in the tier chosen
//     by rememberMe and re-arm the redirect guard.
//   - Logout: tell the backend (best effort), then forget everything locally.
//   - TokenExpired: whether the stored access token's exp has passed.
type AuthService interface {
	Login(ctx context.Context, username, password string, rememberMe bool) (models.User, error)
	Register(ctx context.Context, req models.RegisterRequest, rememberMe bool) (models.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	TokenExpired(ctx context.Context) bool
	CurrentUser(ctx context.Context) models.User
	Profile(ctx context.Context) (models.User, error)
}

type authService struct {
	gw  *gateway.Client
	log logging.Logger
	now func() time.Time
}

func NewAuthService(gw *gateway.Client, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop{}
	}
	return &authService{gw: gw, log: log, now: time.Now}
}

func (a *authService) creds() *session.Store { return a.gw.Session().Credentials }

func (a *authService) Login(ctx context.Context, username, password string, rememberMe bool) (models.User, error) {
	r := a.gw.Auth.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if !r.Success {
		return models.User{}, r.Err()
	}
	return a.establish(ctx, r.Data, rememberMe)
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest, rememberMe bool) (models.User, error) {
	r := a.gw.Auth.Register(ctx, req)
	if !r.Success {
		return models.User{}, r.Err()
	}
	return a.establish(ctx, r.Data, rememberMe)
}

// establish stores a fresh bundle and starts a new session.
func (a *authService) establish(ctx context.Context, lr models.LoginResponse, rememberMe bool) (models.User, error) {
	if lr.AccessToken == "" {
		return models.User{}, ErrNoToken
	}

	tier := session.Session
	if rememberMe {
		tier = session.Durable
	}
	a.creds().Save(ctx, session.Bundle{
		AccessToken:  lr.AccessToken,
		RefreshToken: lr.RefreshToken,
		UserProfile:  lr.User,
	}, tier)
	a.gw.Session().ResetRedirect()
	a.gw.InvalidateCache(ctx)

	var u models.User
	if len(lr.User) > 0 {
		if err := json.Unmarshal(lr.User, &u); err != nil {
			a.log.Warn(ctx, "unreadable user profile in login response", "error", err)
		}
	}
	a.log.Info(ctx, "signed in", "user", u.Username, "tier", tier.String())
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	var err error
	if a.creds().IsAuthenticated(ctx) {
		if r := a.gw.Auth.Logout(ctx); !r.Success {
			err = r.Err()
			a.log.Warn(ctx, "backend logout failed", "error", err)
		}
	}
	a.creds().Clear(ctx)
	a.gw.InvalidateCache(ctx)
	a.log.Info(ctx, "signed out")
	return err
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.creds().IsAuthenticated(ctx)
}

// TokenExpired treats a missing or undecodable token as expired.
func (a *authService) TokenExpired(ctx context.Context) bool {
	exp, ok := a.creds().AccessTokenExpiry(ctx)
	if !ok {
		return true
	}
	return !a.now().Before(exp)
}

// CurrentUser decodes the stored profile without a network call.
func (a *authService) CurrentUser(ctx context.Context) models.User {
	var u models.User
	_ = json.Unmarshal(a.creds().LoadUserProfile(ctx), &u)
	return u
}

func (a *authService) Profile(ctx context.Context) (models.User, error) {
	r := a.gw.Auth.Profile(ctx)
	if !r.Success {
		return models.User{}, r.Err()
	}
	return r.Data, nil
}

// IsAuthExpired reports whether err means the session is gone.
func IsAuthExpired(err error) bool {
	return errors.Is(err, &transport.Failure{Kind: transport.KindAuthExpired})
}
