package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/session"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_RememberMeUsesDurableTier(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	auth := NewAuthService(e.gw, nil)

	u, err := auth.Login(ctx, "admin", "admin123", true)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	assert.True(t, auth.IsAuthenticated(ctx))
	assert.True(t, e.sess.Credentials.RememberMe(ctx))
	assert.Equal(t, "admin", auth.CurrentUser(ctx).Username)

	stored, err := e.durable.Get(ctx, session.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, e.backend.AccessToken(), string(stored))
}

func TestLogin_SessionTierLeavesDurableEmpty(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	auth := NewAuthService(e.gw, nil)

	_, err := auth.Login(ctx, "admin", "admin123", false)
	require.NoError(t, err)

	assert.False(t, e.sess.Credentials.RememberMe(ctx))
	all, err := e.durable.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	auth := NewAuthService(e.gw, nil)

	_, err := auth.Login(ctx, "admin", "nope", true)
	var f *transport.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "用户名或密码错误", f.Message)
	assert.False(t, auth.IsAuthenticated(ctx))
	assert.False(t, IsAuthExpired(err))
}

func TestLogin_RearmsRedirectGuard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	auth := NewAuthService(e.gw, nil)

	require.True(t, e.sess.TryBeginRedirect())
	_, err := auth.Login(ctx, "admin", "admin123", false)
	require.NoError(t, err)
	assert.False(t, e.sess.Redirecting())
}

func TestRegister(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	auth := NewAuthService(e.gw, nil)

	u, err := auth.Register(ctx, models.RegisterRequest{
		Username: "keeper", Email: "keeper@example.com", Password: "s3cret!!", PasswordConfirm: "s3cret!!",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "keeper", u.Username)
	assert.True(t, auth.IsAuthenticated(ctx))

	_, err = auth.Register(ctx, models.RegisterRequest{
		Username: "keeper", Email: "keeper@example.com", Password: "s3cret!!", PasswordConfirm: "other",
	}, false)
	require.Error(t, err)
	assert.Equal(t, 1, e.backend.Hits(http.MethodPost, "/auth/register/"), "mismatched confirmation never leaves the client")
}

func TestLogout_ClearsEverything(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	auth := NewAuthService(e.gw, nil)

	_, err := auth.Login(ctx, "admin", "admin123", true)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))
	assert.False(t, auth.IsAuthenticated(ctx))
	assert.Equal(t, models.User{}, auth.CurrentUser(ctx))
	assert.Equal(t, 1, e.backend.Hits(http.MethodPost, "/auth/logout/"))

	// nothing stored, nothing to tell the backend
	require.NoError(t, auth.Logout(ctx))
	assert.Equal(t, 1, e.backend.Hits(http.MethodPost, "/auth/logout/"))
}

func TestTokenExpired(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewAuthService(e.gw, nil).(*authService)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	assert.True(t, svc.TokenExpired(ctx), "no token")

	e.sess.Credentials.Save(ctx, session.Bundle{AccessToken: "not-a-jwt"}, session.Session)
	assert.True(t, svc.TokenExpired(ctx), "undecodable token")

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(5 * time.Minute).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	e.sess.Credentials.Save(ctx, session.Bundle{AccessToken: tok}, session.Session)
	assert.False(t, svc.TokenExpired(ctx))

	now = now.Add(10 * time.Minute)
	assert.True(t, svc.TokenExpired(ctx))
}

func TestProfile_AfterExpiryRedirects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	auth := NewAuthService(e.gw, nil)

	e.signIn(t)
	u, err := auth.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	e.backend.ExpireAccess()
	e.backend.FailRefresh(http.StatusUnauthorized)

	_, err = auth.Profile(ctx)
	require.Error(t, err)
	assert.True(t, IsAuthExpired(err))
	assert.ErrorIs(t, err, &transport.Failure{Kind: transport.KindAuthExpired})
	assert.False(t, auth.IsAuthenticated(ctx))
	assert.Eventually(t, func() bool { return e.nav.n.Load() == 1 }, time.Second, 5*time.Millisecond)
}
