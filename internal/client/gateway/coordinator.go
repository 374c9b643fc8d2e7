package gateway

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/stockkeeper/internal/client/metrics"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

const refreshPath = "/auth/refresh/"

var (
	errNoRefreshToken = errors.New("no refresh token stored")
	errSessionGone    = errors.New("session cleared during refresh")
	errEmptyAccess    = errors.New("refresh response carries no access token")
)

// Do sends d with the stored access token. On a 401 it refreshes the token
// once and replays d once; the replay's result is returned as is, even when
// it is another 401. Requests marked SkipAuth never refresh.
func (c *Client) Do(ctx context.Context, d transport.Descriptor) transport.Result {
	if d.SkipAuth {
		return c.exec.Execute(ctx, d, "")
	}

	token, _ := c.sess.Credentials.LoadAccessToken(ctx)
	res := c.exec.Execute(ctx, d, token)
	if !res.AuthExpired() {
		return res
	}

	if c.sess.Redirecting() {
		return transport.Fail(transport.AuthExpiredFailure())
	}

	fresh, err := c.refresh(ctx, token)
	if err != nil {
		return transport.Fail(transport.AuthExpiredFailure())
	}

	c.log.Debug(ctx, "replaying after refresh", "method", d.Method, "path", d.Path)
	return c.exec.Execute(ctx, d, fresh)
}

// refresh returns an access token newer than sentWith. Concurrent callers
// share one refresh call. If the stored token already differs from sentWith,
// someone else refreshed and no call is made. A failed refresh ends the
// session before any caller returns.
func (c *Client) refresh(ctx context.Context, sentWith string) (string, error) {
	if cur, ok := c.sess.Credentials.LoadAccessToken(ctx); ok && cur != sentWith {
		c.metrics.Refresh(metrics.RefreshSkipped)
		return cur, nil
	}

	// detached so one caller's cancellation does not fail the others
	flightCtx := context.WithoutCancel(ctx)

	v, err, _ := c.refreshes.Do("refresh", func() (any, error) {
		if cur, ok := c.sess.Credentials.LoadAccessToken(flightCtx); ok && cur != sentWith {
			c.metrics.Refresh(metrics.RefreshSkipped)
			return cur, nil
		}
		if c.sess.Redirecting() {
			return "", errSessionGone
		}

		access, err := c.refreshNow(flightCtx)
		if err != nil {
			c.metrics.Refresh(metrics.RefreshFailed)
			c.log.Warn(flightCtx, "token refresh failed", "error", err)
			c.expireSession(flightCtx)
			return "", err
		}
		c.metrics.Refresh(metrics.RefreshOK)
		c.log.Info(flightCtx, "access token refreshed")
		return access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// refreshNow calls the refresh endpoint and stores the new tokens.
func (c *Client) refreshNow(ctx context.Context) (string, error) {
	rt, ok := c.sess.Credentials.LoadRefreshToken(ctx)
	if !ok {
		return "", errNoRefreshToken
	}

	d := transport.Post(refreshPath, models.RefreshRequest{Refresh: rt}).WithoutAuth()
	res := c.exec.Execute(ctx, d, "")
	if !res.Success {
		return "", res.Err
	}

	var pair models.TokenPair
	if err := json.Unmarshal(res.Data, &pair); err != nil {
		return "", err
	}
	if pair.Access == "" {
		return "", errEmptyAccess
	}
	if !c.sess.Credentials.UpdateTokens(ctx, pair.Access, pair.Refresh) {
		return "", errSessionGone
	}
	return pair.Access, nil
}

// expireSession clears credentials and the cache and schedules the login
// boundary. Only the first caller per session does anything.
func (c *Client) expireSession(ctx context.Context) {
	if !c.sess.TryBeginRedirect() {
		return
	}
	c.log.Warn(ctx, "session expired, redirecting to login")
	c.metrics.LoginRedirect()
	c.sess.Credentials.Clear(ctx)
	c.cache.Invalidate(ctx)
	c.sess.ScheduleRedirect(c.redirectDelay, c.nav.NavigateToLogin)
}
