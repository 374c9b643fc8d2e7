package gateway

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

type AuthAPI struct{ c *Client }

// Login exchanges credentials for a token pair. It does not store them;
// see services.AuthService.
func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) Result[models.LoginResponse] {
	return mutate[models.LoginResponse](ctx, a.c, transport.Post("/auth/login/", req).WithoutAuth())
}

func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) Result[models.LoginResponse] {
	return mutate[models.LoginResponse](ctx, a.c, transport.Post("/auth/register/", req).WithoutAuth())
}

// Logout asks the backend to blacklist the stored refresh token.
func (a *AuthAPI) Logout(ctx context.Context) Result[json.RawMessage] {
	rt, _ := a.c.sess.Credentials.LoadRefreshToken(ctx)
	return mutate[json.RawMessage](ctx, a.c, transport.Post("/auth/logout/", models.LogoutRequest{RefreshToken: rt}))
}

// Refresh forces a token refresh outside the 401 path. It shares the
// in-flight refresh with any concurrent 401 handling.
func (a *AuthAPI) Refresh(ctx context.Context) Result[models.TokenPair] {
	current, _ := a.c.sess.Credentials.LoadAccessToken(ctx)
	access, err := a.c.refresh(ctx, current)
	if err != nil {
		return failed[models.TokenPair](transport.AuthExpiredFailure())
	}
	rt, _ := a.c.sess.Credentials.LoadRefreshToken(ctx)
	return Result[models.TokenPair]{Success: true, Data: models.TokenPair{Access: access, Refresh: rt}}
}

func (a *AuthAPI) Profile(ctx context.Context) Result[models.User] {
	return fetch[models.User](ctx, a.c, transport.Get("/auth/profile/"))
}

func (a *AuthAPI) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) Result[models.User] {
	return mutate[models.User](ctx, a.c, transport.Put("/auth/profile/update/", req))
}

func (a *AuthAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) Result[json.RawMessage] {
	return mutate[json.RawMessage](ctx, a.c, transport.Post("/auth/change-password/", req))
}

func (a *AuthAPI) Blacklist(ctx context.Context) Result[[]models.BlacklistEntry] {
	return fetch[[]models.BlacklistEntry](ctx, a.c, transport.Get("/auth/blacklist/"))
}

func (a *AuthAPI) BlacklistAdd(ctx context.Context, target string) Result[json.RawMessage] {
	if target == "" {
		return failed[json.RawMessage](transport.InvalidFailure("请输入IP地址"))
	}
	return mutate[json.RawMessage](ctx, a.c, transport.Post("/auth/blacklist/add/", map[string]string{"target": target}))
}

func (a *AuthAPI) BlacklistRemove(ctx context.Context, key string) Result[json.RawMessage] {
	if key == "" {
		return failed[json.RawMessage](transport.InvalidFailure("key: 必填"))
	}
	return mutate[json.RawMessage](ctx, a.c, transport.Post("/auth/blacklist/remove/", map[string]string{"key": key}))
}

func (a *AuthAPI) BlacklistClear(ctx context.Context) Result[json.RawMessage] {
	return mutate[json.RawMessage](ctx, a.c, transport.Post("/auth/blacklist/clear/", nil))
}
