package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/shared"
)

// Login prompts for credentials (the username may be given as an argument)
// and a remember-me choice. A remembered session survives restarts.
func (a *App) Login(ctx context.Context, args []string) error {
	var (
		username string
		err      error
	)
	if len(args) > 0 {
		username = args[0]
	} else if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	remember := GetYesNo(a.reader, "Remember me?", a.out)

	u, err := a.auth.Login(ctx, username, string(password), remember)
	if err != nil {
		return err
	}
	a.boundary.Take()
	a.setUser(u.DisplayName())
	a.println(okStyle.Render("Login successful, welcome " + u.DisplayName()))
	return nil
}

func (a *App) Register(ctx context.Context, _ []string) error {
	var req models.RegisterRequest
	var err error

	if req.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email (optional)", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)
	a.println("Repeat password")
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)
	req.Password, req.PasswordConfirm = string(password), string(confirm)

	remember := GetYesNo(a.reader, "Remember me?", a.out)

	u, err := a.auth.Register(ctx, req, remember)
	if err != nil {
		return err
	}
	a.boundary.Take()
	a.setUser(u.DisplayName())
	a.println(okStyle.Render("Success!"))
	return nil
}

// Logout always forgets the local session, even when the backend call fails.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.auth.Logout(ctx)
	a.setUser("")
	a.println("Logged out")
	if err != nil {
		a.log.Warn(ctx, "logout not confirmed by backend", "error", err)
	}
	return nil
}

func (a *App) Status(ctx context.Context, _ []string) error {
	w := a.table("KEY", "VALUE")
	row(w, "api", a.config.APIBaseURL)
	row(w, "mode", a.currentMode())
	if a.isLoggedIn() {
		u := a.auth.CurrentUser(ctx)
		row(w, "user", fmt.Sprintf("%s (%s)", u.DisplayName(), u.Role))
		row(w, "remember me", a.gw.Session().Credentials.RememberMe(ctx))
		row(w, "token expired", a.auth.TokenExpired(ctx))
	} else {
		row(w, "user", "-")
	}
	row(w, "cache", a.config.CacheBackend)
	return w.Flush()
}
