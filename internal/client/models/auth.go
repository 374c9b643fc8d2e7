package models

import "encoding/json"

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Department  string `json:"department,omitempty"`
	Role        string `json:"role,omitempty"`
	RoleDisplay string `json:"role_display,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	full := u.LastName + u.FirstName
	if full != "" {
		return full
	}
	return u.Username
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the payload of both login and registration.
type LoginResponse struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	// User is kept raw so the profile can be stored without loss.
	User json.RawMessage `json:"user"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Department      string `json:"department,omitempty"`
}

type UpdateProfileRequest struct {
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=6"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

// RefreshRequest is the body of POST /auth/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenPair is the raw refresh response. Refresh is set only when the
// backend rotates refresh tokens.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// BlacklistEntry is a locked-out client address.
type BlacklistEntry struct {
	Key      string `json:"key"`
	IP       string `json:"ip"`
	Attempts int    `json:"attempts"`
	Locked   bool   `json:"locked"`
}
