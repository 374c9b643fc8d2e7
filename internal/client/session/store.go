package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Tier selects where a credential bundle is persisted.
type Tier int

const (
	// Session lives only as long as the process.
	Session Tier = iota
	// Durable survives restarts ("remember me").
	Durable
)

func (t Tier) String() string {
	if t == Durable {
		return "durable"
	}
	return "session"
}

// Persistence keys. Both tiers use the same names.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserInfo     = "user_info"
	KeyRememberMe   = "remember_me"
)

var allKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUserInfo, KeyRememberMe}

var emptyProfile = json.RawMessage(`{}`)

// Bundle is the complete set of credentials produced by a login.
type Bundle struct {
	AccessToken  string
	RefreshToken string
	UserProfile  json.RawMessage
}

// Store persists at most one Bundle across the two tiers.
type Store struct {
	durable metadata.Store
	session metadata.Store
	log     logging.Logger

	// serializes multi-tier writes; single-tier atomicity comes from Update
	mu sync.Mutex
}

// NewStore builds a Store over the durable and session tiers. A nil log
// discards storage warnings.
func NewStore(durable, session metadata.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop{}
	}
	return &Store{durable: durable, session: session, log: log}
}

func (s *Store) tiers(t Tier) (target, other metadata.Store) {
	if t == Durable {
		return s.durable, s.session
	}
	return s.session, s.durable
}

// Save replaces whatever bundle is stored with b, in tier t, and removes the
// same keys from the other tier.
func (s *Store) Save(ctx context.Context, b Bundle, t Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := b.UserProfile
	if len(profile) == 0 || !json.Valid(profile) {
		profile = emptyProfile
	}

	target, other := s.tiers(t)

	err := target.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		if err := repo.Set(ctx, KeyAccessToken, []byte(b.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyRefreshToken, []byte(b.RefreshToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUserInfo, profile); err != nil {
			return err
		}
		if t == Durable {
			return repo.Set(ctx, KeyRememberMe, []byte("true"))
		}
		return repo.Delete(ctx, KeyRememberMe)
	})
	if err != nil {
		s.log.Warn(ctx, "credential save failed, clearing", "tier", t.String(), "error", err)
		s.clearLocked(ctx)
		return
	}

	s.wipe(ctx, other, t.other())
}

func (t Tier) other() Tier {
	if t == Durable {
		return Session
	}
	return Durable
}

// UpdateTokens replaces the access token (and the refresh token when
// refresh is non-empty) in whichever tier currently holds the bundle.
// It reports false when no bundle is stored, e.g. a logout raced the refresh.
func (s *Store) UpdateTokens(ctx context.Context, access, refresh string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range []Tier{Durable, Session} {
		store, _ := s.tiers(t)
		if _, ok := s.read(ctx, store, KeyAccessToken); !ok {
			continue
		}
		err := store.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
			if err := repo.Set(ctx, KeyAccessToken, []byte(access)); err != nil {
				return err
			}
			if refresh == "" {
				return nil
			}
			return repo.Set(ctx, KeyRefreshToken, []byte(refresh))
		})
		if err != nil {
			s.log.Warn(ctx, "token update failed", "tier", t.String(), "error", err)
			return false
		}
		return true
	}
	return false
}

// Clear removes every credential key from both tiers. Safe to call repeatedly.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

func (s *Store) clearLocked(ctx context.Context) {
	s.wipe(ctx, s.durable, Durable)
	s.wipe(ctx, s.session, Session)
}

func (s *Store) wipe(ctx context.Context, store metadata.Store, t Tier) {
	err := store.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		for _, k := range allKeys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn(ctx, "credential wipe failed", "tier", t.String(), "error", err)
	}
}

func (s *Store) read(ctx context.Context, store metadata.Store, key string) ([]byte, bool) {
	v, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			s.log.Warn(ctx, "credential read failed", "key", key, "error", err)
		}
		return nil, false
	}
	if len(v) == 0 {
		return nil, false
	}
	return v, true
}

// lookup reads key from the durable tier first, then the session tier.
func (s *Store) lookup(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := s.read(ctx, s.durable, key); ok {
		return v, true
	}
	return s.read(ctx, s.session, key)
}

// LoadAccessToken returns the stored access token, durable tier first.
func (s *Store) LoadAccessToken(ctx context.Context) (string, bool) {
	v, ok := s.lookup(ctx, KeyAccessToken)
	return string(v), ok
}

// LoadRefreshToken returns the stored refresh token, durable tier first.
func (s *Store) LoadRefreshToken(ctx context.Context) (string, bool) {
	v, ok := s.lookup(ctx, KeyRefreshToken)
	return string(v), ok
}

// LoadUserProfile returns the stored profile JSON, or {} when nothing usable
// is stored.
func (s *Store) LoadUserProfile(ctx context.Context) json.RawMessage {
	v, ok := s.lookup(ctx, KeyUserInfo)
	if !ok || !json.Valid(v) {
		return emptyProfile
	}
	return json.RawMessage(v)
}

// RememberMe reports whether the current bundle lives in the durable tier.
func (s *Store) RememberMe(ctx context.Context) bool {
	v, ok := s.read(ctx, s.durable, KeyRememberMe)
	return ok && string(v) == "true"
}

// IsAuthenticated reports whether either tier holds an access token. It does
// not check expiry.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.LoadAccessToken(ctx)
	return ok
}

// AccessTokenExpiry reads the exp claim of the stored access token without
// verifying its signature. ok is false when there is no token, it is not a
// JWT, or it carries no exp.
func (s *Store) AccessTokenExpiry(ctx context.Context) (exp time.Time, ok bool) {
	token, found := s.LoadAccessToken(ctx)
	if !found {
		return time.Time{}, false
	}
	return TokenExpiry(token)
}

// TokenExpiry extracts the exp claim from an unverified JWT.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
