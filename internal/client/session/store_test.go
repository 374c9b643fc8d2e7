package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newSQLiteTier(t *testing.T) *metadata.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return metadata.NewSQLiteStore(db)
}

func newTestStore(t *testing.T) (*Store, metadata.Store, metadata.Store) {
	t.Helper()
	durable := newSQLiteTier(t)
	sess := metadata.NewMemoryStore()
	return NewStore(durable, sess, nil), durable, sess
}

func has(t *testing.T, s metadata.Store, key string) bool {
	t.Helper()
	_, err := s.Get(context.Background(), key)
	if errors.Is(err, metadata.ErrNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestSave_DurableTier_RememberMe(t *testing.T) {
	store, durable, sess := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, Bundle{AccessToken: "abc", RefreshToken: "r1", UserProfile: json.RawMessage(`{"username":"alice"}`)}, Durable)

	tok, ok := store.LoadAccessToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", tok)
	assert.True(t, store.IsAuthenticated(ctx))
	assert.True(t, store.RememberMe(ctx))

	v, err := durable.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
	assert.False(t, has(t, sess, KeyAccessToken), "session tier must stay empty")
}

func TestSave_TierExclusivity(t *testing.T) {
	store, durable, sess := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, Bundle{AccessToken: "d", RefreshToken: "rd"}, Durable)
	store.Save(ctx, Bundle{AccessToken: "s", RefreshToken: "rs"}, Session)

	tok, ok := store.LoadAccessToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "s", tok)
	for _, k := range allKeys {
		assert.False(t, has(t, durable, k), "durable tier still holds %s", k)
	}
	assert.False(t, store.RememberMe(ctx))

	store.Save(ctx, Bundle{AccessToken: "d2", RefreshToken: "rd2"}, Durable)

	tok, _ = store.LoadAccessToken(ctx)
	assert.Equal(t, "d2", tok)
	assert.False(t, has(t, sess, KeyAccessToken))
	assert.False(t, has(t, sess, KeyRefreshToken))
}

func TestSave_ReplacesWholeBundle(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, Bundle{AccessToken: "a1", RefreshToken: "r1", UserProfile: json.RawMessage(`{"id":1}`)}, Session)
	store.Save(ctx, Bundle{AccessToken: "a2", RefreshToken: "r2"}, Session)

	rt, _ := store.LoadRefreshToken(ctx)
	assert.Equal(t, "r2", rt)
	assert.JSONEq(t, `{}`, string(store.LoadUserProfile(ctx)), "profile of the old bundle must not leak")
}

func TestLoad_DurableTakesPrecedence(t *testing.T) {
	store, durable, sess := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, sess.Set(ctx, KeyAccessToken, []byte("from-session")))
	require.NoError(t, durable.Set(ctx, KeyAccessToken, []byte("from-durable")))

	tok, ok := store.LoadAccessToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "from-durable", tok)
}

func TestLoad_EmptyStore(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	_, ok := store.LoadAccessToken(ctx)
	assert.False(t, ok)
	_, ok = store.LoadRefreshToken(ctx)
	assert.False(t, ok)
	assert.JSONEq(t, `{}`, string(store.LoadUserProfile(ctx)))
	assert.False(t, store.IsAuthenticated(ctx))
}

func TestLoadUserProfile_InvalidJSONReadsAsEmpty(t *testing.T) {
	store, _, sess := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, sess.Set(ctx, KeyUserInfo, []byte("{broken")))

	assert.JSONEq(t, `{}`, string(store.LoadUserProfile(ctx)))
}

func TestClear_IsIdempotent(t *testing.T) {
	store, durable, sess := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, Bundle{AccessToken: "a", RefreshToken: "r"}, Durable)
	store.Clear(ctx)
	store.Clear(ctx)

	assert.False(t, store.IsAuthenticated(ctx))
	for _, k := range allKeys {
		assert.False(t, has(t, durable, k))
		assert.False(t, has(t, sess, k))
	}
}

func TestUpdateTokens(t *testing.T) {
	store, _, sess := newTestStore(t)
	ctx := context.Background()

	assert.False(t, store.UpdateTokens(ctx, "x", ""), "nothing stored, nothing to update")
	assert.False(t, has(t, sess, KeyAccessToken), "update must not resurrect a cleared bundle")

	store.Save(ctx, Bundle{AccessToken: "old", RefreshToken: "r"}, Session)
	require.True(t, store.UpdateTokens(ctx, "new", ""))

	tok, _ := store.LoadAccessToken(ctx)
	rt, _ := store.LoadRefreshToken(ctx)
	assert.Equal(t, "new", tok)
	assert.Equal(t, "r", rt)

	require.True(t, store.UpdateTokens(ctx, "newer", "r2"))
	rt, _ = store.LoadRefreshToken(ctx)
	assert.Equal(t, "r2", rt)
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = errors.New("storage disabled")

func (brokenStore) Get(context.Context, string) ([]byte, error)     { return nil, errBroken }
func (brokenStore) Set(context.Context, string, []byte) error       { return errBroken }
func (brokenStore) Delete(context.Context, string) error            { return errBroken }
func (brokenStore) List(context.Context) (map[string][]byte, error) { return nil, errBroken }
func (brokenStore) Clear(context.Context) error                     { return errBroken }
func (brokenStore) Update(context.Context, func(context.Context, metadata.Repository) error) error {
	return errBroken
}

func TestStore_StorageFailuresAreSwallowed(t *testing.T) {
	store := NewStore(brokenStore{}, metadata.NewMemoryStore(), nil)
	ctx := context.Background()

	require.NotPanics(t, func() {
		store.Save(ctx, Bundle{AccessToken: "a"}, Durable)
		store.Clear(ctx)
	})
	assert.False(t, store.IsAuthenticated(ctx))

	store.Save(ctx, Bundle{AccessToken: "s"}, Session)
	tok, ok := store.LoadAccessToken(ctx)
	require.True(t, ok, "session tier still works when durable storage is disabled")
	assert.Equal(t, "s", tok)
}

func TestAccessTokenExpiry(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	_, ok := store.AccessTokenExpiry(ctx)
	assert.False(t, ok)

	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	store.Save(ctx, Bundle{AccessToken: signed, RefreshToken: "r"}, Session)
	got, ok := store.AccessTokenExpiry(ctx)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}
