package metadata

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CRUD(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, err := m.Get(ctx, "x")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "x", []byte("1")))
	v, err := m.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, m.Delete(ctx, "x"))
	_, err = m.Get(ctx, "x")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Clear(ctx))
	all, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'X'

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestMemoryStore_UpdateIsAllOrNothing(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "access_token", []byte("old")))

	err := m.Update(ctx, func(ctx context.Context, repo Repository) error {
		require.NoError(t, repo.Set(ctx, "access_token", []byte("new")))
		require.NoError(t, repo.Set(ctx, "refresh_token", []byte("r")))
		return errors.New("boom")
	})
	require.Error(t, err)

	all, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"access_token": []byte("old")}, all)

	err = m.Update(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Set(ctx, "access_token", []byte("new"))
	})
	require.NoError(t, err)
	v, _ := m.Get(ctx, "access_token")
	assert.Equal(t, []byte("new"), v)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "k", []byte("v"))
			_, _ = m.Get(ctx, "k")
			_, _ = m.List(ctx)
		}()
	}
	wg.Wait()
}
