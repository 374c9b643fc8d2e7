package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	e := newEnv(t)
	e.signIn(t)
	ctx := context.Background()

	s := NewDashboardService(e.gw).Snapshot(ctx, 0)
	require.Empty(t, s.Errors())

	assert.Equal(t, 3, s.Overview.Data.Overview.TotalItems)
	assert.Empty(t, s.Activities.Data)
	require.NotEmpty(t, s.LowStock.Data)
	assert.Equal(t, "ITEM-002", s.LowStock.Data[0].Code)
}

func TestSnapshot_SharesOneRefresh(t *testing.T) {
	e := newEnv(t)
	e.signIn(t)
	e.backend.ExpireAccess()
	e.backend.HoldUnauthorized(3)
	ctx := context.Background()

	s := NewDashboardService(e.gw).Snapshot(ctx, 5)
	require.Empty(t, s.Errors())
	assert.Equal(t, 1, e.backend.RefreshCalls())
}

func TestSnapshot_PartsFailTogetherOnExpiry(t *testing.T) {
	e := newEnv(t)
	e.signIn(t)
	e.backend.ExpireAccess()
	e.backend.FailRefresh(http.StatusUnauthorized)
	ctx := context.Background()

	s := NewDashboardService(e.gw).Snapshot(ctx, 5)
	errs := s.Errors()
	require.Len(t, errs, 3)
	for _, err := range errs {
		assert.ErrorIs(t, err, &transport.Failure{Kind: transport.KindAuthExpired})
	}
	assert.Eventually(t, func() bool { return e.nav.n.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), e.nav.n.Load())
}
