package services

import (
	"context"

	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// DefaultActivityLimit matches the dashboard's "recent activity" panel.
const DefaultActivityLimit = 10

// Snapshot is one dashboard load. Each part succeeds or fails on its own.
type Snapshot struct {
	Overview   gateway.Result[models.Overview]
	Activities gateway.Result[[]models.Activity]
	LowStock   gateway.Result[[]models.LowStockItem]
}

// Errors lists the parts that failed.
func (s Snapshot) Errors() []error {
	var errs []error
	for _, err := range []error{s.Overview.Err(), s.Activities.Err(), s.LowStock.Err()} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

type DashboardService interface {
	Snapshot(ctx context.Context, activityLimit int) Snapshot
}

type dashboardService struct {
	gw *gateway.Client
}

func NewDashboardService(gw *gateway.Client) DashboardService {
	return &dashboardService{gw: gw}
}

// Snapshot fetches overview, activities and low-stock items concurrently.
func (d *dashboardService) Snapshot(ctx context.Context, activityLimit int) Snapshot {
	if activityLimit <= 0 {
		activityLimit = DefaultActivityLimit
	}

	var (
		s Snapshot
		g errgroup.Group
	)
	g.Go(func() error {
		s.Overview = d.gw.Dashboard.Overview(ctx)
		return nil
	})
	g.Go(func() error {
		s.Activities = d.gw.Dashboard.Activities(ctx, activityLimit)
		return nil
	})
	g.Go(func() error {
		s.LowStock = d.gw.Dashboard.LowStock(ctx)
		return nil
	})
	_ = g.Wait()
	return s
}
