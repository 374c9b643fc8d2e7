package gateway

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

// Trend periods.
const (
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

type DashboardAPI struct{ c *Client }

func (d *DashboardAPI) Overview(ctx context.Context) Result[models.Overview] {
	return fetch[models.Overview](ctx, d.c, transport.Get("/dashboard/overview/"))
}

// Charts covers the last days days; 0 leaves the backend default (7).
func (d *DashboardAPI) Charts(ctx context.Context, days int) Result[models.Charts] {
	return fetch[models.Charts](ctx, d.c, transport.Get("/dashboard/charts/").WithQuery(intQuery("days", days)))
}

func (d *DashboardAPI) Trend(ctx context.Context, period string) Result[models.Series] {
	desc := transport.Get("/dashboard/trend/")
	if period != "" {
		desc = desc.WithQuery(url.Values{"period": {period}})
	}
	return fetch[models.Series](ctx, d.c, desc)
}

func (d *DashboardAPI) Distribution(ctx context.Context) Result[models.Series] {
	return fetch[models.Series](ctx, d.c, transport.Get("/dashboard/distribution/"))
}

func (d *DashboardAPI) Activities(ctx context.Context, limit int) Result[[]models.Activity] {
	return fetch[[]models.Activity](ctx, d.c, transport.Get("/dashboard/activities/").WithQuery(intQuery("limit", limit)))
}

func (d *DashboardAPI) LowStock(ctx context.Context) Result[[]models.LowStockItem] {
	return fetch[[]models.LowStockItem](ctx, d.c, transport.Get("/dashboard/low-stock/"))
}

func (d *DashboardAPI) SystemInfo(ctx context.Context) Result[models.SystemInfo] {
	return fetch[models.SystemInfo](ctx, d.c, transport.Get("/dashboard/system-info/"))
}
