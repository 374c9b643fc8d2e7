package gateway

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

const (
	warehousesPath = "/warehouses/"
	suppliersPath  = "/suppliers/"
)

type WarehousesAPI struct{ c *Client }

func (w *WarehousesAPI) List(ctx context.Context) Result[models.List[models.Warehouse]] {
	return cachedList[models.Warehouse](ctx, w.c, "warehouses", transport.Get(warehousesPath))
}

func (w *WarehousesAPI) Get(ctx context.Context, id int64) Result[models.Warehouse] {
	return fetch[models.Warehouse](ctx, w.c, transport.Get(idPath(warehousesPath, id)))
}

func (w *WarehousesAPI) Create(ctx context.Context, in models.WarehouseInput) Result[models.Warehouse] {
	return mutate[models.Warehouse](ctx, w.c, transport.Post(warehousesPath, in))
}

func (w *WarehousesAPI) Update(ctx context.Context, id int64, in models.WarehouseInput) Result[models.Warehouse] {
	return mutate[models.Warehouse](ctx, w.c, transport.Put(idPath(warehousesPath, id), in))
}

func (w *WarehousesAPI) Delete(ctx context.Context, id int64) Result[json.RawMessage] {
	return mutate[json.RawMessage](ctx, w.c, transport.Delete(idPath(warehousesPath, id)))
}

type SuppliersAPI struct{ c *Client }

func (s *SuppliersAPI) List(ctx context.Context) Result[models.List[models.Supplier]] {
	return cachedList[models.Supplier](ctx, s.c, "suppliers", transport.Get(suppliersPath))
}

func (s *SuppliersAPI) Get(ctx context.Context, id int64) Result[models.Supplier] {
	return fetch[models.Supplier](ctx, s.c, transport.Get(idPath(suppliersPath, id)))
}

func (s *SuppliersAPI) Create(ctx context.Context, in models.SupplierInput) Result[models.Supplier] {
	return mutate[models.Supplier](ctx, s.c, transport.Post(suppliersPath, in))
}

func (s *SuppliersAPI) Update(ctx context.Context, id int64, in models.SupplierInput) Result[models.Supplier] {
	return mutate[models.Supplier](ctx, s.c, transport.Put(idPath(suppliersPath, id), in))
}

func (s *SuppliersAPI) Delete(ctx context.Context, id int64) Result[json.RawMessage] {
	return mutate[json.RawMessage](ctx, s.c, transport.Delete(idPath(suppliersPath, id)))
}
