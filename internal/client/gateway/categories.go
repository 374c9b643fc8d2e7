package gateway

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

const categoriesPath = "/inventory/categories/"

type CategoriesAPI struct{ c *Client }

func (a *CategoriesAPI) List(ctx context.Context) Result[models.List[models.Category]] {
	return cachedList[models.Category](ctx, a.c, "categories", transport.Get(categoriesPath))
}

func (a *CategoriesAPI) Get(ctx context.Context, id int64) Result[models.Category] {
	return fetch[models.Category](ctx, a.c, transport.Get(idPath(categoriesPath, id)))
}

func (a *CategoriesAPI) Create(ctx context.Context, in models.CategoryInput) Result[models.Category] {
	return mutate[models.Category](ctx, a.c, transport.Post(categoriesPath, in))
}

func (a *CategoriesAPI) Update(ctx context.Context, id int64, in models.CategoryInput) Result[models.Category] {
	return mutate[models.Category](ctx, a.c, transport.Put(idPath(categoriesPath, id), in))
}

func (a *CategoriesAPI) Delete(ctx context.Context, id int64) Result[json.RawMessage] {
	return mutate[json.RawMessage](ctx, a.c, transport.Delete(idPath(categoriesPath, id)))
}
