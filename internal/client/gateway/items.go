package gateway

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

const itemsPath = "/inventory/items/"

type ItemsAPI struct{ c *Client }

// List is served from the response cache when a fresh copy exists.
func (i *ItemsAPI) List(ctx context.Context, q ListQuery) Result[models.List[models.Item]] {
	return cachedList[models.Item](ctx, i.c, "items", transport.Get(itemsPath).WithQuery(q.Values()))
}

func (i *ItemsAPI) Get(ctx context.Context, id int64) Result[models.Item] {
	return fetch[models.Item](ctx, i.c, transport.Get(idPath(itemsPath, id)))
}

func (i *ItemsAPI) Create(ctx context.Context, in models.ItemInput) Result[models.Item] {
	return mutate[models.Item](ctx, i.c, transport.Post(itemsPath, in))
}

func (i *ItemsAPI) Update(ctx context.Context, id int64, in models.ItemInput) Result[models.Item] {
	return mutate[models.Item](ctx, i.c, transport.Put(idPath(itemsPath, id), in))
}

// Patch sends only the given fields.
func (i *ItemsAPI) Patch(ctx context.Context, id int64, fields map[string]any) Result[models.Item] {
	return mutate[models.Item](ctx, i.c, transport.Patch(idPath(itemsPath, id), fields))
}

// UpdateWithImage sends fields and the image as multipart/form-data.
func (i *ItemsAPI) UpdateWithImage(ctx context.Context, id int64, fields map[string]string, image transport.FilePart) Result[models.Item] {
	if image.Field == "" {
		image.Field = "image"
	}
	d := transport.Patch(idPath(itemsPath, id), nil).WithUpload(transport.Upload{
		Fields: fields,
		Files:  []transport.FilePart{image},
	})
	return mutate[models.Item](ctx, i.c, d)
}

func (i *ItemsAPI) Delete(ctx context.Context, id int64) Result[json.RawMessage] {
	return mutate[json.RawMessage](ctx, i.c, transport.Delete(idPath(itemsPath, id)))
}

func (i *ItemsAPI) LowStock(ctx context.Context) Result[models.List[models.Item]] {
	return fetch[models.List[models.Item]](ctx, i.c, transport.Get(itemsPath+"low_stock/"))
}

func (i *ItemsAPI) Statistics(ctx context.Context) Result[models.ItemStatistics] {
	return fetch[models.ItemStatistics](ctx, i.c, transport.Get(itemsPath+"statistics/"))
}

// FindByCode filters on the exact item code. Not cached: scans must see
// current stock.
func (i *ItemsAPI) FindByCode(ctx context.Context, code string) Result[models.List[models.Item]] {
	return i.find(ctx, "code", code)
}

func (i *ItemsAPI) FindByBarcode(ctx context.Context, barcode string) Result[models.List[models.Item]] {
	return i.find(ctx, "barcode", barcode)
}

// Search matches name, code and barcode.
func (i *ItemsAPI) Search(ctx context.Context, term string) Result[models.List[models.Item]] {
	return i.find(ctx, "search", term)
}

func (i *ItemsAPI) find(ctx context.Context, key, value string) Result[models.List[models.Item]] {
	d := transport.Get(itemsPath).WithQuery(url.Values{key: {value}})
	return fetch[models.List[models.Item]](ctx, i.c, d)
}
