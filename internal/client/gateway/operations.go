package gateway

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

const operationsPath = "/operations/"

type OperationsAPI struct{ c *Client }

// List is never cached: the log changes with every stock movement.
func (o *OperationsAPI) List(ctx context.Context, q ListQuery) Result[models.List[models.Operation]] {
	return fetch[models.List[models.Operation]](ctx, o.c, transport.Get(operationsPath).WithQuery(q.Values()))
}

func (o *OperationsAPI) Get(ctx context.Context, id int64) Result[models.Operation] {
	return fetch[models.Operation](ctx, o.c, transport.Get(idPath(operationsPath, id)))
}

func (o *OperationsAPI) Inbound(ctx context.Context, req models.InboundRequest) Result[models.Operation] {
	return mutate[models.Operation](ctx, o.c, transport.Post(operationsPath+"inbound/", req))
}

func (o *OperationsAPI) Outbound(ctx context.Context, req models.OutboundRequest) Result[models.Operation] {
	return mutate[models.Operation](ctx, o.c, transport.Post(operationsPath+"outbound/", req))
}

func (o *OperationsAPI) Transfer(ctx context.Context, req models.TransferRequest) Result[models.Operation] {
	return mutate[models.Operation](ctx, o.c, transport.Post(operationsPath+"transfer/", req))
}

// DeleteWithPassword soft-deletes one record after re-checking the user's
// password on the backend.
func (o *OperationsAPI) DeleteWithPassword(ctx context.Context, id int64, password string) Result[json.RawMessage] {
	req := models.DeleteWithPasswordRequest{Password: password}
	return mutate[json.RawMessage](ctx, o.c, transport.Post(idPath(operationsPath, id)+"delete_with_password/", req))
}

func (o *OperationsAPI) BatchDeleteWithPassword(ctx context.Context, ids []int64, password string) Result[json.RawMessage] {
	req := models.BatchDeleteRequest{Password: password, IDs: ids}
	return mutate[json.RawMessage](ctx, o.c, transport.Post(operationsPath+"batch_delete_with_password/", req))
}

func (o *OperationsAPI) Statistics(ctx context.Context, days int) Result[models.OperationStatistics] {
	return fetch[models.OperationStatistics](ctx, o.c, transport.Get(operationsPath+"statistics/").WithQuery(intQuery("days", days)))
}

func (o *OperationsAPI) Recent(ctx context.Context, limit int) Result[[]models.Operation] {
	return fetch[[]models.Operation](ctx, o.c, transport.Get(operationsPath+"recent/").WithQuery(intQuery("limit", limit)))
}
