package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
)

const (
	MsgItemNotFound = "物品未找到"
	MsgEmptyCode    = "请输入条码"
	MsgBadQuantity  = "数量必须大于0"
)

// QuickInbound is what the operator types after a scan. Zero Warehouse or
// Supplier fall back to the item's own.
type QuickInbound struct {
	Quantity  int
	Warehouse int64
	Supplier  int64
	Notes     string
}

type ScanService interface {
	// Lookup resolves a scanned code: item code first, then barcode, then a
	// free-text search.
	Lookup(ctx context.Context, code string) (models.Item, error)
	QuickInbound(ctx context.Context, code string, in QuickInbound) (models.Item, models.Operation, error)
}

type scanService struct {
	gw *gateway.Client
}

func NewScanService(gw *gateway.Client) ScanService {
	return &scanService{gw: gw}
}

func (s *scanService) Lookup(ctx context.Context, code string) (models.Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.Item{}, transport.InvalidFailure(MsgEmptyCode)
	}

	steps := []func(context.Context, string) gateway.Result[models.List[models.Item]]{
		s.gw.Items.FindByCode,
		s.gw.Items.FindByBarcode,
		s.gw.Items.Search,
	}
	for _, find := range steps {
		r := find(ctx, code)
		if !r.Success {
			// a dead session or network ends the lookup; anything else tries the next step
			if k := r.Error.Kind; k == transport.KindAuthExpired || k == transport.KindNetwork {
				return models.Item{}, r.Error
			}
			continue
		}
		if it, ok := pick(r.Data.Results, code); ok {
			return it, nil
		}
	}
	return models.Item{}, &transport.Failure{Kind: transport.KindHTTP, Status: http.StatusNotFound, Message: MsgItemNotFound}
}

// pick prefers an exact code or barcode match over the first result.
func pick(items []models.Item, code string) (models.Item, bool) {
	if len(items) == 0 {
		return models.Item{}, false
	}
	for _, it := range items {
		if it.Code == code || it.Barcode == code {
			return it, true
		}
	}
	return items[0], true
}

func (s *scanService) QuickInbound(ctx context.Context, code string, in QuickInbound) (models.Item, models.Operation, error) {
	if in.Quantity <= 0 {
		return models.Item{}, models.Operation{}, transport.InvalidFailure(MsgBadQuantity)
	}

	it, err := s.Lookup(ctx, code)
	if err != nil {
		return models.Item{}, models.Operation{}, err
	}

	req := models.InboundRequest{
		Item:      it.ID,
		Quantity:  in.Quantity,
		Warehouse: in.Warehouse,
		Supplier:  in.Supplier,
		Notes:     in.Notes,
	}
	if req.Warehouse == 0 {
		req.Warehouse = it.Warehouse.ID
	}
	if req.Supplier == 0 {
		req.Supplier = it.Supplier.ID
	}

	r := s.gw.Operations.Inbound(ctx, req)
	if !r.Success {
		return it, models.Operation{}, r.Err()
	}
	return it, r.Data, nil
}
