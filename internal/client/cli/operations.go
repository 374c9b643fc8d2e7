package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/services"
)

var opLabels = map[string]string{
	models.OpInbound:  "入库",
	models.OpOutbound: "出库",
	models.OpTransfer: "调拨",
	models.OpAdjust:   "调整",
	models.OpCheck:    "盘点",
}

func opLabel(kind, display string) string {
	if display != "" {
		return display
	}
	if l, ok := opLabels[kind]; ok {
		return l
	}
	return kind
}

func (a *App) Operations(ctx context.Context, args []string) error {
	q := gateway.ListQuery{}
	if len(args) > 0 {
		if p, err := strconv.Atoi(args[0]); err == nil {
			q.Page = p
		}
	}

	r := a.gw.Operations.List(ctx, q)
	if !r.Success {
		return r.Err()
	}
	w := a.table("ID", "时间", "类型", "物品", "数量", "库存变化")
	for _, op := range r.Data.Results {
		row(w, op.ID, op.CreatedAt.Local().Format("2006-01-02 15:04"), opLabel(op.Type, op.TypeDisplay),
			op.ItemName, op.Quantity, fmt.Sprintf("%d → %d", op.BeforeStock, op.AfterStock))
	}
	return w.Flush()
}

func (a *App) Inbound(ctx context.Context, _ []string) error {
	var req models.InboundRequest
	var err error

	if req.Item, err = GetInt(a.reader, "Item id", a.out, 0); err != nil {
		return err
	}
	if req.Quantity, err = a.quantity(); err != nil {
		return err
	}
	if req.Warehouse, err = GetInt(a.reader, "Warehouse id", a.out, 0); err != nil {
		return err
	}
	if req.Supplier, err = GetInt(a.reader, "Supplier id", a.out, 0); err != nil {
		return err
	}
	if req.Notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	r := a.gw.Operations.Inbound(ctx, req)
	if !r.Success {
		return r.Err()
	}
	a.printOperation(r.Data)
	return nil
}

func (a *App) Outbound(ctx context.Context, _ []string) error {
	var req models.OutboundRequest
	var err error

	if req.Item, err = GetInt(a.reader, "Item id", a.out, 0); err != nil {
		return err
	}
	if req.Quantity, err = a.quantity(); err != nil {
		return err
	}
	if req.Recipient, err = getSimpleText(a.reader, "Recipient", a.out); err != nil {
		return err
	}
	if req.Department, err = getSimpleText(a.reader, "Department (optional)", a.out); err != nil {
		return err
	}
	if req.Notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	r := a.gw.Operations.Outbound(ctx, req)
	if !r.Success {
		return r.Err()
	}
	a.printOperation(r.Data)
	return nil
}

func (a *App) Transfer(ctx context.Context, _ []string) error {
	var req models.TransferRequest
	var err error

	if req.Item, err = GetInt(a.reader, "Item id", a.out, 0); err != nil {
		return err
	}
	if req.Quantity, err = a.quantity(); err != nil {
		return err
	}
	from, err := GetInt(a.reader, "From warehouse id (empty: item's own)", a.out, 0)
	if err != nil {
		return err
	}
	if from != 0 {
		req.FromWarehouse = &from
	}
	if req.ToWarehouse, err = GetInt(a.reader, "To warehouse id", a.out, 0); err != nil {
		return err
	}
	if req.Notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	r := a.gw.Operations.Transfer(ctx, req)
	if !r.Success {
		return r.Err()
	}
	a.printOperation(r.Data)
	return nil
}

// Scan resolves a code and offers a quick inbound. An empty quantity
// just shows the item.
func (a *App) Scan(ctx context.Context, args []string) error {
	code := strings.Join(args, " ")
	if code == "" {
		var err error
		if code, err = getSimpleText(a.reader, "Scan or type a code", a.out); err != nil {
			return err
		}
	}

	it, err := a.scan.Lookup(ctx, code)
	if err != nil {
		return err
	}
	a.printItem(it)

	qty, err := GetInt(a.reader, "Inbound quantity (empty to skip)", a.out, 0)
	if err != nil || qty == 0 {
		return err
	}
	supplier, err := GetInt(a.reader, "Supplier id", a.out, it.Supplier.ID)
	if err != nil {
		return err
	}

	_, op, err := a.scan.QuickInbound(ctx, it.Code, services.QuickInbound{
		Quantity: int(qty),
		Supplier: supplier,
		Notes:    "扫码入库",
	})
	if err != nil {
		return err
	}
	a.printOperation(op)
	return nil
}

func (a *App) quantity() (int, error) {
	n, err := GetInt(a.reader, "Quantity", a.out, 0)
	return int(n), err
}

func (a *App) printOperation(op models.Operation) {
	a.println(okStyle.Render(fmt.Sprintf("%s成功: %s ×%d, 库存 %d → %d",
		opLabel(op.Type, op.TypeDisplay), op.ItemName, op.Quantity, op.BeforeStock, op.AfterStock)))
}
