package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/client/services"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
	"github.com/dmitrijs2005/stockkeeper/internal/filex"
)

func (a *App) Dashboard(ctx context.Context, args []string) error {
	limit := services.DefaultActivityLimit
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			limit = n
		}
	}

	s := a.dashboard.Snapshot(ctx, limit)

	if s.Overview.Success {
		o := s.Overview.Data.Overview
		a.println(titleStyle.Render("概览"))
		w := a.table("物品", "库存", "总价值", "低库存", "分类", "供应商")
		row(w, o.TotalItems, o.TotalStock, o.TotalValue, o.LowStockItems, o.TotalCategories, o.TotalSuppliers)
		_ = w.Flush()
	}

	if s.Activities.Success {
		a.println(titleStyle.Render("最近活动"))
		if len(s.Activities.Data) == 0 {
			a.println(mutedStyle.Render("(none)"))
		} else {
			w := a.table("时间", "类型", "物品", "数量", "操作人")
			for _, act := range s.Activities.Data {
				row(w, act.CreatedAt, opLabel(act.Type, act.TypeDisplay), act.ItemName+" "+act.ItemCode, act.Quantity, act.OperatorName)
			}
			_ = w.Flush()
		}
	}

	if s.LowStock.Success {
		a.println(titleStyle.Render("低库存预警"))
		w := a.table("编码", "名称", "仓库", "库存", "最低")
		for _, it := range s.LowStock.Data {
			row(w, it.Code, it.Name, it.Warehouse, it.Stock, it.MinStock)
		}
		_ = w.Flush()
	}

	// the parts fail independently; report each one
	for _, err := range s.Errors() {
		a.printErr(err)
	}
	return nil
}

// Items lists items, filtered by the joined arguments when given.
func (a *App) Items(ctx context.Context, args []string) error {
	r := a.gw.Items.List(ctx, gateway.ListQuery{Search: strings.Join(args, " ")})
	if !r.Success {
		return r.Err()
	}
	a.printItems(r.Data.Results)
	if r.Data.Paged {
		a.println(mutedStyle.Render(fmt.Sprintf("共 %d 条, %d 页", r.Data.Count, r.Data.Pages(models.DefaultPageSize))))
	}
	return nil
}

func (a *App) printItems(items []models.Item) {
	w := a.table("ID", "编码", "名称", "库存", "状态", "仓库")
	for _, it := range items {
		status := it.Status
		if it.Low() {
			status = warnStyle.Render(status)
		}
		row(w, it.ID, it.Code, it.Name, it.Stock, status, it.WarehouseLabel())
	}
	_ = w.Flush()
}

func (a *App) Item(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: item <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an id", args[0])
	}

	r := a.gw.Items.Get(ctx, id)
	if !r.Success {
		return r.Err()
	}
	a.printItem(r.Data)
	return nil
}

func (a *App) printItem(it models.Item) {
	w := a.table("字段", "值")
	row(w, "ID", it.ID)
	row(w, "名称", it.Name)
	row(w, "编码", it.Code)
	row(w, "条码", it.Barcode)
	row(w, "分类", firstNonEmpty(it.CategoryName, it.Category.Name))
	row(w, "仓库", it.WarehouseLabel())
	row(w, "供应商", firstNonEmpty(it.SupplierName, it.Supplier.Name))
	row(w, "单价", it.Price)
	row(w, "库存", fmt.Sprintf("%d (最低 %d)", it.Stock, it.MinStock))
	row(w, "总价值", it.TotalValue)
	_ = w.Flush()
}

// Image uploads a picture for an item: image <id> <path>.
func (a *App) Image(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: image <id> <path>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an id", args[0])
	}
	up, err := filex.ReadUpload(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	r := a.gw.Items.UpdateWithImage(ctx, id, nil, transport.FilePart{
		FileName:    up.Name,
		ContentType: up.ContentType,
		Data:        up.Data,
	})
	if !r.Success {
		return r.Err()
	}
	a.println(okStyle.Render(fmt.Sprintf("图片已更新: %s → %s", r.Data.Name, r.Data.Image)))
	return nil
}

func (a *App) Categories(ctx context.Context, _ []string) error {
	r := a.gw.Categories.List(ctx)
	if !r.Success {
		return r.Err()
	}
	w := a.table("ID", "编码", "名称", "物品数")
	for _, c := range r.Data.Results {
		row(w, c.ID, c.Code, c.Name, c.ItemCount)
	}
	return w.Flush()
}

func (a *App) Warehouses(ctx context.Context, _ []string) error {
	r := a.gw.Warehouses.List(ctx)
	if !r.Success {
		return r.Err()
	}
	w := a.table("ID", "编码", "名称", "容量", "剩余")
	for _, wh := range r.Data.Results {
		free := "∞"
		if n := wh.Available(); n >= 0 {
			free = strconv.Itoa(n)
		}
		row(w, wh.ID, wh.Code, wh.Name, wh.Capacity, free)
	}
	return w.Flush()
}

func (a *App) Suppliers(ctx context.Context, _ []string) error {
	r := a.gw.Suppliers.List(ctx)
	if !r.Success {
		return r.Err()
	}
	w := a.table("ID", "编码", "名称", "联系人", "状态")
	for _, s := range r.Data.Results {
		row(w, s.ID, s.Code, s.Name, s.Contact, s.Status)
	}
	return w.Flush()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return "-"
}
