package models

// Item status values.
const (
	StatusNormal     = "normal"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Parent      Ref    `json:"parent"`
	IsActive    bool   `json:"is_active"`
	ItemCount   int    `json:"item_count"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description,omitempty"`
	Parent      *int64 `json:"parent,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type Item struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Code              string  `json:"code"`
	Barcode           string  `json:"barcode,omitempty"`
	Category          Ref     `json:"category"`
	CategoryName      string  `json:"category_name,omitempty"`
	Supplier          Ref     `json:"supplier"`
	SupplierName      string  `json:"supplier_name,omitempty"`
	Warehouse         Ref     `json:"warehouse"`
	WarehouseName     string  `json:"warehouse_name,omitempty"`
	Price             Decimal `json:"price"`
	Stock             int     `json:"stock"`
	MinStock          int     `json:"min_stock"`
	WarehouseLocation string  `json:"warehouse_location,omitempty"`
	Description       string  `json:"description,omitempty"`
	Image             string  `json:"image,omitempty"`
	Status            string  `json:"status"`
	StatusDisplay     string  `json:"status_display,omitempty"`
	TotalValue        Decimal `json:"total_value"`
}

// Low reports whether the item is at or below its minimum stock.
func (i Item) Low() bool {
	return i.Status == StatusLowStock || i.Status == StatusOutOfStock || i.Stock <= i.MinStock
}

// WarehouseLabel prefers the denormalised name, then the nested one.
func (i Item) WarehouseLabel() string {
	if i.WarehouseName != "" {
		return i.WarehouseName
	}
	return i.Warehouse.Name
}

// ItemInput is the body for create and full update. Code and barcode may be
// left empty; the backend generates them.
type ItemInput struct {
	Name              string  `json:"name" validate:"required,max=200"`
	Code              string  `json:"code,omitempty" validate:"max=50"`
	Barcode           string  `json:"barcode,omitempty" validate:"max=100"`
	Category          int64   `json:"category" validate:"required,gt=0"`
	Supplier          *int64  `json:"supplier,omitempty"`
	Warehouse         *int64  `json:"warehouse,omitempty"`
	Price             Decimal `json:"price" validate:"required"`
	Stock             int     `json:"stock" validate:"gte=0"`
	MinStock          int     `json:"min_stock" validate:"gte=0"`
	WarehouseLocation string  `json:"warehouse_location,omitempty"`
	Description       string  `json:"description,omitempty"`
}

type CategoryCount struct {
	CategoryName string `json:"category__name"`
	Count        int    `json:"count"`
}

type ItemStatistics struct {
	TotalItems           int             `json:"total_items"`
	TotalStock           int             `json:"total_stock"`
	TotalValue           Decimal         `json:"total_value"`
	LowStockCount        int             `json:"low_stock_count"`
	AvgPrice             Decimal         `json:"avg_price"`
	CategoryDistribution []CategoryCount `json:"category_distribution"`
}
