package models

type OverviewTotals struct {
	TotalItems      int     `json:"total_items"`
	TotalStock      int     `json:"total_stock"`
	TotalValue      Decimal `json:"total_value"`
	LowStockItems   int     `json:"low_stock_items"`
	TotalCategories int     `json:"total_categories"`
	TotalSuppliers  int     `json:"total_suppliers"`
	TurnoverRate    Decimal `json:"turnover_rate"`
}

type OverviewChanges struct {
	ItemsChange    Decimal `json:"items_change"`
	LowStockChange Decimal `json:"low_stock_change"`
	ValueChange    Decimal `json:"value_change"`
	TurnoverChange Decimal `json:"turnover_change"`
}

// PeriodSummary covers today, this week or this month.
type PeriodSummary struct {
	Inbound       int `json:"inbound"`
	Outbound      int `json:"outbound"`
	Operations    int `json:"operations"`
	InboundCount  int `json:"inbound_count"`
	OutboundCount int `json:"outbound_count"`
}

type Overview struct {
	Overview OverviewTotals  `json:"overview"`
	Changes  OverviewChanges `json:"changes"`
	Today    PeriodSummary   `json:"today"`
	Week     PeriodSummary   `json:"week"`
	Month    PeriodSummary   `json:"month"`
}

type Activity struct {
	ID           int64  `json:"id"`
	Type         string `json:"operation_type"`
	TypeDisplay  string `json:"type_display"`
	ItemName     string `json:"item_name"`
	ItemCode     string `json:"item_code"`
	ItemImage    string `json:"item_image,omitempty"`
	Quantity     int    `json:"quantity"`
	OperatorName string `json:"operator_name"`
	CreatedAt    string `json:"created_at"`
}

// LowStockItem is the dashboard's flattened view of an item. Category and
// warehouse are names here, not ids.
type LowStockItem struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category"`
	Warehouse     string `json:"warehouse"`
	Stock         int    `json:"stock"`
	MinStock      int    `json:"min_stock"`
	Status        string `json:"status"`
	StatusDisplay string `json:"status_display"`
}

type TrendPoint struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type WarehouseUsage struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Capacity     int     `json:"capacity"`
	CurrentUsage int     `json:"current_usage"`
	UsageRate    Decimal `json:"usage_rate"`
}

type Charts struct {
	Trend                []TrendPoint     `json:"trend"`
	CategoryDistribution []map[string]any `json:"category_distribution"`
	WarehouseUsage       []WarehouseUsage `json:"warehouse_usage"`
	SupplierRanking      []map[string]any `json:"supplier_ranking"`
}

// Series is a labelled chart: trend by period, or distribution by category.
type Series struct {
	Labels   []string  `json:"labels"`
	Inbound  []int     `json:"inbound,omitempty"`
	Outbound []int     `json:"outbound,omitempty"`
	Values   []float64 `json:"values,omitempty"`
}

type SystemInfo struct {
	System struct {
		Name          string `json:"name"`
		Version       string `json:"version"`
		Backend       string `json:"backend"`
		Database      string `json:"database"`
		PythonVersion string `json:"python_version"`
	} `json:"system"`
	Statistics struct {
		ItemsCount      int `json:"items_count"`
		WarehousesCount int `json:"warehouses_count"`
		SuppliersCount  int `json:"suppliers_count"`
		OperationsCount int `json:"operations_count"`
		CategoriesCount int `json:"categories_count"`
		TotalStock      int `json:"total_stock"`
	} `json:"statistics"`
	ServerTime string `json:"server_time"`
}
