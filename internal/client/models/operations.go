package models

import "time"

// Operation types.
const (
	OpInbound  = "in"
	OpOutbound = "out"
	OpTransfer = "transfer"
	OpAdjust   = "adjust"
	OpCheck    = "check"
)

type Operation struct {
	ID                    int64     `json:"id"`
	Item                  Ref       `json:"item"`
	ItemName              string    `json:"item_name"`
	ItemCode              string    `json:"item_code"`
	ItemWarehouseName     string    `json:"item_warehouse_name,omitempty"`
	ItemWarehouseLocation string    `json:"item_warehouse_location,omitempty"`
	Type                  string    `json:"operation_type"`
	TypeDisplay           string    `json:"operation_type_display,omitempty"`
	Quantity              int       `json:"quantity"`
	BeforeStock           int       `json:"before_stock"`
	AfterStock            int       `json:"after_stock"`
	Supplier              Ref       `json:"supplier"`
	SupplierName          string    `json:"supplier_name,omitempty"`
	Recipient             string    `json:"recipient,omitempty"`
	Department            string    `json:"department,omitempty"`
	Purpose               string    `json:"purpose,omitempty"`
	FromWarehouse         string    `json:"from_warehouse,omitempty"`
	ToWarehouse           string    `json:"to_warehouse,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	OperatorName          string    `json:"operator_name,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type InboundRequest struct {
	Item      int64  `json:"item" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Warehouse int64  `json:"warehouse" validate:"required,gt=0"`
	Supplier  int64  `json:"supplier" validate:"required,gt=0"`
	Notes     string `json:"notes,omitempty"`
}

type OutboundRequest struct {
	Item       int64  `json:"item" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
	Recipient  string `json:"recipient" validate:"required,max=100"`
	Department string `json:"department,omitempty" validate:"max=100"`
	Purpose    string `json:"purpose,omitempty" validate:"max=200"`
	Notes      string `json:"notes,omitempty"`
}

type TransferRequest struct {
	Item          int64  `json:"item" validate:"required,gt=0"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
	FromWarehouse *int64 `json:"from_warehouse,omitempty"`
	ToWarehouse   int64  `json:"to_warehouse" validate:"required,gt=0"`
	Notes         string `json:"notes,omitempty"`
}

type DeleteWithPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type BatchDeleteRequest struct {
	Password string  `json:"password" validate:"required"`
	IDs      []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type OperationStatistics struct {
	TotalOperations  int `json:"total_operations"`
	InboundCount     int `json:"inbound_count"`
	OutboundCount    int `json:"outbound_count"`
	TransferCount    int `json:"transfer_count"`
	InboundQuantity  int `json:"inbound_quantity"`
	OutboundQuantity int `json:"outbound_quantity"`
}
