package models

type Warehouse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Location     string  `json:"location,omitempty"`
	Capacity     int     `json:"capacity"`
	CurrentUsage int     `json:"current_usage"`
	UsageRate    Decimal `json:"usage_rate"`
	IsActive     bool    `json:"is_active"`
	Manager      string  `json:"manager,omitempty"`
	Phone        string  `json:"phone,omitempty"`
}

// Available is the remaining capacity. Zero capacity means unlimited and
// reports -1.
func (w Warehouse) Available() int {
	if w.Capacity <= 0 {
		return -1
	}
	return max(0, w.Capacity-w.CurrentUsage)
}

type WarehouseInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Code     string `json:"code,omitempty" validate:"max=50"`
	Location string `json:"location,omitempty" validate:"max=500"`
	Capacity int    `json:"capacity" validate:"gte=0"`
	Manager  string `json:"manager,omitempty" validate:"max=100"`
	Phone    string `json:"phone,omitempty" validate:"max=20"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type Supplier struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	Contact       string `json:"contact,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Status        string `json:"status"`
	StatusDisplay string `json:"status_display,omitempty"`
	ItemCount     int    `json:"item_count"`
}

type SupplierInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Code    string `json:"code,omitempty" validate:"max=50"`
	Contact string `json:"contact,omitempty" validate:"max=100"`
	Phone   string `json:"phone,omitempty" validate:"max=20"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Notes   string `json:"notes,omitempty"`
}
