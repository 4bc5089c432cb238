package api

import "github.com/shopspring/decimal"

type Order struct {
	ID                  string          `json:"id"`
	OrderNumber         string          `json:"order_number"`
	CustomerID          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name,omitempty"`
	Status              string          `json:"status"`
	OrderDate           string          `json:"order_date"`
	DeliveryDate        string          `json:"delivery_date,omitempty"`
	DeliveryAddress     string          `json:"delivery_address,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	AdminNotes          string          `json:"admin_notes,omitempty"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	ApprovedTotalAmount decimal.Decimal `json:"approved_total_amount"`
	BillID              string          `json:"bill_id,omitempty"`
	Items               []*OrderItem    `json:"items,omitempty"`
	CreatedAt           int64           `json:"created_at"`
}

type OrderItem struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	RequestedQuantity int             `json:"requested_quantity"`
	RequestedPrice    decimal.Decimal `json:"requested_price"`
	ApprovedQuantity  int             `json:"approved_quantity"`
	ApprovedPrice     decimal.Decimal `json:"approved_price"`
	Discount          decimal.Decimal `json:"discount"`
	RequestedTotal    decimal.Decimal `json:"requested_total"`
	ApprovedTotal     decimal.Decimal `json:"approved_total"`
}

type OrderLine struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type PlaceOrderRequest struct {
	Items           []OrderLine `json:"items" validate:"required,min=1,dive"`
	DeliveryDate    string      `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	DeliveryAddress string      `json:"delivery_address" validate:"max=300"`
	Notes           string      `json:"notes" validate:"max=500"`
}

type PlaceOrderResponse struct {
	Order *Order `json:"order"`
}

type ListMyOrdersRequest struct {
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty" validate:"gte=0,lte=200"`
}

type ListMyOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type ListOrdersRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Limit      int    `json:"limit,omitempty" validate:"gte=0,lte=500"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

// OrderApproval sets what the admin accepts for one requested item.
type OrderApproval struct {
	ItemID   string           `json:"item_id" validate:"required"`
	Quantity int              `json:"quantity" validate:"gte=0"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Discount decimal.Decimal  `json:"discount" validate:"gte=0"`
}

type ApproveOrderRequest struct {
	ID         string          `json:"id" validate:"required"`
	Approvals  []OrderApproval `json:"approvals" validate:"dive"`
	AdminNotes string          `json:"admin_notes" validate:"max=500"`
}

type ApproveOrderResponse struct {
	Order *Order `json:"order"`
	Bill  *Bill  `json:"bill"`
}

type RejectOrderRequest struct {
	ID         string `json:"id" validate:"required"`
	AdminNotes string `json:"admin_notes" validate:"max=500"`
}

type RejectOrderResponse struct {
	Order *Order `json:"order"`
}

type CancelOrderRequest struct {
	ID     string `json:"id" validate:"required"`
	Reason string `json:"reason" validate:"max=500"`
}

type CancelOrderResponse struct {
	Order *Order `json:"order"`
}
