package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
	OrderRejected  = "rejected"
)

// CustomerOrder is placed by a customer through the portal and turned into
// a bill when an admin approves it.
type CustomerOrder struct {
	ID          string
	OrderNumber string
	CustomerID  string
	Status      string

	OrderDate    time.Time
	DeliveryDate time.Time

	DeliveryAddress string
	Phone           string
	Notes           string
	AdminNotes      string

	TotalAmount         decimal.Decimal
	ApprovedTotalAmount decimal.Decimal

	// BillID is set once the order has been billed.
	BillID string

	Items []CustomerOrderItem

	CreatedAt int64
	UpdatedAt int64
}

// CustomerOrderItem is a requested line.
type CustomerOrderItem struct {
	ID                string
	ItemID            string
	ItemName          string
	RequestedQuantity int
	RequestedPrice    decimal.Decimal
	ApprovedQuantity  int
	ApprovedPrice     decimal.Decimal
	Discount          decimal.Decimal
	RequestedTotal    decimal.Decimal
	ApprovedTotal     decimal.Decimal
}

// OrderFilter narrows ListOrders.
type OrderFilter struct {
	CustomerID string
	Status     string
	Limit      int
}

// OrderApproval sets the quantity and price an admin accepted for one line.
type OrderApproval struct {
	ItemID   string
	Quantity int
	Price    *decimal.Decimal
	Discount decimal.Decimal
}
