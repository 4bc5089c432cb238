package api

import "github.com/shopspring/decimal"

type Bill struct {
	ID                 string          `json:"id"`
	InvoiceNumber      string          `json:"invoice_number"`
	CustomerID         string          `json:"customer_id,omitempty"`
	CustomerName       string          `json:"customer_name,omitempty"`
	OrderID            string          `json:"order_id,omitempty"`
	InvoiceDate        string          `json:"invoice_date"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OpDueAmount        decimal.Decimal `json:"op_due_amount"`
	LastPaid           decimal.Decimal `json:"last_paid"`
	DueAfter           decimal.Decimal `json:"due_after"`
	Profit             decimal.Decimal `json:"profit"`
	CommissionDeducted decimal.Decimal `json:"commission_deducted"`
	CommissionYear     int             `json:"commission_year,omitempty"`
	CommissionMonth    int             `json:"commission_month,omitempty"`
	Items              []*BillItem     `json:"items,omitempty"`
	CreatedAt          int64           `json:"created_at"`
	Deleted            bool            `json:"deleted,omitempty"`
}

type BillItem struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Discount     decimal.Decimal `json:"discount"`
	Quantity     int             `json:"quantity"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// BillLine is a requested line. Lines with a non-positive quantity are ignored.
type BillLine struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity int             `json:"quantity"`
	Discount decimal.Decimal `json:"discount" validate:"gte=0"`
	// Price overrides the item's selling price.
	Price *decimal.Decimal `json:"price,omitempty"`
}

// BillFields is shared by create and update.
type BillFields struct {
	// CustomerID is empty for walk-in bills.
	CustomerID  string          `json:"customer_id"`
	InvoiceDate string          `json:"invoice_date" validate:"omitempty,datetime=2006-01-02"`
	Lines       []BillLine      `json:"lines" validate:"required,min=1,dive"`
	LastPaid    decimal.Decimal `json:"last_paid" validate:"gte=0"`
}

type CreateBillRequest struct {
	BillFields
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type UpdateBillRequest struct {
	ID string `json:"id" validate:"required"`
	BillFields
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteBillResponse struct{}

type GetBillRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

type ListBillsRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	From       string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To         string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Limit      int    `json:"limit,omitempty" validate:"gte=0,lte=500"`
	Offset     int    `json:"offset,omitempty" validate:"gte=0"`
}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}
