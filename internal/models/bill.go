package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is an invoice issued to a customer (or to a walk-in buyer when
// CustomerID is empty).
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// InvoiceNumber is human readable and unique: INV-<yyyymmdd>-<nnnn>.
	InvoiceNumber string

	// CustomerID is empty for walk-in bills.
	CustomerID string

	// OrderID links the bill to the portal order it was generated from.
	OrderID string

	InvoiceDate time.Time

	// TotalAmount is the rounded line total minus any deducted commission.
	TotalAmount decimal.Decimal

	// OpDueAmount is the customer's due just before this bill was applied.
	// It is a snapshot, not a live reference.
	OpDueAmount decimal.Decimal

	// LastPaid is the amount paid at the counter against this bill.
	LastPaid decimal.Decimal

	Profit decimal.Decimal

	// CommissionDeducted is the commission consumed by this bill, if any.
	CommissionDeducted decimal.Decimal
	CommissionYear     int
	CommissionMonth    int

	Items []BillItem

	CreatedAt int64

	// DeletedAt is set when the bill is voided. Deleted bills are ignored by
	// every ledger aggregate.
	DeletedAt int64
}

// DueAfter is the customer's balance once this bill and its counter payment
// are applied.
func (b *Bill) DueAfter() decimal.Decimal {
	return b.OpDueAmount.Add(b.TotalAmount).Sub(b.LastPaid)
}

// BillItem is one line on a bill. Owned exclusively by its bill.
type BillItem struct {
	ID           string
	ItemID       string
	ItemName     string
	PricePerUnit decimal.Decimal
	// Discount is per unit.
	Discount    decimal.Decimal
	Quantity    int
	TotalAmount decimal.Decimal
}

// BillLineInput is a requested line on a new or edited bill.
type BillLineInput struct {
	ItemID   string
	Quantity int
	Discount decimal.Decimal
	// Price overrides the item's selling price when set (portal orders carry
	// the price the customer agreed to).
	Price *decimal.Decimal
}

// BillInput carries everything needed to write a bill.
type BillInput struct {
	CustomerID  string
	OrderID     string
	InvoiceDate time.Time
	Lines       []BillLineInput
	LastPaid    decimal.Decimal
}

// BillFilter narrows ListBills. Zero dates are open bounds.
type BillFilter struct {
	CustomerID string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}
