package models

import "github.com/shopspring/decimal"

// Payment statuses. Only SUCCESS payments reduce a customer's due.
const (
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
	PaymentPending = "PENDING"
)

// Payment methods.
const (
	MethodUPI  = "UPI"
	MethodCash = "CASH"
)

// CustomerPayment is an append-only ledger credit.
type CustomerPayment struct {
	ID         string
	CustomerID string

	// BillID is set for the counter payment recorded with a bill.
	BillID string

	Amount decimal.Decimal

	// TransactionID is unique across all payments; it is the idempotency key.
	TransactionID string

	Method    string
	Status    string
	CreatedAt int64

	// CustomerName is populated on list reads.
	CustomerName string
}

// PaymentFilter narrows ListPayments.
type PaymentFilter struct {
	CustomerID string
	// Customer matches customer name or phone (substring).
	Customer      string
	TransactionID string
	Limit         int
}
