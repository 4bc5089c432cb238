package api

import "github.com/shopspring/decimal"

type Payment struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	BillID        string          `json:"bill_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	CreatedAt     int64           `json:"created_at"`
}

type RecordPaymentRequest struct {
	CustomerID    string          `json:"customer_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	TransactionID string          `json:"transaction_id" validate:"required,max=100"`
	Method        string          `json:"method" validate:"omitempty,oneof=UPI CASH"`
	Status        string          `json:"status" validate:"omitempty,oneof=SUCCESS FAILED PENDING"`
}

type RecordPaymentResponse struct {
	Payment *Payment        `json:"payment"`
	Due     decimal.Decimal `json:"due"`
}

// RecordMyPaymentRequest is sent by the portal after a UPI payment.
type RecordMyPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	TransactionID string          `json:"transaction_id" validate:"required,max=100"`
	Status        string          `json:"status" validate:"omitempty,oneof=SUCCESS FAILED PENDING"`
}

type UpdatePaymentStatusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=SUCCESS FAILED PENDING"`
}

type UpdatePaymentStatusResponse struct {
	Payment *Payment        `json:"payment"`
	Due     decimal.Decimal `json:"due"`
}

type DeletePaymentRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeletePaymentResponse struct {
	Due decimal.Decimal `json:"due"`
}

type ListPaymentsRequest struct {
	CustomerID    string `json:"customer_id,omitempty"`
	Customer      string `json:"customer,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Limit         int    `json:"limit,omitempty" validate:"gte=0,lte=500"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}
