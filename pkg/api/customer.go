package api

import "github.com/shopspring/decimal"

type Customer struct {
	ID             string          `json:"id"`
	Phone          string          `json:"phone"`
	Name           string          `json:"name"`
	ShopName       string          `json:"shop_name,omitempty"`
	RetailerID     string          `json:"retailer_id,omitempty"`
	FlatNumber     string          `json:"flat_number,omitempty"`
	Area           string          `json:"area,omitempty"`
	PinCode        string          `json:"pin_code,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	OpeningDue     decimal.Decimal `json:"opening_due"`
	Due            decimal.Decimal `json:"due"`
	IsCommissioned bool            `json:"is_commissioned"`
	IsDelivery     bool            `json:"is_delivery"`
	Frozen         bool            `json:"frozen"`
	HasPassword    bool            `json:"has_password"`
	CreatedAt      int64           `json:"created_at"`
}

// CustomerProfile holds the editable profile fields.
type CustomerProfile struct {
	Phone          string `json:"phone" validate:"required"`
	Name           string `json:"name" validate:"required,max=100"`
	ShopName       string `json:"shop_name" validate:"max=100"`
	RetailerID     string `json:"retailer_id" validate:"max=50"`
	FlatNumber     string `json:"flat_number" validate:"max=50"`
	Area           string `json:"area" validate:"max=100"`
	PinCode        string `json:"pin_code" validate:"omitempty,numeric,len=6"`
	City           string `json:"city" validate:"max=50"`
	State          string `json:"state" validate:"max=50"`
	IsCommissioned bool   `json:"is_commissioned"`
	IsDelivery     bool   `json:"is_delivery"`
}

type CreateCustomerRequest struct {
	CustomerProfile
	OpeningDue decimal.Decimal `json:"opening_due"`
	// Password optionally enables portal login right away.
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type CreateCustomerResponse struct {
	Customer *Customer `json:"customer"`
}

type UpdateCustomerRequest struct {
	ID string `json:"id" validate:"required"`
	CustomerProfile
}

type UpdateCustomerResponse struct {
	Customer *Customer `json:"customer"`
}

type GetCustomerRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetCustomerResponse struct {
	Customer *Customer `json:"customer"`
}

type ListCustomersRequest struct {
	Area          string `json:"area,omitempty"`
	Search        string `json:"search,omitempty"`
	IncludeFrozen bool   `json:"include_frozen,omitempty"`
}

type ListCustomersResponse struct {
	Customers []*Customer `json:"customers"`
}

type SetCustomerFrozenRequest struct {
	ID     string `json:"id" validate:"required"`
	Frozen bool   `json:"frozen"`
}

type SetCustomerFrozenResponse struct {
	Customer *Customer `json:"customer"`
}

type SetCustomerPasswordRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type SetCustomerPasswordResponse struct{}

type SetOpeningDueRequest struct {
	ID         string          `json:"id" validate:"required"`
	OpeningDue decimal.Decimal `json:"opening_due"`
}

type SetOpeningDueResponse struct {
	Customer *Customer `json:"customer"`
}

// GetStatementRequest asks for a customer's ledger over one calendar month.
type GetStatementRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Year       int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Month      int    `json:"month" validate:"required,gte=1,lte=12"`
}

type GetStatementResponse struct {
	Customer     *Customer       `json:"customer"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	OpeningDue   decimal.Decimal `json:"opening_due"`
	InvoiceTotal decimal.Decimal `json:"invoice_total"`
	PaidTotal    decimal.Decimal `json:"paid_total"`
	ClosingDue   decimal.Decimal `json:"closing_due"`
	Bills        []*Bill         `json:"bills"`
	Payments     []*Payment      `json:"payments"`
}
