package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Customer is a retailer (or household) buying from the agency.
// Customers are never deleted; Frozen disables new bills and orders.
type Customer struct {
	// ID is the unique identifier for the customer (UUID format).
	ID string

	// Phone is the E.164 phone number, unique, used for portal login.
	Phone string

	Name       string
	ShopName   string
	RetailerID string

	FlatNumber string
	Area       string
	PinCode    string
	City       string
	State      string

	// OpeningDue is the balance carried over when the customer was onboarded.
	OpeningDue decimal.Decimal

	// Due is the cached outstanding balance. See calculator.ActualDue.
	Due decimal.Decimal

	// IsCommissioned marks the customer as eligible for monthly commission.
	IsCommissioned bool

	// IsDelivery marks the customer as eligible for delivery.
	IsDelivery bool

	Frozen bool

	// PasswordHash is the bcrypt hash for portal login. Empty until set.
	PasswordHash string

	CreatedAt int64
	UpdatedAt int64
}

// Address joins the non-empty address fields for printing.
func (c *Customer) Address() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{c.FlatNumber, c.Area, c.City, c.State, c.PinCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// CustomerFilter narrows ListCustomers.
type CustomerFilter struct {
	Area string
	// Search matches name, shop name or phone (substring, case-insensitive).
	Search        string
	IncludeFrozen bool
}
