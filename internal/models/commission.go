package models

import "github.com/shopspring/decimal"

// MonthlyCommission is the rebate a retailer earned for one month.
// There is at most one record per (customer, year, month).
type MonthlyCommission struct {
	ID         string
	CustomerID string
	Year       int
	Month      int

	// Average daily liters for the month.
	MilkVolume  decimal.Decimal
	CurdVolume  decimal.Decimal
	TotalVolume decimal.Decimal

	MilkCommission   decimal.Decimal
	CurdCommission   decimal.Decimal
	CommissionAmount decimal.Decimal

	// Deducted is true once a bill has consumed this record.
	Deducted bool

	// BillID is the bill that consumed the record.
	BillID string

	CreatedAt int64
}

// MonthlyVolume is the raw liters a customer bought in a month.
type MonthlyVolume struct {
	CustomerID string
	MilkLiters decimal.Decimal
	CurdLiters decimal.Decimal
}

// CommissionFilter narrows ListCommissions. Zero values match everything.
type CommissionFilter struct {
	CustomerID string
	Year       int
	Month      int
	// OnlyOpen restricts to records not yet deducted.
	OnlyOpen bool
}
