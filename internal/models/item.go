package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Company is a supplier brand whose items the agency stocks.
type Company struct {
	ID      string
	Name    string
	Website string
}

// Item categories that participate in commission volume.
const (
	CategoryMilk = "milk"
	CategoryCurd = "curd"
)

// NormalizeCategory folds a category as typed ("Milk ", "CURD") to its
// stored form.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// Item is a catalog entry.
type Item struct {
	ID string

	// Code is an optional unique short code (e.g. "FCM500").
	Code string

	Name      string
	CompanyID string
	Category  string

	SellingPrice decimal.Decimal
	BuyingPrice  decimal.Decimal
	MRP          decimal.Decimal

	// StockQuantity may go negative: billing never blocks on stock.
	StockQuantity int

	// PcsCount is the number of pieces per unit (crate size).
	PcsCount int

	// UnitVolumeML is the liquid volume of one unit in milliliters.
	// Zero for items that do not count toward commission.
	UnitVolumeML int

	Description string
	Frozen      bool
}

// ItemFilter narrows ListItems.
type ItemFilter struct {
	CompanyID     string
	Category      string
	IncludeFrozen bool
}
