package models

import "github.com/shopspring/decimal"

// DashboardCounts is the admin landing page snapshot.
type DashboardCounts struct {
	TotalCustomers  int
	FrozenCustomers int
	TotalItems      int
	TotalCompanies  int

	BillsToday  int
	SalesToday  decimal.Decimal
	ProfitToday decimal.Decimal

	// TotalDue sums positive customer dues.
	TotalDue decimal.Decimal

	// StockValue is Σ stock × buying price over items with positive stock.
	StockValue decimal.Decimal

	LowStockItems int
	OutOfStock    int
	PendingOrders int

	// IdleCustomers are active customers with no bill today.
	IdleCustomers []string
}

// StockLine is one item in a stock report.
type StockLine struct {
	ItemID        string
	ItemName      string
	CompanyName   string
	StockQuantity int
	StockValue    decimal.Decimal
	// SoldQuantity is the units billed over the report window.
	SoldQuantity int
}

// CompanyStock aggregates stock by company.
type CompanyStock struct {
	CompanyID   string
	CompanyName string
	Items       int
	Quantity    int
	Value       decimal.Decimal
}

// StockSummary is the stock dashboard.
type StockSummary struct {
	TotalValue decimal.Decimal
	TopByValue []StockLine
	StockOut   []StockLine
	ByCompany  []CompanyStock
}

// SalesRow is one customer's totals for a month.
type SalesRow struct {
	CustomerID   string
	CustomerName string
	ShopName     string
	Bills        int
	Liters       decimal.Decimal
	Sales        decimal.Decimal
	Paid         decimal.Decimal
	Profit       decimal.Decimal
	Due          decimal.Decimal
}
