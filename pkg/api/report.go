package api

import "github.com/shopspring/decimal"

type AdminDashboardRequest struct {
	// Date defaults to today.
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type AdminDashboardResponse struct {
	Date            string          `json:"date"`
	TotalCustomers  int             `json:"total_customers"`
	FrozenCustomers int             `json:"frozen_customers"`
	TotalItems      int             `json:"total_items"`
	TotalCompanies  int             `json:"total_companies"`
	BillsToday      int             `json:"bills_today"`
	SalesToday      decimal.Decimal `json:"sales_today"`
	ProfitToday     decimal.Decimal `json:"profit_today"`
	TotalDue        decimal.Decimal `json:"total_due"`
	StockValue      decimal.Decimal `json:"stock_value"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStock      int             `json:"out_of_stock"`
	PendingOrders   int             `json:"pending_orders"`
	IdleCustomers   []string        `json:"idle_customers"`
	GeneratedAt     int64           `json:"generated_at"`
}

type StockLine struct {
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	CompanyName   string          `json:"company_name,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	StockValue    decimal.Decimal `json:"stock_value"`
	SoldQuantity  int             `json:"sold_quantity"`
}

type CompanyStock struct {
	CompanyID   string          `json:"company_id"`
	CompanyName string          `json:"company_name"`
	Items       int             `json:"items"`
	Quantity    int             `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
}

type StockDashboardRequest struct {
	// Days is the window for sold quantities; defaults to 30.
	Days int `json:"days,omitempty" validate:"gte=0,lte=366"`
}

type StockDashboardResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
	TopByValue []*StockLine    `json:"top_by_value"`
	StockOut   []*StockLine    `json:"stock_out"`
	ByCompany  []*CompanyStock `json:"by_company"`
}

type SalesRow struct {
	CustomerID   string          `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	ShopName     string          `json:"shop_name,omitempty"`
	Bills        int             `json:"bills"`
	Liters       decimal.Decimal `json:"liters"`
	Sales        decimal.Decimal `json:"sales"`
	Paid         decimal.Decimal `json:"paid"`
	Profit       decimal.Decimal `json:"profit"`
	Due          decimal.Decimal `json:"due"`
}

type MonthlySalesSummaryRequest struct {
	Year       int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Month      int    `json:"month" validate:"required,gte=1,lte=12"`
	CustomerID string `json:"customer_id,omitempty"`
}

type MonthlySalesSummaryResponse struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Rows         []*SalesRow     `json:"rows"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	TotalLiters  decimal.Decimal `json:"total_liters"`
	// DownloadPath serves the same summary as a spreadsheet.
	DownloadPath string `json:"download_path"`
}

// CustomerDashboardRequest is sent by a customer for their own view; staff
// may pass CustomerID to see any customer's.
type CustomerDashboardRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
}

type CustomerDashboardResponse struct {
	Customer       *Customer       `json:"customer"`
	Due            decimal.Decimal `json:"due"`
	RecentBills    []*Bill         `json:"recent_bills"`
	RecentPayments []*Payment      `json:"recent_payments"`
	PendingOrders  int             `json:"pending_orders"`
	OpenCommission decimal.Decimal `json:"open_commission"`
	MonthSales     decimal.Decimal `json:"month_sales"`
}
