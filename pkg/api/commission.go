package api

import "github.com/shopspring/decimal"

type Commission struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name,omitempty"`
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	MilkVolume       decimal.Decimal `json:"milk_volume"`
	CurdVolume       decimal.Decimal `json:"curd_volume"`
	TotalVolume      decimal.Decimal `json:"total_volume"`
	MilkCommission   decimal.Decimal `json:"milk_commission"`
	CurdCommission   decimal.Decimal `json:"curd_commission"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Deducted         bool            `json:"deducted"`
	BillID           string          `json:"bill_id,omitempty"`
}

type CommissionBreakdown struct {
	DaysInMonth     int             `json:"days_in_month"`
	MilkLiters      decimal.Decimal `json:"milk_liters"`
	CurdLiters      decimal.Decimal `json:"curd_liters"`
	AvgMilk         decimal.Decimal `json:"avg_milk"`
	AvgCurd         decimal.Decimal `json:"avg_curd"`
	AvgTotal        decimal.Decimal `json:"avg_total"`
	MilkCommission  decimal.Decimal `json:"milk_commission"`
	CurdCommission  decimal.Decimal `json:"curd_commission"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	MilkRate        decimal.Decimal `json:"milk_rate"`
	CurdRate        decimal.Decimal `json:"curd_rate"`
	TotalRate       decimal.Decimal `json:"total_rate"`
}

type ComputeCommissionRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Year       int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Month      int    `json:"month" validate:"required,gte=1,lte=12"`
}

type ComputeCommissionResponse struct {
	Commission *Commission          `json:"commission"`
	Breakdown  *CommissionBreakdown `json:"breakdown"`
}

// CloseMonthRequest computes commissions for every commissioned customer.
// Zero year and month mean the previous calendar month.
type CloseMonthRequest struct {
	Year  int `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Month int `json:"month" validate:"omitempty,gte=1,lte=12"`
}

type CloseMonthResponse struct {
	Year        int           `json:"year"`
	Month       int           `json:"month"`
	Commissions []*Commission `json:"commissions"`
	// Skipped counts customers with no volume or an already deducted record.
	Skipped int `json:"skipped"`
}

type ListCommissionsRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	Year       int    `json:"year,omitempty"`
	Month      int    `json:"month,omitempty" validate:"gte=0,lte=12"`
	OnlyOpen   bool   `json:"only_open,omitempty"`
}

type ListCommissionsResponse struct {
	Commissions []*Commission `json:"commissions"`
}

// PreviewCommissionRequest evaluates the slab tables without touching storage.
type PreviewCommissionRequest struct {
	MilkLiters decimal.Decimal `json:"milk_liters" validate:"gte=0"`
	CurdLiters decimal.Decimal `json:"curd_liters" validate:"gte=0"`
	Days       int             `json:"days" validate:"required,gte=1,lte=31"`
}

type PreviewCommissionResponse struct {
	Breakdown *CommissionBreakdown `json:"breakdown"`
}
