package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/cache"
	"github.com/mmynk/milkagency/internal/metrics"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/report"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

const defaultStockDays = 30

func dashboardKey(day time.Time) string {
	return "dashboard:admin:" + day.Format(dateLayout)
}

// invalidateDashboard drops the cached admin dashboard for each day.
func invalidateDashboard(ctx context.Context, c cache.Cache, days ...time.Time) {
	if c == nil {
		return
	}
	keys := make([]string, 0, len(days))
	for _, d := range days {
		if !d.IsZero() {
			keys = append(keys, dashboardKey(d))
		}
	}
	if err := c.Delete(ctx, keys...); err != nil {
		slog.Warn("Failed to invalidate dashboard cache", "error", err)
	}
}

// ReportService serves dashboards and the monthly sales summary.
type ReportService struct {
	apiconnect.UnimplementedReportServiceHandler
	store    storage.Store
	cache    cache.Cache
	metrics  *metrics.Metrics
	lowStock int
	ttl      time.Duration
	now      func() time.Time
}

// NewReportService creates a ReportService. Items at or below lowStock
// count as low; the admin dashboard is cached for ttl.
func NewReportService(store storage.Store, c cache.Cache, m *metrics.Metrics, lowStock int, ttl time.Duration) *ReportService {
	return &ReportService{store: store, cache: c, metrics: m, lowStock: lowStock, ttl: ttl, now: time.Now}
}

func (s *ReportService) lookup(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues("dashboard", result).Inc()
	}
}

// AdminDashboard returns the day's headline numbers. Results are cached
// per day until a bill, payment or order touches that day.
func (s *ReportService) AdminDashboard(ctx context.Context, req *connect.Request[api.AdminDashboardRequest]) (*connect.Response[api.AdminDashboardResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	day, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = s.now()
	}
	key := dashboardKey(day)

	if s.cache != nil {
		var cached api.AdminDashboardResponse
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("Dashboard cache read failed", "key", key, "error", err)
		}
		if ok {
			s.lookup("hit")
			return connect.NewResponse(&cached), nil
		}
		s.lookup("miss")
	}

	counts, err := s.store.DashboardCounts(ctx, day, s.lowStock)
	if err != nil {
		slog.Error("DashboardCounts failed", "date", formatDate(day), "error", err)
		return nil, connectError(err)
	}
	resp := &api.AdminDashboardResponse{
		Date:            formatDate(day),
		TotalCustomers:  counts.TotalCustomers,
		FrozenCustomers: counts.FrozenCustomers,
		TotalItems:      counts.TotalItems,
		TotalCompanies:  counts.TotalCompanies,
		BillsToday:      counts.BillsToday,
		SalesToday:      counts.SalesToday,
		ProfitToday:     counts.ProfitToday,
		TotalDue:        counts.TotalDue,
		StockValue:      counts.StockValue,
		LowStockItems:   counts.LowStockItems,
		OutOfStock:      counts.OutOfStock,
		PendingOrders:   counts.PendingOrders,
		IdleCustomers:   counts.IdleCustomers,
		GeneratedAt:     s.now().Unix(),
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
			slog.Warn("Dashboard cache write failed", "key", key, "error", err)
		}
	}
	return connect.NewResponse(resp), nil
}

// StockDashboard reports stock value and sales velocity over the last
// Days days (30 when unset).
func (s *ReportService) StockDashboard(ctx context.Context, req *connect.Request[api.StockDashboardRequest]) (*connect.Response[api.StockDashboardResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	days := req.Msg.Days
	if days == 0 {
		days = defaultStockDays
	}
	summary, err := s.store.StockSummary(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, connectError(err)
	}

	resp := &api.StockDashboardResponse{
		TotalValue: summary.TotalValue,
		TopByValue: toAPIStockLines(summary.TopByValue),
		StockOut:   toAPIStockLines(summary.StockOut),
	}
	for _, c := range summary.ByCompany {
		resp.ByCompany = append(resp.ByCompany, &api.CompanyStock{
			CompanyID:   c.CompanyID,
			CompanyName: c.CompanyName,
			Items:       c.Items,
			Quantity:    c.Quantity,
			Value:       c.Value,
		})
	}
	return connect.NewResponse(resp), nil
}

func (s *ReportService) MonthlySalesSummary(ctx context.Context, req *connect.Request[api.MonthlySalesSummaryRequest]) (*connect.Response[api.MonthlySalesSummaryResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	rows, err := s.store.MonthlySales(ctx, req.Msg.Year, req.Msg.Month, req.Msg.CustomerID)
	if err != nil {
		slog.Error("MonthlySales failed", "year", req.Msg.Year, "month", req.Msg.Month, "error", err)
		return nil, connectError(err)
	}

	resp := &api.MonthlySalesSummaryResponse{
		Year:         req.Msg.Year,
		Month:        req.Msg.Month,
		DownloadPath: fmt.Sprintf("/download/reports/monthly-sales.xlsx?year=%d&month=%d", req.Msg.Year, req.Msg.Month),
	}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, toAPISalesRow(r))
		resp.TotalSales = resp.TotalSales.Add(r.Sales)
		resp.TotalPaid = resp.TotalPaid.Add(r.Paid)
		resp.TotalProfit = resp.TotalProfit.Add(r.Profit)
		resp.TotalLiters = resp.TotalLiters.Add(r.Liters)
	}
	return connect.NewResponse(resp), nil
}

// SalesWorkbook renders the monthly sales summary as a spreadsheet.
func (s *ReportService) SalesWorkbook(ctx context.Context, year, month int) ([]byte, error) {
	rows, err := s.store.MonthlySales(ctx, year, month, "")
	if err != nil {
		return nil, err
	}
	return report.MonthlySales(year, month, rows)
}

// CustomerDashboard is a customer's landing page. Customers always get
// their own; staff name the customer.
func (s *ReportService) CustomerDashboard(ctx context.Context, req *connect.Request[api.CustomerDashboardRequest]) (*connect.Response[api.CustomerDashboardResponse], error) {
	customerID := ownerOr(ctx, req.Msg.CustomerID)
	if customerID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("customer_id is required"))
	}

	due, err := s.store.RecomputeDue(ctx, customerID)
	if err != nil {
		return nil, connectError(err)
	}
	customer, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, connectError(err)
	}
	resp := &api.CustomerDashboardResponse{Customer: toAPICustomer(customer), Due: due}

	bills, err := s.store.ListBills(ctx, models.BillFilter{CustomerID: customerID, Limit: 5})
	if err != nil {
		return nil, connectError(err)
	}
	for _, b := range bills {
		resp.RecentBills = append(resp.RecentBills, toAPIBill(b, customer.Name))
	}

	payments, err := s.store.ListPayments(ctx, models.PaymentFilter{CustomerID: customerID, Limit: 5})
	if err != nil {
		return nil, connectError(err)
	}
	for _, p := range payments {
		resp.RecentPayments = append(resp.RecentPayments, toAPIPayment(p))
	}

	orders, err := s.store.ListOrders(ctx, models.OrderFilter{CustomerID: customerID, Status: models.OrderPending})
	if err != nil {
		return nil, connectError(err)
	}
	resp.PendingOrders = len(orders)

	open, err := s.store.ListCommissions(ctx, models.CommissionFilter{CustomerID: customerID, OnlyOpen: true})
	if err != nil {
		return nil, connectError(err)
	}
	for _, c := range open {
		resp.OpenCommission = resp.OpenCommission.Add(c.CommissionAmount)
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	month, err := s.store.ListBills(ctx, models.BillFilter{CustomerID: customerID, From: start})
	if err != nil {
		return nil, connectError(err)
	}
	resp.MonthSales = decimal.Zero
	for _, b := range month {
		resp.MonthSales = resp.MonthSales.Add(b.TotalAmount)
	}
	return connect.NewResponse(resp), nil
}
