package service

import (
	"bytes"
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/milkagency/pkg/api"
)

func TestAdminDashboard_Cached(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.seed(t, "400", false)
	client := env.reportClient(asAdmin())
	ctx := context.Background()

	first, err := client.AdminDashboard(ctx, connect.NewRequest(&api.AdminDashboardRequest{Date: "2025-03-10"}))
	if err != nil {
		t.Fatalf("AdminDashboard failed: %v", err)
	}
	if first.Msg.TotalCustomers != 1 || first.Msg.TotalItems != 2 {
		t.Errorf("unexpected counts: %+v", first.Msg)
	}
	if !first.Msg.TotalDue.Equal(dec("400")) {
		t.Errorf("total due = %s, want 400", first.Msg.TotalDue)
	}
	if len(first.Msg.IdleCustomers) != 1 || first.Msg.IdleCustomers[0] != "Ravi" {
		t.Errorf("idle customers = %v, want [Ravi]", first.Msg.IdleCustomers)
	}

	second, err := client.AdminDashboard(ctx, connect.NewRequest(&api.AdminDashboardRequest{Date: "2025-03-10"}))
	if err != nil {
		t.Fatalf("AdminDashboard failed: %v", err)
	}
	if second.Msg.GeneratedAt != first.Msg.GeneratedAt {
		t.Error("second call should be served from cache")
	}

	hits := testutil.ToFloat64(env.metrics.CacheLookups.WithLabelValues("dashboard", "hit"))
	misses := testutil.ToFloat64(env.metrics.CacheLookups.WithLabelValues("dashboard", "miss"))
	if hits != 1 || misses != 1 {
		t.Errorf("cache hits/misses = %v/%v, want 1/1", hits, misses)
	}
}

func TestAdminDashboard_RequiresAdmin(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)

	_, err := env.reportClient(asCustomer(f.customer.ID)).AdminDashboard(context.Background(), connect.NewRequest(&api.AdminDashboardRequest{}))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected PermissionDenied, got %v", err)
	}
}

func TestStockDashboard(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	ctx := context.Background()

	if _, err := env.catalog(asAdmin()).AdjustStock(ctx, connect.NewRequest(&api.AdjustStockRequest{ID: f.curd.ID, Delta: -20})); err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}

	resp, err := env.reportClient(asAdmin()).StockDashboard(ctx, connect.NewRequest(&api.StockDashboardRequest{}))
	if err != nil {
		t.Fatalf("StockDashboard failed: %v", err)
	}
	// 50 milk at 90 buying.
	if !resp.Msg.TotalValue.Equal(dec("4500")) {
		t.Errorf("total value = %s, want 4500", resp.Msg.TotalValue)
	}
	if len(resp.Msg.StockOut) != 1 || resp.Msg.StockOut[0].ItemID != f.curd.ID {
		t.Errorf("stock out = %+v, want the curd item", resp.Msg.StockOut)
	}
}

func TestMonthlySalesSummary(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	ctx := context.Background()

	for _, qty := range []int{2, 3} {
		if _, err := env.bills(asAdmin()).CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{BillFields: api.BillFields{
			CustomerID:  f.customer.ID,
			InvoiceDate: "2025-03-12",
			Lines:       []api.BillLine{{ItemID: f.milk.ID, Quantity: qty}},
		}})); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}

	resp, err := env.reportClient(asAdmin()).MonthlySalesSummary(ctx, connect.NewRequest(&api.MonthlySalesSummaryRequest{Year: 2025, Month: 3}))
	if err != nil {
		t.Fatalf("MonthlySalesSummary failed: %v", err)
	}
	if len(resp.Msg.Rows) != 1 || resp.Msg.Rows[0].Bills != 2 {
		t.Fatalf("unexpected rows: %+v", resp.Msg.Rows)
	}
	if !resp.Msg.TotalSales.Equal(dec("500")) {
		t.Errorf("total sales = %s, want 500", resp.Msg.TotalSales)
	}
	if !resp.Msg.TotalLiters.Equal(dec("2.5")) {
		t.Errorf("total liters = %s, want 2.5", resp.Msg.TotalLiters)
	}
	if resp.Msg.DownloadPath != "/download/reports/monthly-sales.xlsx?year=2025&month=3" {
		t.Errorf("download path = %q", resp.Msg.DownloadPath)
	}

	data, err := env.reports.SalesWorkbook(ctx, 2025, 3)
	if err != nil {
		t.Fatalf("SalesWorkbook failed: %v", err)
	}
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer book.Close()
	name, err := book.GetCellValue("Sales", "A4")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if name != "Ravi" {
		t.Errorf("first data row customer = %q, want Ravi", name)
	}
}

func TestCustomerDashboard(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "100", false)
	ctx := context.Background()

	if _, err := env.bills(asAdmin()).CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{BillFields: api.BillFields{
		CustomerID: f.customer.ID,
		Lines:      []api.BillLine{{ItemID: f.milk.ID, Quantity: 1}},
		LastPaid:   dec("50"),
	}})); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if _, err := env.orders(asCustomer(f.customer.ID)).PlaceOrder(ctx, connect.NewRequest(&api.PlaceOrderRequest{
		Items: []api.OrderLine{{ItemID: f.curd.ID, Quantity: 1}},
	})); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	resp, err := env.reportClient(asCustomer(f.customer.ID)).CustomerDashboard(ctx, connect.NewRequest(&api.CustomerDashboardRequest{CustomerID: "ignored"}))
	if err != nil {
		t.Fatalf("CustomerDashboard failed: %v", err)
	}
	d := resp.Msg
	if d.Customer.ID != f.customer.ID {
		t.Errorf("dashboard for %s, want own %s", d.Customer.ID, f.customer.ID)
	}
	if !d.Due.Equal(dec("150")) {
		t.Errorf("due = %s, want 150", d.Due)
	}
	if len(d.RecentBills) != 1 || len(d.RecentPayments) != 1 {
		t.Errorf("recent bills/payments = %d/%d, want 1/1", len(d.RecentBills), len(d.RecentPayments))
	}
	if d.PendingOrders != 1 {
		t.Errorf("pending orders = %d, want 1", d.PendingOrders)
	}
	if !d.MonthSales.Equal(dec("100")) {
		t.Errorf("month sales = %s, want 100", d.MonthSales)
	}

	_, err = env.reportClient(asAdmin()).CustomerDashboard(ctx, connect.NewRequest(&api.CustomerDashboardRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument without a customer, got %v", err)
	}
}
