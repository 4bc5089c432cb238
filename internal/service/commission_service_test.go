package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/pkg/api"
)

func TestCloseMonth_And_Deduction(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", true)
	ctx := context.Background()
	bills := env.bills(asAdmin())
	client := env.commissionClient(asAdmin())

	// 62 × 500ml = 31 L over March: 1 L a day at 0.20.
	if _, err := bills.CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{BillFields: api.BillFields{
		CustomerID:  f.customer.ID,
		InvoiceDate: "2025-03-05",
		Lines:       []api.BillLine{{ItemID: f.milk.ID, Quantity: 62}},
	}})); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	closed, err := client.CloseMonth(ctx, connect.NewRequest(&api.CloseMonthRequest{Year: 2025, Month: 3}))
	if err != nil {
		t.Fatalf("CloseMonth failed: %v", err)
	}
	if len(closed.Msg.Commissions) != 1 {
		t.Fatalf("expected 1 commission, got %d", len(closed.Msg.Commissions))
	}
	c := closed.Msg.Commissions[0]
	if !c.MilkVolume.Equal(dec("1")) || !c.TotalVolume.Equal(dec("1")) {
		t.Errorf("volumes = %s/%s, want 1 L a day", c.MilkVolume, c.TotalVolume)
	}
	if !c.CommissionAmount.Equal(dec("6.2")) {
		t.Errorf("commission = %s, want 6.20", c.CommissionAmount)
	}
	if c.CustomerName != "Ravi" {
		t.Errorf("customer name = %q, want Ravi", c.CustomerName)
	}

	// The next bill settles it.
	next, err := bills.CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{BillFields: api.BillFields{
		CustomerID:  f.customer.ID,
		InvoiceDate: "2025-04-02",
		Lines:       []api.BillLine{{ItemID: f.milk.ID, Quantity: 1}},
	}}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if !next.Msg.Bill.CommissionDeducted.Equal(dec("6.2")) {
		t.Errorf("commission deducted = %s, want 6.20", next.Msg.Bill.CommissionDeducted)
	}
	if !next.Msg.Bill.TotalAmount.Equal(dec("93.8")) {
		t.Errorf("total = %s, want 93.80", next.Msg.Bill.TotalAmount)
	}

	t.Run("deducted month is skipped on re-close", func(t *testing.T) {
		again, err := client.CloseMonth(ctx, connect.NewRequest(&api.CloseMonthRequest{Year: 2025, Month: 3}))
		if err != nil {
			t.Fatalf("CloseMonth failed: %v", err)
		}
		if len(again.Msg.Commissions) != 0 || again.Msg.Skipped != 1 {
			t.Errorf("expected 0 computed and 1 skipped, got %d and %d", len(again.Msg.Commissions), again.Msg.Skipped)
		}
	})

	t.Run("recompute of deducted month is refused", func(t *testing.T) {
		_, err := client.ComputeCommission(ctx, connect.NewRequest(&api.ComputeCommissionRequest{
			CustomerID: f.customer.ID, Year: 2025, Month: 3,
		}))
		if connect.CodeOf(err) != connect.CodeFailedPrecondition {
			t.Errorf("expected FailedPrecondition, got %v", err)
		}
	})

	t.Run("only open", func(t *testing.T) {
		list, err := client.ListCommissions(ctx, connect.NewRequest(&api.ListCommissionsRequest{OnlyOpen: true}))
		if err != nil {
			t.Fatalf("ListCommissions failed: %v", err)
		}
		if len(list.Msg.Commissions) != 0 {
			t.Errorf("expected no open commissions, got %d", len(list.Msg.Commissions))
		}
	})
}

func TestCloseMonth_SkipsEmptyAndUncommissioned(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", true)
	ctx := context.Background()

	plain := &models.Customer{Phone: "+919000000002", Name: "Plain"}
	if err := env.store.CreateCustomer(ctx, plain); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if _, err := env.bills(asAdmin()).CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{BillFields: api.BillFields{
		CustomerID:  plain.ID,
		InvoiceDate: "2025-03-05",
		Lines:       []api.BillLine{{ItemID: f.milk.ID, Quantity: 10}},
	}})); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	closed, err := env.commissions.Close(ctx, 2025, 3)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if len(closed.Commissions) != 0 {
		t.Errorf("expected no commissions, got %d", len(closed.Commissions))
	}
	if closed.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 (commissioned customer without volume)", closed.Skipped)
	}
}

func TestCloseMonth_DefaultsToPreviousMonth(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	env.commissions.now = func() time.Time { return time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC) }
	resp, err := env.commissionClient(asAdmin()).CloseMonth(context.Background(), connect.NewRequest(&api.CloseMonthRequest{}))
	if err != nil {
		t.Fatalf("CloseMonth failed: %v", err)
	}
	if resp.Msg.Year != 2024 || resp.Msg.Month != 12 {
		t.Errorf("closed %d-%02d, want 2024-12", resp.Msg.Year, resp.Msg.Month)
	}
}

func TestComputeCommission_NotCommissioned(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)

	_, err := env.commissionClient(asAdmin()).ComputeCommission(context.Background(), connect.NewRequest(&api.ComputeCommissionRequest{
		CustomerID: f.customer.ID, Year: 2025, Month: 3,
	}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected FailedPrecondition, got %v", err)
	}
}

func TestPreviewCommission(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := env.commissionClient(asAdmin()).PreviewCommission(context.Background(), connect.NewRequest(&api.PreviewCommissionRequest{
		MilkLiters: dec("600"),
		CurdLiters: dec("300"),
		Days:       30,
	}))
	if err != nil {
		t.Fatalf("PreviewCommission failed: %v", err)
	}
	b := resp.Msg.Breakdown
	// 20 L/day of milk earns 4.50 a day, 10 L/day of curd 2.50.
	if !b.MilkCommission.Equal(dec("135")) {
		t.Errorf("milk commission = %s, want 135", b.MilkCommission)
	}
	if !b.CurdCommission.Equal(dec("75")) {
		t.Errorf("curd commission = %s, want 75", b.CurdCommission)
	}
	if !b.TotalCommission.Equal(dec("210")) {
		t.Errorf("total = %s, want 210", b.TotalCommission)
	}

	_, err = env.commissionClient(asAdmin()).PreviewCommission(context.Background(), connect.NewRequest(&api.PreviewCommissionRequest{Days: 0}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument for zero days, got %v", err)
	}
}
