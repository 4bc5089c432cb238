package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

func TestRecordPayment(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "1000", false)
	client := env.payments(asAdmin())
	ctx := context.Background()

	resp, err := client.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		CustomerID:    f.customer.ID,
		Amount:        dec("400"),
		TransactionID: "UPI-0001",
		Method:        "UPI",
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if !resp.Msg.Due.Equal(dec("600")) {
		t.Errorf("due = %s, want 600", resp.Msg.Due)
	}
	if resp.Msg.Payment.Status != "SUCCESS" {
		t.Errorf("status = %q, want SUCCESS default", resp.Msg.Payment.Status)
	}
	if resp.Msg.Payment.CustomerName != "Ravi" {
		t.Errorf("customer name = %q, want Ravi", resp.Msg.Payment.CustomerName)
	}

	t.Run("duplicate transaction id leaves the ledger unchanged", func(t *testing.T) {
		_, err := client.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
			CustomerID:    f.customer.ID,
			Amount:        dec("400"),
			TransactionID: "UPI-0001",
		}))
		if connect.CodeOf(err) != connect.CodeAlreadyExists {
			t.Errorf("expected AlreadyExists, got %v", err)
		}
		if due := env.dueOf(t, f.customer.ID); !due.Equal(dec("600")) {
			t.Errorf("due = %s, want 600", due)
		}
	})

	t.Run("failed status stops counting", func(t *testing.T) {
		updated, err := client.UpdatePaymentStatus(ctx, connect.NewRequest(&api.UpdatePaymentStatusRequest{
			ID:     resp.Msg.Payment.ID,
			Status: "FAILED",
		}))
		if err != nil {
			t.Fatalf("UpdatePaymentStatus failed: %v", err)
		}
		if !updated.Msg.Due.Equal(dec("1000")) {
			t.Errorf("due = %s, want 1000", updated.Msg.Due)
		}
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := client.DeletePayment(ctx, connect.NewRequest(&api.DeletePaymentRequest{ID: resp.Msg.Payment.ID}))
		if err != nil {
			t.Fatalf("DeletePayment failed: %v", err)
		}
		if !deleted.Msg.Due.Equal(dec("1000")) {
			t.Errorf("due = %s, want 1000", deleted.Msg.Due)
		}
	})
}

func TestRecordPayment_Validation(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	client := env.payments(asAdmin())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *api.RecordPaymentRequest
		want connect.Code
	}{
		{"zero amount", &api.RecordPaymentRequest{CustomerID: f.customer.ID, Amount: dec("0"), TransactionID: "T1"}, connect.CodeInvalidArgument},
		{"bad method", &api.RecordPaymentRequest{CustomerID: f.customer.ID, Amount: dec("5"), TransactionID: "T2", Method: "CHEQUE"}, connect.CodeInvalidArgument},
		{"missing transaction", &api.RecordPaymentRequest{CustomerID: f.customer.ID, Amount: dec("5")}, connect.CodeInvalidArgument},
		{"unknown customer", &api.RecordPaymentRequest{CustomerID: "missing", Amount: dec("5"), TransactionID: "T3"}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.RecordPayment(ctx, connect.NewRequest(tt.req))
			if connect.CodeOf(err) != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRecordMyPayment(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "300", false)
	ctx := context.Background()

	customer := env.payments(asCustomer(f.customer.ID))
	resp, err := customer.RecordMyPayment(ctx, connect.NewRequest(&api.RecordMyPaymentRequest{
		Amount:        dec("120"),
		TransactionID: "UPI-ABC",
	}))
	if err != nil {
		t.Fatalf("RecordMyPayment failed: %v", err)
	}
	if resp.Msg.Payment.CustomerID != f.customer.ID || resp.Msg.Payment.Method != "UPI" {
		t.Errorf("unexpected payment: %+v", resp.Msg.Payment)
	}
	if !resp.Msg.Due.Equal(dec("180")) {
		t.Errorf("due = %s, want 180", resp.Msg.Due)
	}

	_, err = customer.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		CustomerID:    f.customer.ID,
		Amount:        dec("1"),
		TransactionID: "UPI-DEF",
	}))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected PermissionDenied for staff-only RecordPayment, got %v", err)
	}

	_, err = env.payments(asAdmin()).RecordMyPayment(ctx, connect.NewRequest(&api.RecordMyPaymentRequest{
		Amount:        dec("1"),
		TransactionID: "UPI-GHI",
	}))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected PermissionDenied for staff calling RecordMyPayment, got %v", err)
	}

	list, err := customer.ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{CustomerID: "someone-else"}))
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(list.Msg.Payments) != 1 {
		t.Errorf("expected the customer's own payment only, got %d", len(list.Msg.Payments))
	}
}

func TestBillCounterPayment(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	ctx := context.Background()

	created, err := env.bills(asAdmin()).CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{BillFields: api.BillFields{
		CustomerID: f.customer.ID,
		Lines:      []api.BillLine{{ItemID: f.milk.ID, Quantity: 2}},
		LastPaid:   dec("150"),
	}}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	list, err := env.payments(asAdmin()).ListPayments(ctx, connect.NewRequest(&api.ListPaymentsRequest{
		TransactionID: "BILL-" + created.Msg.Bill.InvoiceNumber,
	}))
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(list.Msg.Payments) != 1 {
		t.Fatalf("expected the counter payment, got %d payments", len(list.Msg.Payments))
	}
	p := list.Msg.Payments[0]
	if p.Method != "CASH" || !p.Amount.Equal(dec("150")) || p.BillID != created.Msg.Bill.ID {
		t.Errorf("unexpected counter payment: %+v", p)
	}

	t.Run("cannot be changed outside the bill", func(t *testing.T) {
		_, err := env.payments(asAdmin()).UpdatePaymentStatus(ctx, connect.NewRequest(&api.UpdatePaymentStatusRequest{
			ID: p.ID, Status: "FAILED",
		}))
		if connect.CodeOf(err) != connect.CodeFailedPrecondition {
			t.Errorf("UpdatePaymentStatus: got %v, want FailedPrecondition", err)
		}
		_, err = env.payments(asAdmin()).DeletePayment(ctx, connect.NewRequest(&api.DeletePaymentRequest{ID: p.ID}))
		if connect.CodeOf(err) != connect.CodeFailedPrecondition {
			t.Errorf("DeletePayment: got %v, want FailedPrecondition", err)
		}
		if due := env.dueOf(t, f.customer.ID); !due.Equal(dec("50")) {
			t.Errorf("due = %s, want 50", due)
		}
	})
}
