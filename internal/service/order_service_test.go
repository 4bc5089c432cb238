package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/pkg/api"
)

func TestPlaceOrder_And_Approve(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	ctx := context.Background()
	customer := env.orders(asCustomer(f.customer.ID))
	admin := env.orders(asAdmin())

	placed, err := customer.PlaceOrder(ctx, connect.NewRequest(&api.PlaceOrderRequest{
		Items: []api.OrderLine{
			{ItemID: f.milk.ID, Quantity: 4},
			{ItemID: f.curd.ID, Quantity: 0},
		},
		DeliveryDate: "2025-03-11",
		Notes:        "before 6am",
	}))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	order := placed.Msg.Order
	if !strings.HasPrefix(order.OrderNumber, "ORD-") {
		t.Errorf("order number = %q, want ORD- prefix", order.OrderNumber)
	}
	if order.Status != models.OrderPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if len(order.Items) != 1 {
		t.Errorf("expected zero-quantity line dropped, got %d lines", len(order.Items))
	}
	if !order.TotalAmount.Equal(dec("400")) {
		t.Errorf("total = %s, want 400", order.TotalAmount)
	}
	if stock := env.stockOf(t, f.milk.ID); stock != 50 {
		t.Errorf("placing an order moved stock to %d", stock)
	}

	price := dec("95")
	approved, err := admin.ApproveOrder(ctx, connect.NewRequest(&api.ApproveOrderRequest{
		ID:         order.ID,
		Approvals:  []api.OrderApproval{{ItemID: f.milk.ID, Quantity: 3, Price: &price}},
		AdminNotes: "one short",
	}))
	if err != nil {
		t.Fatalf("ApproveOrder failed: %v", err)
	}
	if approved.Msg.Order.Status != models.OrderConfirmed {
		t.Errorf("status = %q, want confirmed", approved.Msg.Order.Status)
	}
	if approved.Msg.Bill == nil || approved.Msg.Order.BillID != approved.Msg.Bill.ID {
		t.Fatalf("order not linked to its bill: %+v", approved.Msg)
	}
	if !approved.Msg.Bill.TotalAmount.Equal(dec("285")) {
		t.Errorf("bill total = %s, want 285", approved.Msg.Bill.TotalAmount)
	}
	if stock := env.stockOf(t, f.milk.ID); stock != 47 {
		t.Errorf("stock = %d, want 47", stock)
	}
	if due := env.dueOf(t, f.customer.ID); !due.Equal(dec("285")) {
		t.Errorf("due = %s, want 285", due)
	}

	_, err = admin.ApproveOrder(ctx, connect.NewRequest(&api.ApproveOrderRequest{ID: order.ID}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected FailedPrecondition approving twice, got %v", err)
	}
}

func TestPlaceOrder_Errors(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	ctx := context.Background()

	_, err := env.orders(asCustomer(f.customer.ID)).PlaceOrder(ctx, connect.NewRequest(&api.PlaceOrderRequest{
		Items: []api.OrderLine{{ItemID: f.milk.ID, Quantity: 0}},
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument for an empty order, got %v", err)
	}

	_, err = env.orders(asAdmin()).PlaceOrder(ctx, connect.NewRequest(&api.PlaceOrderRequest{
		Items: []api.OrderLine{{ItemID: f.milk.ID, Quantity: 1}},
	}))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected PermissionDenied for staff, got %v", err)
	}

	if err := env.store.SetCustomerFrozen(ctx, f.customer.ID, true); err != nil {
		t.Fatalf("SetCustomerFrozen failed: %v", err)
	}
	_, err = env.orders(asCustomer(f.customer.ID)).PlaceOrder(ctx, connect.NewRequest(&api.PlaceOrderRequest{
		Items: []api.OrderLine{{ItemID: f.milk.ID, Quantity: 1}},
	}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected FailedPrecondition for a frozen customer, got %v", err)
	}
}

func TestCancelOrder_And_Reject(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	ctx := context.Background()
	customer := env.orders(asCustomer(f.customer.ID))
	admin := env.orders(asAdmin())

	place := func() *api.Order {
		t.Helper()
		resp, err := customer.PlaceOrder(ctx, connect.NewRequest(&api.PlaceOrderRequest{
			Items: []api.OrderLine{{ItemID: f.curd.ID, Quantity: 2}},
		}))
		if err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
		return resp.Msg.Order
	}

	first := place()
	cancelled, err := customer.CancelOrder(ctx, connect.NewRequest(&api.CancelOrderRequest{ID: first.ID, Reason: "ordered twice"}))
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if cancelled.Msg.Order.Status != models.OrderCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Msg.Order.Status)
	}

	second := place()
	rejected, err := admin.RejectOrder(ctx, connect.NewRequest(&api.RejectOrderRequest{ID: second.ID, AdminNotes: "no delivery on Sunday"}))
	if err != nil {
		t.Fatalf("RejectOrder failed: %v", err)
	}
	if rejected.Msg.Order.Status != models.OrderRejected || rejected.Msg.Order.AdminNotes != "no delivery on Sunday" {
		t.Errorf("unexpected rejected order: %+v", rejected.Msg.Order)
	}

	_, err = customer.CancelOrder(ctx, connect.NewRequest(&api.CancelOrderRequest{ID: second.ID}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected FailedPrecondition cancelling a rejected order, got %v", err)
	}

	mine, err := customer.ListMyOrders(ctx, connect.NewRequest(&api.ListMyOrdersRequest{}))
	if err != nil {
		t.Fatalf("ListMyOrders failed: %v", err)
	}
	if len(mine.Msg.Orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(mine.Msg.Orders))
	}

	pending, err := admin.ListOrders(ctx, connect.NewRequest(&api.ListOrdersRequest{Status: models.OrderPending}))
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(pending.Msg.Orders) != 0 {
		t.Errorf("expected no pending orders, got %d", len(pending.Msg.Orders))
	}
}

func TestCancelOrder_OtherCustomer(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	ctx := context.Background()

	placed, err := env.orders(asCustomer(f.customer.ID)).PlaceOrder(ctx, connect.NewRequest(&api.PlaceOrderRequest{
		Items: []api.OrderLine{{ItemID: f.milk.ID, Quantity: 1}},
	}))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	_, err = env.orders(asCustomer("someone-else")).CancelOrder(ctx, connect.NewRequest(&api.CancelOrderRequest{ID: placed.Msg.Order.ID}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}
