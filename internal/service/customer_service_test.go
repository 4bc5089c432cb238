package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

func TestCreateCustomer_And_GetCustomer(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	client := env.customers(asAdmin())
	ctx := context.Background()

	created, err := client.CreateCustomer(ctx, connect.NewRequest(&api.CreateCustomerRequest{
		CustomerProfile: api.CustomerProfile{
			Phone:          "98765 43210",
			Name:           "Lakshmi",
			ShopName:       "Lakshmi Dairy",
			Area:           "Ameerpet",
			PinCode:        "500016",
			IsCommissioned: true,
		},
		OpeningDue: dec("450"),
		Password:   "portal-pass",
	}))
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	c := created.Msg.Customer
	if c.Phone != "+919876543210" {
		t.Errorf("phone = %q, want normalized +919876543210", c.Phone)
	}
	if !c.Due.Equal(dec("450")) {
		t.Errorf("due = %s, want 450", c.Due)
	}
	if !c.HasPassword {
		t.Error("expected HasPassword after creating with a password")
	}

	got, err := client.GetCustomer(ctx, connect.NewRequest(&api.GetCustomerRequest{ID: c.ID}))
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if got.Msg.Customer.Name != "Lakshmi" {
		t.Errorf("name = %q, want Lakshmi", got.Msg.Customer.Name)
	}
}

func TestCreateCustomer_InvalidPhone(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := env.customers(asAdmin()).CreateCustomer(context.Background(), connect.NewRequest(&api.CreateCustomerRequest{
		CustomerProfile: api.CustomerProfile{Phone: "12", Name: "Nobody"},
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestCreateCustomer_DuplicatePhone(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	env.seed(t, "0", false)

	_, err := env.customers(asAdmin()).CreateCustomer(context.Background(), connect.NewRequest(&api.CreateCustomerRequest{
		CustomerProfile: api.CustomerProfile{Phone: "+919876543210", Name: "Copy"},
	}))
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestUpdateCustomer_KeepsBalances(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "300", false)

	resp, err := env.customers(asAdmin()).UpdateCustomer(context.Background(), connect.NewRequest(&api.UpdateCustomerRequest{
		ID: f.customer.ID,
		CustomerProfile: api.CustomerProfile{
			Phone:    f.customer.Phone,
			Name:     "Ravi Kumar",
			ShopName: "Ravi Super Stores",
			Area:     "Miyapur",
		},
	}))
	if err != nil {
		t.Fatalf("UpdateCustomer failed: %v", err)
	}
	if resp.Msg.Customer.Area != "Miyapur" {
		t.Errorf("area = %q, want Miyapur", resp.Msg.Customer.Area)
	}
	if !resp.Msg.Customer.OpeningDue.Equal(dec("300")) {
		t.Errorf("opening due = %s, want 300", resp.Msg.Customer.OpeningDue)
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := env.customers(asAdmin()).GetCustomer(context.Background(), connect.NewRequest(&api.GetCustomerRequest{ID: "missing"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestListCustomers_Frozen(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "0", false)
	client := env.customers(asAdmin())
	ctx := context.Background()

	if _, err := client.SetCustomerFrozen(ctx, connect.NewRequest(&api.SetCustomerFrozenRequest{ID: f.customer.ID, Frozen: true})); err != nil {
		t.Fatalf("SetCustomerFrozen failed: %v", err)
	}

	active, err := client.ListCustomers(ctx, connect.NewRequest(&api.ListCustomersRequest{}))
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(active.Msg.Customers) != 0 {
		t.Errorf("expected frozen customer to be hidden, got %d", len(active.Msg.Customers))
	}

	all, err := client.ListCustomers(ctx, connect.NewRequest(&api.ListCustomersRequest{IncludeFrozen: true}))
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(all.Msg.Customers) != 1 || !all.Msg.Customers[0].Frozen {
		t.Errorf("expected one frozen customer, got %+v", all.Msg.Customers)
	}
}

func TestSetOpeningDue(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "100", false)

	resp, err := env.customers(asAdmin()).SetOpeningDue(context.Background(), connect.NewRequest(&api.SetOpeningDueRequest{
		ID:         f.customer.ID,
		OpeningDue: dec("750"),
	}))
	if err != nil {
		t.Fatalf("SetOpeningDue failed: %v", err)
	}
	if !resp.Msg.Customer.Due.Equal(dec("750")) {
		t.Errorf("due = %s, want 750", resp.Msg.Customer.Due)
	}
}

func TestGetStatement(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	f := env.seed(t, "500", false)
	ctx := context.Background()

	// One bill before the month and one inside it.
	for _, date := range []string{"2025-02-20", "2025-03-10"} {
		_, err := env.bills(asAdmin()).CreateBill(ctx, connect.NewRequest(&api.CreateBillRequest{BillFields: api.BillFields{
			CustomerID:  f.customer.ID,
			InvoiceDate: date,
			Lines:       []api.BillLine{{ItemID: f.milk.ID, Quantity: 2}},
		}}))
		if err != nil {
			t.Fatalf("CreateBill %s failed: %v", date, err)
		}
	}

	resp, err := env.customers(asAdmin()).GetStatement(ctx, connect.NewRequest(&api.GetStatementRequest{
		CustomerID: f.customer.ID,
		Year:       2025,
		Month:      3,
	}))
	if err != nil {
		t.Fatalf("GetStatement failed: %v", err)
	}
	if !resp.Msg.OpeningDue.Equal(dec("700")) {
		t.Errorf("opening due = %s, want 700", resp.Msg.OpeningDue)
	}
	if !resp.Msg.InvoiceTotal.Equal(dec("200")) {
		t.Errorf("invoice total = %s, want 200", resp.Msg.InvoiceTotal)
	}
	if !resp.Msg.ClosingDue.Equal(dec("900")) {
		t.Errorf("closing due = %s, want 900", resp.Msg.ClosingDue)
	}
	if len(resp.Msg.Bills) != 1 {
		t.Errorf("expected 1 bill in March, got %d", len(resp.Msg.Bills))
	}
}

func TestGetStatement_ValidatesMonth(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := env.customers(asAdmin()).GetStatement(context.Background(), connect.NewRequest(&api.GetStatementRequest{
		CustomerID: "c1",
		Year:       time.Now().Year(),
		Month:      13,
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}
