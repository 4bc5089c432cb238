package apiconnect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/pkg/api"
)

type echoPayments struct {
	UnimplementedPaymentServiceHandler
}

func (echoPayments) RecordPayment(_ context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return connect.NewResponse(&api.RecordPaymentResponse{
		Payment: &api.Payment{
			CustomerID:    req.Msg.CustomerID,
			Amount:        req.Msg.Amount,
			TransactionID: req.Msg.TransactionID,
		},
		Due: decimal.RequireFromString("1300.50"),
	}), nil
}

func TestJSONRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(NewPaymentServiceHandler(echoPayments{}))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewPaymentServiceClient(http.DefaultClient, server.URL)
	resp, err := client.RecordPayment(context.Background(), connect.NewRequest(&api.RecordPaymentRequest{
		CustomerID:    "c1",
		Amount:        decimal.RequireFromString("200.25"),
		TransactionID: "UPI-1",
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if !resp.Msg.Payment.Amount.Equal(decimal.RequireFromString("200.25")) {
		t.Errorf("amount = %s, want 200.25", resp.Msg.Payment.Amount)
	}
	if !resp.Msg.Due.Equal(decimal.RequireFromString("1300.50")) {
		t.Errorf("due = %s, want 1300.50", resp.Msg.Due)
	}

	_, err = client.DeletePayment(context.Background(), connect.NewRequest(&api.DeletePaymentRequest{ID: "p1"}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Errorf("expected Unimplemented, got %v", err)
	}
}

func TestUnknownProcedure(t *testing.T) {
	path, handler := NewPaymentServiceHandler(echoPayments{})
	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Post(server.URL+path+"Nope", "application/json", nil)
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
