package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

// CustomerService manages customer profiles and their ledgers. Staff only.
type CustomerService struct {
	apiconnect.UnimplementedCustomerServiceHandler
	store  storage.Store
	region string
}

// NewCustomerService creates a CustomerService. region is the default
// phone region for onboarding.
func NewCustomerService(store storage.Store, region string) *CustomerService {
	return &CustomerService{store: store, region: region}
}

func (s *CustomerService) normalizePhone(raw string) (string, error) {
	phone, err := auth.NormalizePhone(raw, s.region)
	if err != nil {
		return "", connect.NewError(connect.CodeInvalidArgument, err)
	}
	return phone, nil
}

// CreateCustomer onboards a customer with an opening balance.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *connect.Request[api.CreateCustomerRequest]) (*connect.Response[api.CreateCustomerResponse], error) {
	slog.Info("CreateCustomer request received", "name", req.Msg.Name, "phone", req.Msg.Phone)
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	phone, err := s.normalizePhone(req.Msg.Phone)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{Phone: phone, OpeningDue: req.Msg.OpeningDue}
	applyProfile(customer, req.Msg.CustomerProfile)
	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		slog.Error("CreateCustomer failed", "phone", phone, "error", err)
		return nil, connectError(err)
	}

	if req.Msg.Password != "" {
		hash, err := auth.HashPassword(req.Msg.Password)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		if err := s.store.SetCustomerPasswordHash(ctx, customer.ID, hash); err != nil {
			return nil, connectError(err)
		}
		customer.PasswordHash = hash
	}

	slog.Info("Customer created", "customer_id", customer.ID)
	return connect.NewResponse(&api.CreateCustomerResponse{Customer: toAPICustomer(customer)}), nil
}

// UpdateCustomer rewrites the profile. Balances are untouched.
func (s *CustomerService) UpdateCustomer(ctx context.Context, req *connect.Request[api.UpdateCustomerRequest]) (*connect.Response[api.UpdateCustomerResponse], error) {
	slog.Info("UpdateCustomer request received", "customer_id", req.Msg.ID)
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	phone, err := s.normalizePhone(req.Msg.Phone)
	if err != nil {
		return nil, err
	}

	customer, err := s.store.GetCustomer(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	customer.Phone = phone
	applyProfile(customer, req.Msg.CustomerProfile)
	if err := s.store.UpdateCustomer(ctx, customer); err != nil {
		slog.Error("UpdateCustomer failed", "customer_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.UpdateCustomerResponse{Customer: toAPICustomer(customer)}), nil
}

// GetCustomer returns the customer with due recomputed from the ledger.
func (s *CustomerService) GetCustomer(ctx context.Context, req *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.GetCustomerResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	due, err := s.store.RecomputeDue(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	customer, err := s.store.GetCustomer(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	customer.Due = due
	return connect.NewResponse(&api.GetCustomerResponse{Customer: toAPICustomer(customer)}), nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, req *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error) {
	customers, err := s.store.ListCustomers(ctx, models.CustomerFilter{
		Area:          req.Msg.Area,
		Search:        req.Msg.Search,
		IncludeFrozen: req.Msg.IncludeFrozen,
	})
	if err != nil {
		slog.Error("ListCustomers failed", "error", err)
		return nil, connectError(err)
	}
	out := make([]*api.Customer, len(customers))
	for i, c := range customers {
		out[i] = toAPICustomer(c)
	}
	return connect.NewResponse(&api.ListCustomersResponse{Customers: out}), nil
}

// SetCustomerFrozen blocks or unblocks new bills and orders for a customer.
func (s *CustomerService) SetCustomerFrozen(ctx context.Context, req *connect.Request[api.SetCustomerFrozenRequest]) (*connect.Response[api.SetCustomerFrozenResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.SetCustomerFrozen(ctx, req.Msg.ID, req.Msg.Frozen); err != nil {
		return nil, connectError(err)
	}
	customer, err := s.store.GetCustomer(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Customer frozen state changed", "customer_id", customer.ID, "frozen", customer.Frozen)
	return connect.NewResponse(&api.SetCustomerFrozenResponse{Customer: toAPICustomer(customer)}), nil
}

// SetCustomerPassword resets a customer's portal password.
func (s *CustomerService) SetCustomerPassword(ctx context.Context, req *connect.Request[api.SetCustomerPasswordRequest]) (*connect.Response[api.SetCustomerPasswordResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Msg.Password)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := s.store.SetCustomerPasswordHash(ctx, req.Msg.ID, hash); err != nil {
		return nil, connectError(err)
	}
	slog.Info("Customer password reset", "customer_id", req.Msg.ID)
	return connect.NewResponse(&api.SetCustomerPasswordResponse{}), nil
}

// SetOpeningDue corrects the carried-over balance; due follows.
func (s *CustomerService) SetOpeningDue(ctx context.Context, req *connect.Request[api.SetOpeningDueRequest]) (*connect.Response[api.SetOpeningDueResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	customer, err := s.store.SetOpeningDue(ctx, req.Msg.ID, req.Msg.OpeningDue)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Opening due changed", "customer_id", customer.ID, "opening_due", customer.OpeningDue, "due", customer.Due)
	return connect.NewResponse(&api.SetOpeningDueResponse{Customer: toAPICustomer(customer)}), nil
}

// GetStatement derives a month's view from the all-time ledger: the
// opening is the due before the month, the closing the due after it.
func (s *CustomerService) GetStatement(ctx context.Context, req *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	customer, err := s.store.GetCustomer(ctx, req.Msg.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}

	start := time.Date(req.Msg.Year, time.Month(req.Msg.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	opening, err := s.store.DueAsOf(ctx, customer.ID, start)
	if err != nil {
		return nil, connectError(err)
	}

	bills, err := s.store.ListBills(ctx, models.BillFilter{CustomerID: customer.ID, From: start, To: end.AddDate(0, 0, -1)})
	if err != nil {
		return nil, connectError(err)
	}
	payments, err := s.store.ListPayments(ctx, models.PaymentFilter{CustomerID: customer.ID})
	if err != nil {
		return nil, connectError(err)
	}

	resp := &api.GetStatementResponse{
		Customer: toAPICustomer(customer),
		Year:     req.Msg.Year,
		Month:    req.Msg.Month,
	}
	billsForDue := make([]calculator.BillForDue, 0, len(bills))
	for _, b := range bills {
		billsForDue = append(billsForDue, calculator.BillForDue{TotalAmount: b.TotalAmount})
		resp.Bills = append(resp.Bills, toAPIBill(b, customer.Name))
	}
	var paymentsForDue []calculator.PaymentForDue
	for _, p := range payments {
		if p.CreatedAt < start.Unix() || p.CreatedAt >= end.Unix() {
			continue
		}
		paymentsForDue = append(paymentsForDue, calculator.PaymentForDue{
			Amount:  p.Amount,
			Success: p.Status == models.PaymentSuccess,
		})
		resp.Payments = append(resp.Payments, toAPIPayment(p))
	}

	st := calculator.BuildStatement(opening, billsForDue, paymentsForDue)
	resp.OpeningDue = st.OpeningDue
	resp.InvoiceTotal = st.InvoiceTotal
	resp.PaidTotal = st.PaidTotal
	resp.ClosingDue = st.ClosingDue
	return connect.NewResponse(resp), nil
}

