package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/cache"
	"github.com/mmynk/milkagency/internal/metrics"
	"github.com/mmynk/milkagency/internal/middleware"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

// PaymentService records customer payments. Staff record any payment;
// customers report their own UPI transfers.
type PaymentService struct {
	apiconnect.UnimplementedPaymentServiceHandler
	store   storage.Store
	locker  cache.Locker
	cache   cache.Cache
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewPaymentService(store storage.Store, locker cache.Locker, c cache.Cache, m *metrics.Metrics) *PaymentService {
	return &PaymentService{store: store, locker: locker, cache: c, metrics: m, now: time.Now}
}

func (s *PaymentService) record(ctx context.Context, payment *models.CustomerPayment) (*api.RecordPaymentResponse, error) {
	unlock, err := lockCustomers(ctx, s.locker, payment.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	defer unlock()

	if err := s.store.RecordPayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "customer_id", payment.CustomerID, "transaction_id", payment.TransactionID, "error", err)
		return nil, connectError(err)
	}
	customer, err := s.store.GetCustomer(ctx, payment.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	payment.CustomerName = customer.Name

	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"customer_id", payment.CustomerID,
		"amount", payment.Amount,
		"method", payment.Method,
		"status", payment.Status,
	)
	if s.metrics != nil {
		s.metrics.PaymentsRecorded.WithLabelValues(payment.Method).Inc()
	}
	invalidateDashboard(ctx, s.cache, s.now())
	return &api.RecordPaymentResponse{Payment: toAPIPayment(payment), Due: customer.Due}, nil
}

// RecordPayment appends a payment to a customer's ledger. The
// transaction ID must be unique across all payments.
func (s *PaymentService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	slog.Info("RecordPayment request received", "customer_id", req.Msg.CustomerID, "amount", req.Msg.Amount)
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	resp, err := s.record(ctx, &models.CustomerPayment{
		CustomerID:    req.Msg.CustomerID,
		Amount:        req.Msg.Amount,
		TransactionID: req.Msg.TransactionID,
		Method:        req.Msg.Method,
		Status:        req.Msg.Status,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// RecordMyPayment lets a signed-in customer report a UPI transfer.
func (s *PaymentService) RecordMyPayment(ctx context.Context, req *connect.Request[api.RecordMyPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	if err := requireCustomer(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	resp, err := s.record(ctx, &models.CustomerPayment{
		CustomerID:    middleware.GetUserID(ctx),
		Amount:        req.Msg.Amount,
		TransactionID: req.Msg.TransactionID,
		Method:        models.MethodUPI,
		Status:        req.Msg.Status,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, req *connect.Request[api.UpdatePaymentStatusRequest]) (*connect.Response[api.UpdatePaymentStatusResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	existing, err := s.store.GetPayment(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}

	unlock, err := lockCustomers(ctx, s.locker, existing.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	defer unlock()

	payment, err := s.store.UpdatePaymentStatus(ctx, req.Msg.ID, req.Msg.Status)
	if err != nil {
		return nil, connectError(err)
	}
	customer, err := s.store.GetCustomer(ctx, payment.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Payment status changed", "payment_id", payment.ID, "from", existing.Status, "to", payment.Status)
	invalidateDashboard(ctx, s.cache, s.now())
	return connect.NewResponse(&api.UpdatePaymentStatusResponse{Payment: toAPIPayment(payment), Due: customer.Due}), nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	existing, err := s.store.GetPayment(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}

	unlock, err := lockCustomers(ctx, s.locker, existing.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	defer unlock()

	if err := s.store.DeletePayment(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	customer, err := s.store.GetCustomer(ctx, existing.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Payment deleted", "payment_id", existing.ID, "customer_id", existing.CustomerID, "amount", existing.Amount)
	invalidateDashboard(ctx, s.cache, s.now())
	return connect.NewResponse(&api.DeletePaymentResponse{Due: customer.Due}), nil
}

// ListPayments returns payments newest first. Customers only see their own.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	filter := models.PaymentFilter{
		CustomerID:    ownerOr(ctx, req.Msg.CustomerID),
		TransactionID: req.Msg.TransactionID,
		Limit:         req.Msg.Limit,
	}
	if !isCustomer(ctx) {
		filter.Customer = req.Msg.Customer
	}
	payments, err := s.store.ListPayments(ctx, filter)
	if err != nil {
		slog.Error("ListPayments failed", "error", err)
		return nil, connectError(err)
	}
	out := make([]*api.Payment, len(payments))
	for i, p := range payments {
		out[i] = toAPIPayment(p)
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}
