package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/cache"
	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/metrics"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

// CommissionService computes monthly retailer commissions from billed
// volume. The record it writes is settled by the customer's next bill.
type CommissionService struct {
	apiconnect.UnimplementedCommissionServiceHandler
	store   storage.Store
	locker  cache.Locker
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCommissionService(store storage.Store, locker cache.Locker, m *metrics.Metrics) *CommissionService {
	return &CommissionService{store: store, locker: locker, metrics: m, now: time.Now}
}

// ClosedMonth is the outcome of closing one month.
type ClosedMonth struct {
	Year        int
	Month       int
	Commissions []*models.MonthlyCommission
	Skipped     int
}

// compute writes the commission record for one customer and month.
func (s *CommissionService) compute(ctx context.Context, customerID string, year, month int, volume models.MonthlyVolume) (*models.MonthlyCommission, calculator.CommissionBreakdown, error) {
	b := calculator.MonthlyCommission(volume.MilkLiters, volume.CurdLiters, calculator.DaysIn(year, month))
	record := &models.MonthlyCommission{
		CustomerID:       customerID,
		Year:             year,
		Month:            month,
		MilkVolume:       b.AvgMilk.Round(2),
		CurdVolume:       b.AvgCurd.Round(2),
		TotalVolume:      b.AvgTotal.Round(2),
		MilkCommission:   b.MilkCommission,
		CurdCommission:   b.CurdCommission,
		CommissionAmount: b.TotalCommission,
	}

	unlock, err := lockCustomers(ctx, s.locker, customerID)
	if err != nil {
		return nil, b, err
	}
	defer unlock()
	if err := s.store.UpsertCommission(ctx, record); err != nil {
		return nil, b, err
	}
	if s.metrics != nil {
		s.metrics.CommissionsClosed.Inc()
	}
	return record, b, nil
}

// Close computes commissions for every commissioned customer with
// volume in the month. Customers without volume and months already
// settled are skipped.
func (s *CommissionService) Close(ctx context.Context, year, month int) (*ClosedMonth, error) {
	customers, err := s.store.ListCustomers(ctx, models.CustomerFilter{IncludeFrozen: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	result := &ClosedMonth{Year: year, Month: month}
	for _, c := range customers {
		if !c.IsCommissioned {
			continue
		}
		volume, err := s.store.VolumesFor(ctx, c.ID, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to sum volume for %s: %w", c.ID, err)
		}
		if volume.MilkLiters.IsZero() && volume.CurdLiters.IsZero() {
			result.Skipped++
			continue
		}

		record, _, err := s.compute(ctx, c.ID, year, month, volume)
		if errors.Is(err, storage.ErrAlreadyDeducted) {
			slog.Debug("Commission already settled", "customer_id", c.ID, "year", year, "month", month)
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to compute commission for %s: %w", c.ID, err)
		}
		result.Commissions = append(result.Commissions, record)
	}

	slog.Info("Commission month closed",
		"year", year,
		"month", month,
		"computed", len(result.Commissions),
		"skipped", result.Skipped,
	)
	return result, nil
}

// ComputeCommission recomputes one customer's month on demand.
func (s *CommissionService) ComputeCommission(ctx context.Context, req *connect.Request[api.ComputeCommissionRequest]) (*connect.Response[api.ComputeCommissionResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	customer, err := s.store.GetCustomer(ctx, req.Msg.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	if !customer.IsCommissioned {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("customer %s is not commissioned", customer.Name))
	}

	volume, err := s.store.VolumesFor(ctx, customer.ID, req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, connectError(err)
	}
	record, b, err := s.compute(ctx, customer.ID, req.Msg.Year, req.Msg.Month, volume)
	if err != nil {
		slog.Error("ComputeCommission failed", "customer_id", customer.ID, "error", err)
		return nil, connectError(err)
	}
	slog.Info("Commission computed", "customer_id", customer.ID, "amount", record.CommissionAmount)
	return connect.NewResponse(&api.ComputeCommissionResponse{
		Commission: toAPICommission(record, customer.Name),
		Breakdown:  toAPIBreakdown(b),
	}), nil
}

// CloseMonth closes the given month, or the previous one when unset.
func (s *CommissionService) CloseMonth(ctx context.Context, req *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	year, month := req.Msg.Year, req.Msg.Month
	if year == 0 || month == 0 {
		year, month = calculator.PreviousMonth(s.now())
	}

	closed, err := s.Close(ctx, year, month)
	if err != nil {
		return nil, connectError(err)
	}
	resp := &api.CloseMonthResponse{Year: closed.Year, Month: closed.Month, Skipped: closed.Skipped}
	names := s.customerNames(ctx)
	for _, c := range closed.Commissions {
		resp.Commissions = append(resp.Commissions, toAPICommission(c, names[c.CustomerID]))
	}
	return connect.NewResponse(resp), nil
}

func (s *CommissionService) customerNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	customers, err := s.store.ListCustomers(ctx, models.CustomerFilter{IncludeFrozen: true})
	if err != nil {
		slog.Warn("Failed to load customer names", "error", err)
		return names
	}
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return names
}

func (s *CommissionService) ListCommissions(ctx context.Context, req *connect.Request[api.ListCommissionsRequest]) (*connect.Response[api.ListCommissionsResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	commissions, err := s.store.ListCommissions(ctx, models.CommissionFilter{
		CustomerID: req.Msg.CustomerID,
		Year:       req.Msg.Year,
		Month:      req.Msg.Month,
		OnlyOpen:   req.Msg.OnlyOpen,
	})
	if err != nil {
		return nil, connectError(err)
	}
	names := s.customerNames(ctx)
	out := make([]*api.Commission, len(commissions))
	for i, c := range commissions {
		out[i] = toAPICommission(c, names[c.CustomerID])
	}
	return connect.NewResponse(&api.ListCommissionsResponse{Commissions: out}), nil
}

// PreviewCommission evaluates the slab tables without touching storage.
func (s *CommissionService) PreviewCommission(ctx context.Context, req *connect.Request[api.PreviewCommissionRequest]) (*connect.Response[api.PreviewCommissionResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	b := calculator.MonthlyCommission(req.Msg.MilkLiters, req.Msg.CurdLiters, req.Msg.Days)
	return connect.NewResponse(&api.PreviewCommissionResponse{Breakdown: toAPIBreakdown(b)}), nil
}
