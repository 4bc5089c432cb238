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

// BillService writes and reads invoices. Writes are staff only and
// serialized per customer; customers may read their own bills.
type BillService struct {
	apiconnect.UnimplementedBillServiceHandler
	store   storage.Store
	locker  cache.Locker
	cache   cache.Cache
	metrics *metrics.Metrics
	archive *InvoiceArchive
	now     func() time.Time
}

// NewBillService creates a BillService. archive may be nil, in which
// case PDFs are only rendered on download.
func NewBillService(store storage.Store, locker cache.Locker, c cache.Cache, m *metrics.Metrics, archive *InvoiceArchive) *BillService {
	return &BillService{store: store, locker: locker, cache: c, metrics: m, archive: archive, now: time.Now}
}

func (s *BillService) customerName(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	c, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		return ""
	}
	return c.Name
}

// afterWrite runs the side effects that must not fail the write itself.
func (s *BillService) afterWrite(ctx context.Context, action string, bill *models.Bill) {
	if s.metrics != nil {
		s.metrics.BillsWritten.WithLabelValues(action).Inc()
		if action == "create" {
			s.metrics.BillAmount.Add(bill.TotalAmount.InexactFloat64())
		}
	}
	invalidateDashboard(ctx, s.cache, s.now(), bill.InvoiceDate)
	if s.archive != nil && bill.DeletedAt == 0 {
		if err := s.archive.Archive(ctx, bill); err != nil {
			slog.Warn("Failed to archive invoice", "bill_id", bill.ID, "error", err)
		}
	}
}

func warnNegativeStock(ctx context.Context, store storage.Store, bill *models.Bill) {
	for _, line := range bill.Items {
		item, err := store.GetItem(ctx, line.ItemID)
		if err != nil {
			continue
		}
		if item.StockQuantity < 0 {
			slog.Warn("Stock is negative after billing", "item_id", item.ID, "item", item.Name, "stock", item.StockQuantity)
		}
	}
}

// CreateBill writes a new invoice, debits stock, settles any open
// commission and records the counter payment.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	slog.Info("CreateBill request received", "customer_id", req.Msg.CustomerID, "lines", len(req.Msg.Lines))
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	input, err := toBillInput(req.Msg.BillFields)
	if err != nil {
		return nil, err
	}
	if input.InvoiceDate.IsZero() {
		input.InvoiceDate = s.now()
	}

	unlock, err := lockCustomers(ctx, s.locker, input.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	bill, err := s.store.CreateBill(ctx, input)
	unlock()
	if err != nil {
		slog.Error("CreateBill failed", "customer_id", input.CustomerID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Bill created",
		"bill_id", bill.ID,
		"invoice", bill.InvoiceNumber,
		"total", bill.TotalAmount,
		"commission", bill.CommissionDeducted,
	)
	warnNegativeStock(ctx, s.store, bill)
	s.afterWrite(ctx, "create", bill)

	return connect.NewResponse(&api.CreateBillResponse{Bill: toAPIBill(bill, s.customerName(ctx, bill.CustomerID))}), nil
}

// UpdateBill replaces a bill's lines and counter payment. Both the old
// and the new customer are locked when the bill changes hands.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	slog.Info("UpdateBill request received", "bill_id", req.Msg.ID)
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	input, err := toBillInput(req.Msg.BillFields)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetBill(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	if existing.DeletedAt != 0 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, storage.ErrInvalidState)
	}
	if input.InvoiceDate.IsZero() {
		input.InvoiceDate = existing.InvoiceDate
	}

	unlock, err := lockCustomers(ctx, s.locker, existing.CustomerID, input.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	bill, err := s.store.UpdateBill(ctx, req.Msg.ID, input)
	unlock()
	if err != nil {
		slog.Error("UpdateBill failed", "bill_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Bill updated", "bill_id", bill.ID, "invoice", bill.InvoiceNumber, "total", bill.TotalAmount)
	warnNegativeStock(ctx, s.store, bill)
	invalidateDashboard(ctx, s.cache, existing.InvoiceDate)
	s.afterWrite(ctx, "update", bill)

	return connect.NewResponse(&api.UpdateBillResponse{Bill: toAPIBill(bill, s.customerName(ctx, bill.CustomerID))}), nil
}

// DeleteBill soft-deletes a bill, restoring stock and the customer's due.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	existing, err := s.store.GetBill(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}

	unlock, err := lockCustomers(ctx, s.locker, existing.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	err = s.store.DeleteBill(ctx, req.Msg.ID)
	unlock()
	if err != nil {
		slog.Error("DeleteBill failed", "bill_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Bill deleted", "bill_id", existing.ID, "invoice", existing.InvoiceNumber)
	existing.DeletedAt = s.now().Unix()
	s.afterWrite(ctx, "delete", existing)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	bill, err := s.store.GetBill(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	if isCustomer(ctx) && (bill.CustomerID != middleware.GetUserID(ctx) || bill.DeletedAt != 0) {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(bill, s.customerName(ctx, bill.CustomerID))}), nil
}

// ListBills returns bills newest first. Customers only see their own.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	from, err := parseDate("from", req.Msg.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.Msg.To)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBills(ctx, models.BillFilter{
		CustomerID: ownerOr(ctx, req.Msg.CustomerID),
		From:       from,
		To:         to,
		Limit:      req.Msg.Limit,
		Offset:     req.Msg.Offset,
	})
	if err != nil {
		slog.Error("ListBills failed", "error", err)
		return nil, connectError(err)
	}

	names := make(map[string]string)
	out := make([]*api.Bill, len(bills))
	for i, b := range bills {
		name, ok := names[b.CustomerID]
		if !ok {
			name = s.customerName(ctx, b.CustomerID)
			names[b.CustomerID] = name
		}
		out[i] = toAPIBill(b, name)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}
