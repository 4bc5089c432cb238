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

// OrderService handles portal orders: customers place and cancel them,
// staff approve them into bills or reject them.
type OrderService struct {
	apiconnect.UnimplementedOrderServiceHandler
	store   storage.Store
	locker  cache.Locker
	cache   cache.Cache
	metrics *metrics.Metrics
	archive *InvoiceArchive
	now     func() time.Time
}

func NewOrderService(store storage.Store, locker cache.Locker, c cache.Cache, m *metrics.Metrics, archive *InvoiceArchive) *OrderService {
	return &OrderService{store: store, locker: locker, cache: c, metrics: m, archive: archive, now: time.Now}
}

func (s *OrderService) customerName(ctx context.Context, id string) string {
	c, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		return ""
	}
	return c.Name
}

// PlaceOrder creates a pending order at current selling prices. Lines
// with zero quantity are dropped.
func (s *OrderService) PlaceOrder(ctx context.Context, req *connect.Request[api.PlaceOrderRequest]) (*connect.Response[api.PlaceOrderResponse], error) {
	if err := requireCustomer(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	delivery, err := parseDate("delivery_date", req.Msg.DeliveryDate)
	if err != nil {
		return nil, err
	}

	order := &models.CustomerOrder{
		CustomerID:      middleware.GetUserID(ctx),
		DeliveryDate:    delivery,
		DeliveryAddress: req.Msg.DeliveryAddress,
		Notes:           req.Msg.Notes,
	}
	for _, line := range req.Msg.Items {
		order.Items = append(order.Items, models.CustomerOrderItem{
			ItemID:            line.ItemID,
			RequestedQuantity: line.Quantity,
		})
	}
	if err := s.store.PlaceOrder(ctx, order); err != nil {
		slog.Error("PlaceOrder failed", "customer_id", order.CustomerID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Order placed", "order_id", order.ID, "order_number", order.OrderNumber, "total", order.TotalAmount)
	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
	}
	invalidateDashboard(ctx, s.cache, s.now())
	return connect.NewResponse(&api.PlaceOrderResponse{Order: toAPIOrder(order, s.customerName(ctx, order.CustomerID))}), nil
}

func (s *OrderService) list(ctx context.Context, filter models.OrderFilter) ([]*api.Order, error) {
	orders, err := s.store.ListOrders(ctx, filter)
	if err != nil {
		return nil, connectError(err)
	}
	names := make(map[string]string)
	out := make([]*api.Order, len(orders))
	for i, o := range orders {
		name, ok := names[o.CustomerID]
		if !ok {
			name = s.customerName(ctx, o.CustomerID)
			names[o.CustomerID] = name
		}
		out[i] = toAPIOrder(o, name)
	}
	return out, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, req *connect.Request[api.ListMyOrdersRequest]) (*connect.Response[api.ListMyOrdersResponse], error) {
	if err := requireCustomer(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	orders, err := s.list(ctx, models.OrderFilter{
		CustomerID: middleware.GetUserID(ctx),
		Status:     req.Msg.Status,
		Limit:      req.Msg.Limit,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListMyOrdersResponse{Orders: orders}), nil
}

func (s *OrderService) ListOrders(ctx context.Context, req *connect.Request[api.ListOrdersRequest]) (*connect.Response[api.ListOrdersResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	orders, err := s.list(ctx, models.OrderFilter{
		CustomerID: req.Msg.CustomerID,
		Status:     req.Msg.Status,
		Limit:      req.Msg.Limit,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListOrdersResponse{Orders: orders}), nil
}

// ApproveOrder bills a pending order. Lines without an approval are
// billed as requested; a zero approved quantity drops the line.
func (s *OrderService) ApproveOrder(ctx context.Context, req *connect.Request[api.ApproveOrderRequest]) (*connect.Response[api.ApproveOrderResponse], error) {
	slog.Info("ApproveOrder request received", "order_id", req.Msg.ID, "approvals", len(req.Msg.Approvals))
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	existing, err := s.store.GetOrder(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}

	approvals := make([]models.OrderApproval, len(req.Msg.Approvals))
	for i, a := range req.Msg.Approvals {
		approvals[i] = models.OrderApproval{ItemID: a.ItemID, Quantity: a.Quantity, Price: a.Price, Discount: a.Discount}
	}

	unlock, err := lockCustomers(ctx, s.locker, existing.CustomerID)
	if err != nil {
		return nil, connectError(err)
	}
	bill, err := s.store.ApproveOrder(ctx, req.Msg.ID, approvals, req.Msg.AdminNotes)
	unlock()
	if err != nil {
		slog.Error("ApproveOrder failed", "order_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	order, err := s.store.GetOrder(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Order approved", "order_id", order.ID, "bill_id", bill.ID, "invoice", bill.InvoiceNumber)

	if s.metrics != nil {
		s.metrics.BillsWritten.WithLabelValues("create").Inc()
		s.metrics.BillAmount.Add(bill.TotalAmount.InexactFloat64())
	}
	warnNegativeStock(ctx, s.store, bill)
	invalidateDashboard(ctx, s.cache, s.now(), bill.InvoiceDate)
	if s.archive != nil {
		if err := s.archive.Archive(ctx, bill); err != nil {
			slog.Warn("Failed to archive invoice", "bill_id", bill.ID, "error", err)
		}
	}

	name := s.customerName(ctx, order.CustomerID)
	return connect.NewResponse(&api.ApproveOrderResponse{
		Order: toAPIOrder(order, name),
		Bill:  toAPIBill(bill, name),
	}), nil
}

func (s *OrderService) RejectOrder(ctx context.Context, req *connect.Request[api.RejectOrderRequest]) (*connect.Response[api.RejectOrderResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	order, err := s.store.SetOrderStatus(ctx, req.Msg.ID, []string{models.OrderPending}, models.OrderRejected, req.Msg.AdminNotes)
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Order rejected", "order_id", order.ID, "order_number", order.OrderNumber)
	invalidateDashboard(ctx, s.cache, s.now())
	return connect.NewResponse(&api.RejectOrderResponse{Order: toAPIOrder(order, s.customerName(ctx, order.CustomerID))}), nil
}

// CancelOrder withdraws a customer's own pending order.
func (s *OrderService) CancelOrder(ctx context.Context, req *connect.Request[api.CancelOrderRequest]) (*connect.Response[api.CancelOrderResponse], error) {
	if err := requireCustomer(ctx); err != nil {
		return nil, err
	}
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	existing, err := s.store.GetOrder(ctx, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	if existing.CustomerID != middleware.GetUserID(ctx) {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}

	order, err := s.store.SetOrderStatus(ctx, req.Msg.ID, []string{models.OrderPending}, models.OrderCancelled, "")
	if err != nil {
		return nil, connectError(err)
	}
	slog.Info("Order cancelled", "order_id", order.ID, "order_number", order.OrderNumber, "reason", req.Msg.Reason)
	invalidateDashboard(ctx, s.cache, s.now())
	return connect.NewResponse(&api.CancelOrderResponse{Order: toAPIOrder(order, s.customerName(ctx, order.CustomerID))}), nil
}
