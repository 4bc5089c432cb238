package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// OrderServiceName is the fully-qualified name of the OrderService service.
const OrderServiceName = "milkagency.v1.OrderService"

const (
	OrderServicePlaceOrderProcedure   = "/" + OrderServiceName + "/PlaceOrder"
	OrderServiceListMyOrdersProcedure = "/" + OrderServiceName + "/ListMyOrders"
	OrderServiceListOrdersProcedure   = "/" + OrderServiceName + "/ListOrders"
	OrderServiceApproveOrderProcedure = "/" + OrderServiceName + "/ApproveOrder"
	OrderServiceRejectOrderProcedure  = "/" + OrderServiceName + "/RejectOrder"
	OrderServiceCancelOrderProcedure  = "/" + OrderServiceName + "/CancelOrder"
)

// OrderServiceClient is a client for the milkagency.v1.OrderService service.
type OrderServiceClient interface {
	PlaceOrder(context.Context, *connect.Request[api.PlaceOrderRequest]) (*connect.Response[api.PlaceOrderResponse], error)
	ListMyOrders(context.Context, *connect.Request[api.ListMyOrdersRequest]) (*connect.Response[api.ListMyOrdersResponse], error)
	ListOrders(context.Context, *connect.Request[api.ListOrdersRequest]) (*connect.Response[api.ListOrdersResponse], error)
	ApproveOrder(context.Context, *connect.Request[api.ApproveOrderRequest]) (*connect.Response[api.ApproveOrderResponse], error)
	RejectOrder(context.Context, *connect.Request[api.RejectOrderRequest]) (*connect.Response[api.RejectOrderResponse], error)
	CancelOrder(context.Context, *connect.Request[api.CancelOrderRequest]) (*connect.Response[api.CancelOrderResponse], error)
}

// NewOrderServiceClient constructs a client for the milkagency.v1.OrderService service. The
// JSON codec is always installed.
func NewOrderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) OrderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &orderServiceClient{
		placeOrder:   connect.NewClient[api.PlaceOrderRequest, api.PlaceOrderResponse](httpClient, baseURL+OrderServicePlaceOrderProcedure, opts...),
		listMyOrders: connect.NewClient[api.ListMyOrdersRequest, api.ListMyOrdersResponse](httpClient, baseURL+OrderServiceListMyOrdersProcedure, opts...),
		listOrders:   connect.NewClient[api.ListOrdersRequest, api.ListOrdersResponse](httpClient, baseURL+OrderServiceListOrdersProcedure, opts...),
		approveOrder: connect.NewClient[api.ApproveOrderRequest, api.ApproveOrderResponse](httpClient, baseURL+OrderServiceApproveOrderProcedure, opts...),
		rejectOrder:  connect.NewClient[api.RejectOrderRequest, api.RejectOrderResponse](httpClient, baseURL+OrderServiceRejectOrderProcedure, opts...),
		cancelOrder:  connect.NewClient[api.CancelOrderRequest, api.CancelOrderResponse](httpClient, baseURL+OrderServiceCancelOrderProcedure, opts...),
	}
}

type orderServiceClient struct {
	placeOrder   *connect.Client[api.PlaceOrderRequest, api.PlaceOrderResponse]
	listMyOrders *connect.Client[api.ListMyOrdersRequest, api.ListMyOrdersResponse]
	listOrders   *connect.Client[api.ListOrdersRequest, api.ListOrdersResponse]
	approveOrder *connect.Client[api.ApproveOrderRequest, api.ApproveOrderResponse]
	rejectOrder  *connect.Client[api.RejectOrderRequest, api.RejectOrderResponse]
	cancelOrder  *connect.Client[api.CancelOrderRequest, api.CancelOrderResponse]
}

func (c *orderServiceClient) PlaceOrder(ctx context.Context, req *connect.Request[api.PlaceOrderRequest]) (*connect.Response[api.PlaceOrderResponse], error) {
	return c.placeOrder.CallUnary(ctx, req)
}

func (c *orderServiceClient) ListMyOrders(ctx context.Context, req *connect.Request[api.ListMyOrdersRequest]) (*connect.Response[api.ListMyOrdersResponse], error) {
	return c.listMyOrders.CallUnary(ctx, req)
}

func (c *orderServiceClient) ListOrders(ctx context.Context, req *connect.Request[api.ListOrdersRequest]) (*connect.Response[api.ListOrdersResponse], error) {
	return c.listOrders.CallUnary(ctx, req)
}

func (c *orderServiceClient) ApproveOrder(ctx context.Context, req *connect.Request[api.ApproveOrderRequest]) (*connect.Response[api.ApproveOrderResponse], error) {
	return c.approveOrder.CallUnary(ctx, req)
}

func (c *orderServiceClient) RejectOrder(ctx context.Context, req *connect.Request[api.RejectOrderRequest]) (*connect.Response[api.RejectOrderResponse], error) {
	return c.rejectOrder.CallUnary(ctx, req)
}

func (c *orderServiceClient) CancelOrder(ctx context.Context, req *connect.Request[api.CancelOrderRequest]) (*connect.Response[api.CancelOrderResponse], error) {
	return c.cancelOrder.CallUnary(ctx, req)
}

// OrderServiceHandler is implemented by the server side of milkagency.v1.OrderService.
type OrderServiceHandler interface {
	PlaceOrder(context.Context, *connect.Request[api.PlaceOrderRequest]) (*connect.Response[api.PlaceOrderResponse], error)
	ListMyOrders(context.Context, *connect.Request[api.ListMyOrdersRequest]) (*connect.Response[api.ListMyOrdersResponse], error)
	ListOrders(context.Context, *connect.Request[api.ListOrdersRequest]) (*connect.Response[api.ListOrdersResponse], error)
	ApproveOrder(context.Context, *connect.Request[api.ApproveOrderRequest]) (*connect.Response[api.ApproveOrderResponse], error)
	RejectOrder(context.Context, *connect.Request[api.RejectOrderRequest]) (*connect.Response[api.RejectOrderResponse], error)
	CancelOrder(context.Context, *connect.Request[api.CancelOrderRequest]) (*connect.Response[api.CancelOrderResponse], error)
}

// NewOrderServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewOrderServiceHandler(svc OrderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(OrderServiceName, map[string]http.Handler{
		OrderServicePlaceOrderProcedure:   connect.NewUnaryHandler(OrderServicePlaceOrderProcedure, svc.PlaceOrder, opts...),
		OrderServiceListMyOrdersProcedure: connect.NewUnaryHandler(OrderServiceListMyOrdersProcedure, svc.ListMyOrders, opts...),
		OrderServiceListOrdersProcedure:   connect.NewUnaryHandler(OrderServiceListOrdersProcedure, svc.ListOrders, opts...),
		OrderServiceApproveOrderProcedure: connect.NewUnaryHandler(OrderServiceApproveOrderProcedure, svc.ApproveOrder, opts...),
		OrderServiceRejectOrderProcedure:  connect.NewUnaryHandler(OrderServiceRejectOrderProcedure, svc.RejectOrder, opts...),
		OrderServiceCancelOrderProcedure:  connect.NewUnaryHandler(OrderServiceCancelOrderProcedure, svc.CancelOrder, opts...),
	})
}

// UnimplementedOrderServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedOrderServiceHandler struct{}

func (UnimplementedOrderServiceHandler) PlaceOrder(context.Context, *connect.Request[api.PlaceOrderRequest]) (*connect.Response[api.PlaceOrderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.OrderService.PlaceOrder is not implemented"))
}

func (UnimplementedOrderServiceHandler) ListMyOrders(context.Context, *connect.Request[api.ListMyOrdersRequest]) (*connect.Response[api.ListMyOrdersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.OrderService.ListMyOrders is not implemented"))
}

func (UnimplementedOrderServiceHandler) ListOrders(context.Context, *connect.Request[api.ListOrdersRequest]) (*connect.Response[api.ListOrdersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.OrderService.ListOrders is not implemented"))
}

func (UnimplementedOrderServiceHandler) ApproveOrder(context.Context, *connect.Request[api.ApproveOrderRequest]) (*connect.Response[api.ApproveOrderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.OrderService.ApproveOrder is not implemented"))
}

func (UnimplementedOrderServiceHandler) RejectOrder(context.Context, *connect.Request[api.RejectOrderRequest]) (*connect.Response[api.RejectOrderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.OrderService.RejectOrder is not implemented"))
}

func (UnimplementedOrderServiceHandler) CancelOrder(context.Context, *connect.Request[api.CancelOrderRequest]) (*connect.Response[api.CancelOrderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.OrderService.CancelOrder is not implemented"))
}
