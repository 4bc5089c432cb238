package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// PaymentServiceName is the fully-qualified name of the PaymentService service.
const PaymentServiceName = "milkagency.v1.PaymentService"

const (
	PaymentServiceRecordPaymentProcedure       = "/" + PaymentServiceName + "/RecordPayment"
	PaymentServiceRecordMyPaymentProcedure     = "/" + PaymentServiceName + "/RecordMyPayment"
	PaymentServiceUpdatePaymentStatusProcedure = "/" + PaymentServiceName + "/UpdatePaymentStatus"
	PaymentServiceDeletePaymentProcedure       = "/" + PaymentServiceName + "/DeletePayment"
	PaymentServiceListPaymentsProcedure        = "/" + PaymentServiceName + "/ListPayments"
)

// PaymentServiceClient is a client for the milkagency.v1.PaymentService service.
type PaymentServiceClient interface {
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	RecordMyPayment(context.Context, *connect.Request[api.RecordMyPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	UpdatePaymentStatus(context.Context, *connect.Request[api.UpdatePaymentStatusRequest]) (*connect.Response[api.UpdatePaymentStatusResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
}

// NewPaymentServiceClient constructs a client for the milkagency.v1.PaymentService service. The
// JSON codec is always installed.
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PaymentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &paymentServiceClient{
		recordPayment:       connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+PaymentServiceRecordPaymentProcedure, opts...),
		recordMyPayment:     connect.NewClient[api.RecordMyPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+PaymentServiceRecordMyPaymentProcedure, opts...),
		updatePaymentStatus: connect.NewClient[api.UpdatePaymentStatusRequest, api.UpdatePaymentStatusResponse](httpClient, baseURL+PaymentServiceUpdatePaymentStatusProcedure, opts...),
		deletePayment:       connect.NewClient[api.DeletePaymentRequest, api.DeletePaymentResponse](httpClient, baseURL+PaymentServiceDeletePaymentProcedure, opts...),
		listPayments:        connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+PaymentServiceListPaymentsProcedure, opts...),
	}
}

type paymentServiceClient struct {
	recordPayment       *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	recordMyPayment     *connect.Client[api.RecordMyPaymentRequest, api.RecordPaymentResponse]
	updatePaymentStatus *connect.Client[api.UpdatePaymentStatusRequest, api.UpdatePaymentStatusResponse]
	deletePayment       *connect.Client[api.DeletePaymentRequest, api.DeletePaymentResponse]
	listPayments        *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
}

func (c *paymentServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) RecordMyPayment(ctx context.Context, req *connect.Request[api.RecordMyPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordMyPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) UpdatePaymentStatus(ctx context.Context, req *connect.Request[api.UpdatePaymentStatusRequest]) (*connect.Response[api.UpdatePaymentStatusResponse], error) {
	return c.updatePaymentStatus.CallUnary(ctx, req)
}

func (c *paymentServiceClient) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

// PaymentServiceHandler is implemented by the server side of milkagency.v1.PaymentService.
type PaymentServiceHandler interface {
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	RecordMyPayment(context.Context, *connect.Request[api.RecordMyPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	UpdatePaymentStatus(context.Context, *connect.Request[api.UpdatePaymentStatusRequest]) (*connect.Response[api.UpdatePaymentStatusResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
}

// NewPaymentServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(PaymentServiceName, map[string]http.Handler{
		PaymentServiceRecordPaymentProcedure:       connect.NewUnaryHandler(PaymentServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
		PaymentServiceRecordMyPaymentProcedure:     connect.NewUnaryHandler(PaymentServiceRecordMyPaymentProcedure, svc.RecordMyPayment, opts...),
		PaymentServiceUpdatePaymentStatusProcedure: connect.NewUnaryHandler(PaymentServiceUpdatePaymentStatusProcedure, svc.UpdatePaymentStatus, opts...),
		PaymentServiceDeletePaymentProcedure:       connect.NewUnaryHandler(PaymentServiceDeletePaymentProcedure, svc.DeletePayment, opts...),
		PaymentServiceListPaymentsProcedure:        connect.NewUnaryHandler(PaymentServiceListPaymentsProcedure, svc.ListPayments, opts...),
	})
}

// UnimplementedPaymentServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPaymentServiceHandler struct{}

func (UnimplementedPaymentServiceHandler) RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.PaymentService.RecordPayment is not implemented"))
}

func (UnimplementedPaymentServiceHandler) RecordMyPayment(context.Context, *connect.Request[api.RecordMyPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.PaymentService.RecordMyPayment is not implemented"))
}

func (UnimplementedPaymentServiceHandler) UpdatePaymentStatus(context.Context, *connect.Request[api.UpdatePaymentStatusRequest]) (*connect.Response[api.UpdatePaymentStatusResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.PaymentService.UpdatePaymentStatus is not implemented"))
}

func (UnimplementedPaymentServiceHandler) DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.PaymentService.DeletePayment is not implemented"))
}

func (UnimplementedPaymentServiceHandler) ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.PaymentService.ListPayments is not implemented"))
}
