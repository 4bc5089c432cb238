package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// CommissionServiceName is the fully-qualified name of the CommissionService service.
const CommissionServiceName = "milkagency.v1.CommissionService"

const (
	CommissionServiceComputeCommissionProcedure = "/" + CommissionServiceName + "/ComputeCommission"
	CommissionServiceCloseMonthProcedure        = "/" + CommissionServiceName + "/CloseMonth"
	CommissionServiceListCommissionsProcedure   = "/" + CommissionServiceName + "/ListCommissions"
	CommissionServicePreviewCommissionProcedure = "/" + CommissionServiceName + "/PreviewCommission"
)

// CommissionServiceClient is a client for the milkagency.v1.CommissionService service.
type CommissionServiceClient interface {
	ComputeCommission(context.Context, *connect.Request[api.ComputeCommissionRequest]) (*connect.Response[api.ComputeCommissionResponse], error)
	CloseMonth(context.Context, *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error)
	ListCommissions(context.Context, *connect.Request[api.ListCommissionsRequest]) (*connect.Response[api.ListCommissionsResponse], error)
	PreviewCommission(context.Context, *connect.Request[api.PreviewCommissionRequest]) (*connect.Response[api.PreviewCommissionResponse], error)
}

// NewCommissionServiceClient constructs a client for the milkagency.v1.CommissionService service. The
// JSON codec is always installed.
func NewCommissionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CommissionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &commissionServiceClient{
		computeCommission: connect.NewClient[api.ComputeCommissionRequest, api.ComputeCommissionResponse](httpClient, baseURL+CommissionServiceComputeCommissionProcedure, opts...),
		closeMonth:        connect.NewClient[api.CloseMonthRequest, api.CloseMonthResponse](httpClient, baseURL+CommissionServiceCloseMonthProcedure, opts...),
		listCommissions:   connect.NewClient[api.ListCommissionsRequest, api.ListCommissionsResponse](httpClient, baseURL+CommissionServiceListCommissionsProcedure, opts...),
		previewCommission: connect.NewClient[api.PreviewCommissionRequest, api.PreviewCommissionResponse](httpClient, baseURL+CommissionServicePreviewCommissionProcedure, opts...),
	}
}

type commissionServiceClient struct {
	computeCommission *connect.Client[api.ComputeCommissionRequest, api.ComputeCommissionResponse]
	closeMonth        *connect.Client[api.CloseMonthRequest, api.CloseMonthResponse]
	listCommissions   *connect.Client[api.ListCommissionsRequest, api.ListCommissionsResponse]
	previewCommission *connect.Client[api.PreviewCommissionRequest, api.PreviewCommissionResponse]
}

func (c *commissionServiceClient) ComputeCommission(ctx context.Context, req *connect.Request[api.ComputeCommissionRequest]) (*connect.Response[api.ComputeCommissionResponse], error) {
	return c.computeCommission.CallUnary(ctx, req)
}

func (c *commissionServiceClient) CloseMonth(ctx context.Context, req *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error) {
	return c.closeMonth.CallUnary(ctx, req)
}

func (c *commissionServiceClient) ListCommissions(ctx context.Context, req *connect.Request[api.ListCommissionsRequest]) (*connect.Response[api.ListCommissionsResponse], error) {
	return c.listCommissions.CallUnary(ctx, req)
}

func (c *commissionServiceClient) PreviewCommission(ctx context.Context, req *connect.Request[api.PreviewCommissionRequest]) (*connect.Response[api.PreviewCommissionResponse], error) {
	return c.previewCommission.CallUnary(ctx, req)
}

// CommissionServiceHandler is implemented by the server side of milkagency.v1.CommissionService.
type CommissionServiceHandler interface {
	ComputeCommission(context.Context, *connect.Request[api.ComputeCommissionRequest]) (*connect.Response[api.ComputeCommissionResponse], error)
	CloseMonth(context.Context, *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error)
	ListCommissions(context.Context, *connect.Request[api.ListCommissionsRequest]) (*connect.Response[api.ListCommissionsResponse], error)
	PreviewCommission(context.Context, *connect.Request[api.PreviewCommissionRequest]) (*connect.Response[api.PreviewCommissionResponse], error)
}

// NewCommissionServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewCommissionServiceHandler(svc CommissionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(CommissionServiceName, map[string]http.Handler{
		CommissionServiceComputeCommissionProcedure: connect.NewUnaryHandler(CommissionServiceComputeCommissionProcedure, svc.ComputeCommission, opts...),
		CommissionServiceCloseMonthProcedure:        connect.NewUnaryHandler(CommissionServiceCloseMonthProcedure, svc.CloseMonth, opts...),
		CommissionServiceListCommissionsProcedure:   connect.NewUnaryHandler(CommissionServiceListCommissionsProcedure, svc.ListCommissions, opts...),
		CommissionServicePreviewCommissionProcedure: connect.NewUnaryHandler(CommissionServicePreviewCommissionProcedure, svc.PreviewCommission, opts...),
	})
}

// UnimplementedCommissionServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCommissionServiceHandler struct{}

func (UnimplementedCommissionServiceHandler) ComputeCommission(context.Context, *connect.Request[api.ComputeCommissionRequest]) (*connect.Response[api.ComputeCommissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CommissionService.ComputeCommission is not implemented"))
}

func (UnimplementedCommissionServiceHandler) CloseMonth(context.Context, *connect.Request[api.CloseMonthRequest]) (*connect.Response[api.CloseMonthResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CommissionService.CloseMonth is not implemented"))
}

func (UnimplementedCommissionServiceHandler) ListCommissions(context.Context, *connect.Request[api.ListCommissionsRequest]) (*connect.Response[api.ListCommissionsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CommissionService.ListCommissions is not implemented"))
}

func (UnimplementedCommissionServiceHandler) PreviewCommission(context.Context, *connect.Request[api.PreviewCommissionRequest]) (*connect.Response[api.PreviewCommissionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CommissionService.PreviewCommission is not implemented"))
}
