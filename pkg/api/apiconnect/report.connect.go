package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// ReportServiceName is the fully-qualified name of the ReportService service.
const ReportServiceName = "milkagency.v1.ReportService"

const (
	ReportServiceAdminDashboardProcedure      = "/" + ReportServiceName + "/AdminDashboard"
	ReportServiceStockDashboardProcedure      = "/" + ReportServiceName + "/StockDashboard"
	ReportServiceMonthlySalesSummaryProcedure = "/" + ReportServiceName + "/MonthlySalesSummary"
	ReportServiceCustomerDashboardProcedure   = "/" + ReportServiceName + "/CustomerDashboard"
)

// ReportServiceClient is a client for the milkagency.v1.ReportService service.
type ReportServiceClient interface {
	AdminDashboard(context.Context, *connect.Request[api.AdminDashboardRequest]) (*connect.Response[api.AdminDashboardResponse], error)
	StockDashboard(context.Context, *connect.Request[api.StockDashboardRequest]) (*connect.Response[api.StockDashboardResponse], error)
	MonthlySalesSummary(context.Context, *connect.Request[api.MonthlySalesSummaryRequest]) (*connect.Response[api.MonthlySalesSummaryResponse], error)
	CustomerDashboard(context.Context, *connect.Request[api.CustomerDashboardRequest]) (*connect.Response[api.CustomerDashboardResponse], error)
}

// NewReportServiceClient constructs a client for the milkagency.v1.ReportService service. The
// JSON codec is always installed.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &reportServiceClient{
		adminDashboard:      connect.NewClient[api.AdminDashboardRequest, api.AdminDashboardResponse](httpClient, baseURL+ReportServiceAdminDashboardProcedure, opts...),
		stockDashboard:      connect.NewClient[api.StockDashboardRequest, api.StockDashboardResponse](httpClient, baseURL+ReportServiceStockDashboardProcedure, opts...),
		monthlySalesSummary: connect.NewClient[api.MonthlySalesSummaryRequest, api.MonthlySalesSummaryResponse](httpClient, baseURL+ReportServiceMonthlySalesSummaryProcedure, opts...),
		customerDashboard:   connect.NewClient[api.CustomerDashboardRequest, api.CustomerDashboardResponse](httpClient, baseURL+ReportServiceCustomerDashboardProcedure, opts...),
	}
}

type reportServiceClient struct {
	adminDashboard      *connect.Client[api.AdminDashboardRequest, api.AdminDashboardResponse]
	stockDashboard      *connect.Client[api.StockDashboardRequest, api.StockDashboardResponse]
	monthlySalesSummary *connect.Client[api.MonthlySalesSummaryRequest, api.MonthlySalesSummaryResponse]
	customerDashboard   *connect.Client[api.CustomerDashboardRequest, api.CustomerDashboardResponse]
}

func (c *reportServiceClient) AdminDashboard(ctx context.Context, req *connect.Request[api.AdminDashboardRequest]) (*connect.Response[api.AdminDashboardResponse], error) {
	return c.adminDashboard.CallUnary(ctx, req)
}

func (c *reportServiceClient) StockDashboard(ctx context.Context, req *connect.Request[api.StockDashboardRequest]) (*connect.Response[api.StockDashboardResponse], error) {
	return c.stockDashboard.CallUnary(ctx, req)
}

func (c *reportServiceClient) MonthlySalesSummary(ctx context.Context, req *connect.Request[api.MonthlySalesSummaryRequest]) (*connect.Response[api.MonthlySalesSummaryResponse], error) {
	return c.monthlySalesSummary.CallUnary(ctx, req)
}

func (c *reportServiceClient) CustomerDashboard(ctx context.Context, req *connect.Request[api.CustomerDashboardRequest]) (*connect.Response[api.CustomerDashboardResponse], error) {
	return c.customerDashboard.CallUnary(ctx, req)
}

// ReportServiceHandler is implemented by the server side of milkagency.v1.ReportService.
type ReportServiceHandler interface {
	AdminDashboard(context.Context, *connect.Request[api.AdminDashboardRequest]) (*connect.Response[api.AdminDashboardResponse], error)
	StockDashboard(context.Context, *connect.Request[api.StockDashboardRequest]) (*connect.Response[api.StockDashboardResponse], error)
	MonthlySalesSummary(context.Context, *connect.Request[api.MonthlySalesSummaryRequest]) (*connect.Response[api.MonthlySalesSummaryResponse], error)
	CustomerDashboard(context.Context, *connect.Request[api.CustomerDashboardRequest]) (*connect.Response[api.CustomerDashboardResponse], error)
}

// NewReportServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(ReportServiceName, map[string]http.Handler{
		ReportServiceAdminDashboardProcedure:      connect.NewUnaryHandler(ReportServiceAdminDashboardProcedure, svc.AdminDashboard, opts...),
		ReportServiceStockDashboardProcedure:      connect.NewUnaryHandler(ReportServiceStockDashboardProcedure, svc.StockDashboard, opts...),
		ReportServiceMonthlySalesSummaryProcedure: connect.NewUnaryHandler(ReportServiceMonthlySalesSummaryProcedure, svc.MonthlySalesSummary, opts...),
		ReportServiceCustomerDashboardProcedure:   connect.NewUnaryHandler(ReportServiceCustomerDashboardProcedure, svc.CustomerDashboard, opts...),
	})
}

// UnimplementedReportServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReportServiceHandler struct{}

func (UnimplementedReportServiceHandler) AdminDashboard(context.Context, *connect.Request[api.AdminDashboardRequest]) (*connect.Response[api.AdminDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.ReportService.AdminDashboard is not implemented"))
}

func (UnimplementedReportServiceHandler) StockDashboard(context.Context, *connect.Request[api.StockDashboardRequest]) (*connect.Response[api.StockDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.ReportService.StockDashboard is not implemented"))
}

func (UnimplementedReportServiceHandler) MonthlySalesSummary(context.Context, *connect.Request[api.MonthlySalesSummaryRequest]) (*connect.Response[api.MonthlySalesSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.ReportService.MonthlySalesSummary is not implemented"))
}

func (UnimplementedReportServiceHandler) CustomerDashboard(context.Context, *connect.Request[api.CustomerDashboardRequest]) (*connect.Response[api.CustomerDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.ReportService.CustomerDashboard is not implemented"))
}
