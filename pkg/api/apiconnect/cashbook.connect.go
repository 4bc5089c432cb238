package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// CashbookServiceName is the fully-qualified name of the CashbookService service.
const CashbookServiceName = "milkagency.v1.CashbookService"

const (
	CashbookServiceGetCashbookDashboardProcedure = "/" + CashbookServiceName + "/GetCashbookDashboard"
	CashbookServiceSaveDenominationsProcedure    = "/" + CashbookServiceName + "/SaveDenominations"
	CashbookServiceAddExpenseProcedure           = "/" + CashbookServiceName + "/AddExpense"
	CashbookServiceListExpensesProcedure         = "/" + CashbookServiceName + "/ListExpenses"
	CashbookServiceDeleteExpenseProcedure        = "/" + CashbookServiceName + "/DeleteExpense"
	CashbookServiceSetBankBalanceProcedure       = "/" + CashbookServiceName + "/SetBankBalance"
	CashbookServiceRecordCompanyPaymentProcedure = "/" + CashbookServiceName + "/RecordCompanyPayment"
)

// CashbookServiceClient is a client for the milkagency.v1.CashbookService service.
type CashbookServiceClient interface {
	GetCashbookDashboard(context.Context, *connect.Request[api.GetCashbookDashboardRequest]) (*connect.Response[api.GetCashbookDashboardResponse], error)
	SaveDenominations(context.Context, *connect.Request[api.SaveDenominationsRequest]) (*connect.Response[api.SaveDenominationsResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	SetBankBalance(context.Context, *connect.Request[api.SetBankBalanceRequest]) (*connect.Response[api.SetBankBalanceResponse], error)
	RecordCompanyPayment(context.Context, *connect.Request[api.RecordCompanyPaymentRequest]) (*connect.Response[api.RecordCompanyPaymentResponse], error)
}

// NewCashbookServiceClient constructs a client for the milkagency.v1.CashbookService service. The
// JSON codec is always installed.
func NewCashbookServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CashbookServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &cashbookServiceClient{
		getCashbookDashboard: connect.NewClient[api.GetCashbookDashboardRequest, api.GetCashbookDashboardResponse](httpClient, baseURL+CashbookServiceGetCashbookDashboardProcedure, opts...),
		saveDenominations:    connect.NewClient[api.SaveDenominationsRequest, api.SaveDenominationsResponse](httpClient, baseURL+CashbookServiceSaveDenominationsProcedure, opts...),
		addExpense:           connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+CashbookServiceAddExpenseProcedure, opts...),
		listExpenses:         connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+CashbookServiceListExpensesProcedure, opts...),
		deleteExpense:        connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+CashbookServiceDeleteExpenseProcedure, opts...),
		setBankBalance:       connect.NewClient[api.SetBankBalanceRequest, api.SetBankBalanceResponse](httpClient, baseURL+CashbookServiceSetBankBalanceProcedure, opts...),
		recordCompanyPayment: connect.NewClient[api.RecordCompanyPaymentRequest, api.RecordCompanyPaymentResponse](httpClient, baseURL+CashbookServiceRecordCompanyPaymentProcedure, opts...),
	}
}

type cashbookServiceClient struct {
	getCashbookDashboard *connect.Client[api.GetCashbookDashboardRequest, api.GetCashbookDashboardResponse]
	saveDenominations    *connect.Client[api.SaveDenominationsRequest, api.SaveDenominationsResponse]
	addExpense           *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	listExpenses         *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	deleteExpense        *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	setBankBalance       *connect.Client[api.SetBankBalanceRequest, api.SetBankBalanceResponse]
	recordCompanyPayment *connect.Client[api.RecordCompanyPaymentRequest, api.RecordCompanyPaymentResponse]
}

func (c *cashbookServiceClient) GetCashbookDashboard(ctx context.Context, req *connect.Request[api.GetCashbookDashboardRequest]) (*connect.Response[api.GetCashbookDashboardResponse], error) {
	return c.getCashbookDashboard.CallUnary(ctx, req)
}

func (c *cashbookServiceClient) SaveDenominations(ctx context.Context, req *connect.Request[api.SaveDenominationsRequest]) (*connect.Response[api.SaveDenominationsResponse], error) {
	return c.saveDenominations.CallUnary(ctx, req)
}

func (c *cashbookServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *cashbookServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *cashbookServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *cashbookServiceClient) SetBankBalance(ctx context.Context, req *connect.Request[api.SetBankBalanceRequest]) (*connect.Response[api.SetBankBalanceResponse], error) {
	return c.setBankBalance.CallUnary(ctx, req)
}

func (c *cashbookServiceClient) RecordCompanyPayment(ctx context.Context, req *connect.Request[api.RecordCompanyPaymentRequest]) (*connect.Response[api.RecordCompanyPaymentResponse], error) {
	return c.recordCompanyPayment.CallUnary(ctx, req)
}

// CashbookServiceHandler is implemented by the server side of milkagency.v1.CashbookService.
type CashbookServiceHandler interface {
	GetCashbookDashboard(context.Context, *connect.Request[api.GetCashbookDashboardRequest]) (*connect.Response[api.GetCashbookDashboardResponse], error)
	SaveDenominations(context.Context, *connect.Request[api.SaveDenominationsRequest]) (*connect.Response[api.SaveDenominationsResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	SetBankBalance(context.Context, *connect.Request[api.SetBankBalanceRequest]) (*connect.Response[api.SetBankBalanceResponse], error)
	RecordCompanyPayment(context.Context, *connect.Request[api.RecordCompanyPaymentRequest]) (*connect.Response[api.RecordCompanyPaymentResponse], error)
}

// NewCashbookServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewCashbookServiceHandler(svc CashbookServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(CashbookServiceName, map[string]http.Handler{
		CashbookServiceGetCashbookDashboardProcedure: connect.NewUnaryHandler(CashbookServiceGetCashbookDashboardProcedure, svc.GetCashbookDashboard, opts...),
		CashbookServiceSaveDenominationsProcedure:    connect.NewUnaryHandler(CashbookServiceSaveDenominationsProcedure, svc.SaveDenominations, opts...),
		CashbookServiceAddExpenseProcedure:           connect.NewUnaryHandler(CashbookServiceAddExpenseProcedure, svc.AddExpense, opts...),
		CashbookServiceListExpensesProcedure:         connect.NewUnaryHandler(CashbookServiceListExpensesProcedure, svc.ListExpenses, opts...),
		CashbookServiceDeleteExpenseProcedure:        connect.NewUnaryHandler(CashbookServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		CashbookServiceSetBankBalanceProcedure:       connect.NewUnaryHandler(CashbookServiceSetBankBalanceProcedure, svc.SetBankBalance, opts...),
		CashbookServiceRecordCompanyPaymentProcedure: connect.NewUnaryHandler(CashbookServiceRecordCompanyPaymentProcedure, svc.RecordCompanyPayment, opts...),
	})
}

// UnimplementedCashbookServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCashbookServiceHandler struct{}

func (UnimplementedCashbookServiceHandler) GetCashbookDashboard(context.Context, *connect.Request[api.GetCashbookDashboardRequest]) (*connect.Response[api.GetCashbookDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CashbookService.GetCashbookDashboard is not implemented"))
}

func (UnimplementedCashbookServiceHandler) SaveDenominations(context.Context, *connect.Request[api.SaveDenominationsRequest]) (*connect.Response[api.SaveDenominationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CashbookService.SaveDenominations is not implemented"))
}

func (UnimplementedCashbookServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CashbookService.AddExpense is not implemented"))
}

func (UnimplementedCashbookServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CashbookService.ListExpenses is not implemented"))
}

func (UnimplementedCashbookServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CashbookService.DeleteExpense is not implemented"))
}

func (UnimplementedCashbookServiceHandler) SetBankBalance(context.Context, *connect.Request[api.SetBankBalanceRequest]) (*connect.Response[api.SetBankBalanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CashbookService.SetBankBalance is not implemented"))
}

func (UnimplementedCashbookServiceHandler) RecordCompanyPayment(context.Context, *connect.Request[api.RecordCompanyPaymentRequest]) (*connect.Response[api.RecordCompanyPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CashbookService.RecordCompanyPayment is not implemented"))
}
