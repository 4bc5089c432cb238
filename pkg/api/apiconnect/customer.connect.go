package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// CustomerServiceName is the fully-qualified name of the CustomerService service.
const CustomerServiceName = "milkagency.v1.CustomerService"

const (
	CustomerServiceCreateCustomerProcedure      = "/" + CustomerServiceName + "/CreateCustomer"
	CustomerServiceUpdateCustomerProcedure      = "/" + CustomerServiceName + "/UpdateCustomer"
	CustomerServiceGetCustomerProcedure         = "/" + CustomerServiceName + "/GetCustomer"
	CustomerServiceListCustomersProcedure       = "/" + CustomerServiceName + "/ListCustomers"
	CustomerServiceSetCustomerFrozenProcedure   = "/" + CustomerServiceName + "/SetCustomerFrozen"
	CustomerServiceSetCustomerPasswordProcedure = "/" + CustomerServiceName + "/SetCustomerPassword"
	CustomerServiceSetOpeningDueProcedure       = "/" + CustomerServiceName + "/SetOpeningDue"
	CustomerServiceGetStatementProcedure        = "/" + CustomerServiceName + "/GetStatement"
)

// CustomerServiceClient is a client for the milkagency.v1.CustomerService service.
type CustomerServiceClient interface {
	CreateCustomer(context.Context, *connect.Request[api.CreateCustomerRequest]) (*connect.Response[api.CreateCustomerResponse], error)
	UpdateCustomer(context.Context, *connect.Request[api.UpdateCustomerRequest]) (*connect.Response[api.UpdateCustomerResponse], error)
	GetCustomer(context.Context, *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.GetCustomerResponse], error)
	ListCustomers(context.Context, *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error)
	SetCustomerFrozen(context.Context, *connect.Request[api.SetCustomerFrozenRequest]) (*connect.Response[api.SetCustomerFrozenResponse], error)
	SetCustomerPassword(context.Context, *connect.Request[api.SetCustomerPasswordRequest]) (*connect.Response[api.SetCustomerPasswordResponse], error)
	SetOpeningDue(context.Context, *connect.Request[api.SetOpeningDueRequest]) (*connect.Response[api.SetOpeningDueResponse], error)
	GetStatement(context.Context, *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error)
}

// NewCustomerServiceClient constructs a client for the milkagency.v1.CustomerService service. The
// JSON codec is always installed.
func NewCustomerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CustomerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &customerServiceClient{
		createCustomer:      connect.NewClient[api.CreateCustomerRequest, api.CreateCustomerResponse](httpClient, baseURL+CustomerServiceCreateCustomerProcedure, opts...),
		updateCustomer:      connect.NewClient[api.UpdateCustomerRequest, api.UpdateCustomerResponse](httpClient, baseURL+CustomerServiceUpdateCustomerProcedure, opts...),
		getCustomer:         connect.NewClient[api.GetCustomerRequest, api.GetCustomerResponse](httpClient, baseURL+CustomerServiceGetCustomerProcedure, opts...),
		listCustomers:       connect.NewClient[api.ListCustomersRequest, api.ListCustomersResponse](httpClient, baseURL+CustomerServiceListCustomersProcedure, opts...),
		setCustomerFrozen:   connect.NewClient[api.SetCustomerFrozenRequest, api.SetCustomerFrozenResponse](httpClient, baseURL+CustomerServiceSetCustomerFrozenProcedure, opts...),
		setCustomerPassword: connect.NewClient[api.SetCustomerPasswordRequest, api.SetCustomerPasswordResponse](httpClient, baseURL+CustomerServiceSetCustomerPasswordProcedure, opts...),
		setOpeningDue:       connect.NewClient[api.SetOpeningDueRequest, api.SetOpeningDueResponse](httpClient, baseURL+CustomerServiceSetOpeningDueProcedure, opts...),
		getStatement:        connect.NewClient[api.GetStatementRequest, api.GetStatementResponse](httpClient, baseURL+CustomerServiceGetStatementProcedure, opts...),
	}
}

type customerServiceClient struct {
	createCustomer      *connect.Client[api.CreateCustomerRequest, api.CreateCustomerResponse]
	updateCustomer      *connect.Client[api.UpdateCustomerRequest, api.UpdateCustomerResponse]
	getCustomer         *connect.Client[api.GetCustomerRequest, api.GetCustomerResponse]
	listCustomers       *connect.Client[api.ListCustomersRequest, api.ListCustomersResponse]
	setCustomerFrozen   *connect.Client[api.SetCustomerFrozenRequest, api.SetCustomerFrozenResponse]
	setCustomerPassword *connect.Client[api.SetCustomerPasswordRequest, api.SetCustomerPasswordResponse]
	setOpeningDue       *connect.Client[api.SetOpeningDueRequest, api.SetOpeningDueResponse]
	getStatement        *connect.Client[api.GetStatementRequest, api.GetStatementResponse]
}

func (c *customerServiceClient) CreateCustomer(ctx context.Context, req *connect.Request[api.CreateCustomerRequest]) (*connect.Response[api.CreateCustomerResponse], error) {
	return c.createCustomer.CallUnary(ctx, req)
}

func (c *customerServiceClient) UpdateCustomer(ctx context.Context, req *connect.Request[api.UpdateCustomerRequest]) (*connect.Response[api.UpdateCustomerResponse], error) {
	return c.updateCustomer.CallUnary(ctx, req)
}

func (c *customerServiceClient) GetCustomer(ctx context.Context, req *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.GetCustomerResponse], error) {
	return c.getCustomer.CallUnary(ctx, req)
}

func (c *customerServiceClient) ListCustomers(ctx context.Context, req *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error) {
	return c.listCustomers.CallUnary(ctx, req)
}

func (c *customerServiceClient) SetCustomerFrozen(ctx context.Context, req *connect.Request[api.SetCustomerFrozenRequest]) (*connect.Response[api.SetCustomerFrozenResponse], error) {
	return c.setCustomerFrozen.CallUnary(ctx, req)
}

func (c *customerServiceClient) SetCustomerPassword(ctx context.Context, req *connect.Request[api.SetCustomerPasswordRequest]) (*connect.Response[api.SetCustomerPasswordResponse], error) {
	return c.setCustomerPassword.CallUnary(ctx, req)
}

func (c *customerServiceClient) SetOpeningDue(ctx context.Context, req *connect.Request[api.SetOpeningDueRequest]) (*connect.Response[api.SetOpeningDueResponse], error) {
	return c.setOpeningDue.CallUnary(ctx, req)
}

func (c *customerServiceClient) GetStatement(ctx context.Context, req *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error) {
	return c.getStatement.CallUnary(ctx, req)
}

// CustomerServiceHandler is implemented by the server side of milkagency.v1.CustomerService.
type CustomerServiceHandler interface {
	CreateCustomer(context.Context, *connect.Request[api.CreateCustomerRequest]) (*connect.Response[api.CreateCustomerResponse], error)
	UpdateCustomer(context.Context, *connect.Request[api.UpdateCustomerRequest]) (*connect.Response[api.UpdateCustomerResponse], error)
	GetCustomer(context.Context, *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.GetCustomerResponse], error)
	ListCustomers(context.Context, *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error)
	SetCustomerFrozen(context.Context, *connect.Request[api.SetCustomerFrozenRequest]) (*connect.Response[api.SetCustomerFrozenResponse], error)
	SetCustomerPassword(context.Context, *connect.Request[api.SetCustomerPasswordRequest]) (*connect.Response[api.SetCustomerPasswordResponse], error)
	SetOpeningDue(context.Context, *connect.Request[api.SetOpeningDueRequest]) (*connect.Response[api.SetOpeningDueResponse], error)
	GetStatement(context.Context, *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error)
}

// NewCustomerServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewCustomerServiceHandler(svc CustomerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(CustomerServiceName, map[string]http.Handler{
		CustomerServiceCreateCustomerProcedure:      connect.NewUnaryHandler(CustomerServiceCreateCustomerProcedure, svc.CreateCustomer, opts...),
		CustomerServiceUpdateCustomerProcedure:      connect.NewUnaryHandler(CustomerServiceUpdateCustomerProcedure, svc.UpdateCustomer, opts...),
		CustomerServiceGetCustomerProcedure:         connect.NewUnaryHandler(CustomerServiceGetCustomerProcedure, svc.GetCustomer, opts...),
		CustomerServiceListCustomersProcedure:       connect.NewUnaryHandler(CustomerServiceListCustomersProcedure, svc.ListCustomers, opts...),
		CustomerServiceSetCustomerFrozenProcedure:   connect.NewUnaryHandler(CustomerServiceSetCustomerFrozenProcedure, svc.SetCustomerFrozen, opts...),
		CustomerServiceSetCustomerPasswordProcedure: connect.NewUnaryHandler(CustomerServiceSetCustomerPasswordProcedure, svc.SetCustomerPassword, opts...),
		CustomerServiceSetOpeningDueProcedure:       connect.NewUnaryHandler(CustomerServiceSetOpeningDueProcedure, svc.SetOpeningDue, opts...),
		CustomerServiceGetStatementProcedure:        connect.NewUnaryHandler(CustomerServiceGetStatementProcedure, svc.GetStatement, opts...),
	})
}

// UnimplementedCustomerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCustomerServiceHandler struct{}

func (UnimplementedCustomerServiceHandler) CreateCustomer(context.Context, *connect.Request[api.CreateCustomerRequest]) (*connect.Response[api.CreateCustomerResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.CreateCustomer is not implemented"))
}

func (UnimplementedCustomerServiceHandler) UpdateCustomer(context.Context, *connect.Request[api.UpdateCustomerRequest]) (*connect.Response[api.UpdateCustomerResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.UpdateCustomer is not implemented"))
}

func (UnimplementedCustomerServiceHandler) GetCustomer(context.Context, *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.GetCustomerResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.GetCustomer is not implemented"))
}

func (UnimplementedCustomerServiceHandler) ListCustomers(context.Context, *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.ListCustomers is not implemented"))
}

func (UnimplementedCustomerServiceHandler) SetCustomerFrozen(context.Context, *connect.Request[api.SetCustomerFrozenRequest]) (*connect.Response[api.SetCustomerFrozenResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.SetCustomerFrozen is not implemented"))
}

func (UnimplementedCustomerServiceHandler) SetCustomerPassword(context.Context, *connect.Request[api.SetCustomerPasswordRequest]) (*connect.Response[api.SetCustomerPasswordResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.SetCustomerPassword is not implemented"))
}

func (UnimplementedCustomerServiceHandler) SetOpeningDue(context.Context, *connect.Request[api.SetOpeningDueRequest]) (*connect.Response[api.SetOpeningDueResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.SetOpeningDue is not implemented"))
}

func (UnimplementedCustomerServiceHandler) GetStatement(context.Context, *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.CustomerService.GetStatement is not implemented"))
}
