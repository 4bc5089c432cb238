package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "milkagency.v1.AuthService"

const (
	AuthServiceLoginProcedure            = "/" + AuthServiceName + "/Login"
	AuthServiceCustomerLoginProcedure    = "/" + AuthServiceName + "/CustomerLogin"
	AuthServiceCustomerRegisterProcedure = "/" + AuthServiceName + "/CustomerRegister"
	AuthServiceRegisterProcedure         = "/" + AuthServiceName + "/Register"
	AuthServiceMeProcedure               = "/" + AuthServiceName + "/Me"
)

// AuthServiceClient is a client for the milkagency.v1.AuthService service.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	CustomerLogin(context.Context, *connect.Request[api.CustomerLoginRequest]) (*connect.Response[api.LoginResponse], error)
	CustomerRegister(context.Context, *connect.Request[api.CustomerRegisterRequest]) (*connect.Response[api.LoginResponse], error)
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error)
}

// NewAuthServiceClient constructs a client for the milkagency.v1.AuthService service. The
// JSON codec is always installed.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		login:            connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		customerLogin:    connect.NewClient[api.CustomerLoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceCustomerLoginProcedure, opts...),
		customerRegister: connect.NewClient[api.CustomerRegisterRequest, api.LoginResponse](httpClient, baseURL+AuthServiceCustomerRegisterProcedure, opts...),
		register:         connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		me:               connect.NewClient[api.MeRequest, api.MeResponse](httpClient, baseURL+AuthServiceMeProcedure, opts...),
	}
}

type authServiceClient struct {
	login            *connect.Client[api.LoginRequest, api.LoginResponse]
	customerLogin    *connect.Client[api.CustomerLoginRequest, api.LoginResponse]
	customerRegister *connect.Client[api.CustomerRegisterRequest, api.LoginResponse]
	register         *connect.Client[api.RegisterRequest, api.RegisterResponse]
	me               *connect.Client[api.MeRequest, api.MeResponse]
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) CustomerLogin(ctx context.Context, req *connect.Request[api.CustomerLoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.customerLogin.CallUnary(ctx, req)
}

func (c *authServiceClient) CustomerRegister(ctx context.Context, req *connect.Request[api.CustomerRegisterRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.customerRegister.CallUnary(ctx, req)
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	return c.me.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the server side of milkagency.v1.AuthService.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	CustomerLogin(context.Context, *connect.Request[api.CustomerLoginRequest]) (*connect.Response[api.LoginResponse], error)
	CustomerRegister(context.Context, *connect.Request[api.CustomerRegisterRequest]) (*connect.Response[api.LoginResponse], error)
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return mount(AuthServiceName, map[string]http.Handler{
		AuthServiceLoginProcedure:            connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceCustomerLoginProcedure:    connect.NewUnaryHandler(AuthServiceCustomerLoginProcedure, svc.CustomerLogin, opts...),
		AuthServiceCustomerRegisterProcedure: connect.NewUnaryHandler(AuthServiceCustomerRegisterProcedure, svc.CustomerRegister, opts...),
		AuthServiceRegisterProcedure:         connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceMeProcedure:               connect.NewUnaryHandler(AuthServiceMeProcedure, svc.Me, opts...),
	})
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.AuthService.Login is not implemented"))
}

func (UnimplementedAuthServiceHandler) CustomerLogin(context.Context, *connect.Request[api.CustomerLoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.AuthService.CustomerLogin is not implemented"))
}

func (UnimplementedAuthServiceHandler) CustomerRegister(context.Context, *connect.Request[api.CustomerRegisterRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.AuthService.CustomerRegister is not implemented"))
}

func (UnimplementedAuthServiceHandler) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.AuthService.Register is not implemented"))
}

func (UnimplementedAuthServiceHandler) Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.MeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("milkagency.v1.AuthService.Me is not implemented"))
}
