package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/internal/middleware"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage/sqlite"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

const (
	testAdminEmail    = "admin@agency.test"
	testAdminPassword = "admin-pass-123"
)

type authEnv struct {
	store *sqlite.SQLiteStore
	url   string
}

// setupAuthTestServer mounts the auth service the way the server does, with
// real tokens, plus the customer service behind RequireAuth and the admin role.
func setupAuthTestServer(t *testing.T) (*authEnv, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "milkagency-auth-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create store: %v", err)
	}

	staff := auth.NewPasswordAuthenticator(store)
	if err := auth.EnsureAdmin(context.Background(), staff, testAdminEmail, testAdminPassword); err != nil {
		store.Close()
		os.RemoveAll(tempDir)
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authSvc := NewAuthService(staff, auth.NewCustomerAuthenticator(store, "IN"), store, jwtManager, logger)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager))))
	mux.Handle(apiconnect.NewCustomerServiceHandler(NewCustomerService(store, "IN"),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.RequireRole(auth.RoleAdmin))))

	server := httptest.NewServer(mux)
	cleanup := func() {
		server.Close()
		store.Close()
		os.RemoveAll(tempDir)
	}
	return &authEnv{store: store, url: server.URL}, cleanup
}

func (e *authEnv) client(opts ...connect.ClientOption) apiconnect.AuthServiceClient {
	return apiconnect.NewAuthServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *authEnv) customers(opts ...connect.ClientOption) apiconnect.CustomerServiceClient {
	return apiconnect.NewCustomerServiceClient(http.DefaultClient, e.url, opts...)
}

func bearer(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}

func (e *authEnv) adminToken(t *testing.T) string {
	t.Helper()
	resp, err := e.client().Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return resp.Msg.Token
}

func TestLogin(t *testing.T) {
	env, cleanup := setupAuthTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := env.client().Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Msg.Principal.Role != auth.RoleAdmin {
		t.Errorf("role = %q, want %q", resp.Msg.Principal.Role, auth.RoleAdmin)
	}

	me, err := env.client(bearer(resp.Msg.Token)).Me(ctx, connect.NewRequest(&api.MeRequest{}))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Msg.Name != "Admin" || me.Msg.Login != testAdminEmail {
		t.Errorf("me = %+v", me.Msg)
	}

	list, err := env.customers(bearer(resp.Msg.Token)).ListCustomers(ctx, connect.NewRequest(&api.ListCustomersRequest{}))
	if err != nil {
		t.Fatalf("ListCustomers with admin token failed: %v", err)
	}
	if len(list.Msg.Customers) != 0 {
		t.Errorf("expected no customers, got %d", len(list.Msg.Customers))
	}
}

func TestLogin_Errors(t *testing.T) {
	env, cleanup := setupAuthTestServer(t)
	defer cleanup()

	tests := []struct {
		name string
		req  *api.LoginRequest
		want connect.Code
	}{
		{"wrong password", &api.LoginRequest{Email: testAdminEmail, Password: "nope-nope"}, connect.CodeUnauthenticated},
		{"unknown email", &api.LoginRequest{Email: "who@agency.test", Password: testAdminPassword}, connect.CodeUnauthenticated},
		{"malformed email", &api.LoginRequest{Email: "admin", Password: testAdminPassword}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client().Login(context.Background(), connect.NewRequest(tt.req))
			if got := connect.CodeOf(err); got != tt.want {
				t.Errorf("code = %v, want %v (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestCustomerRegisterAndLogin(t *testing.T) {
	env, cleanup := setupAuthTestServer(t)
	defer cleanup()
	ctx := context.Background()

	customer := &models.Customer{Phone: "+919876543210", Name: "Ravi"}
	if err := env.store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	_, err := env.client().CustomerLogin(ctx, connect.NewRequest(&api.CustomerLoginRequest{
		Phone: "98765 43210", Password: "ravi-pass-1",
	}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("login before register: got %v, want Unauthenticated", err)
	}

	reg, err := env.client().CustomerRegister(ctx, connect.NewRequest(&api.CustomerRegisterRequest{
		Phone: "98765 43210", Password: "ravi-pass-1",
	}))
	if err != nil {
		t.Fatalf("CustomerRegister failed: %v", err)
	}
	if reg.Msg.Principal.ID != customer.ID || reg.Msg.Principal.Role != auth.RoleCustomer {
		t.Errorf("principal = %+v", reg.Msg.Principal)
	}

	_, err = env.client().CustomerRegister(ctx, connect.NewRequest(&api.CustomerRegisterRequest{
		Phone: "+919876543210", Password: "another-pass",
	}))
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("second register: got %v, want AlreadyExists", err)
	}

	login, err := env.client().CustomerLogin(ctx, connect.NewRequest(&api.CustomerLoginRequest{
		Phone: "+919876543210", Password: "ravi-pass-1",
	}))
	if err != nil {
		t.Fatalf("CustomerLogin failed: %v", err)
	}

	me, err := env.client(bearer(login.Msg.Token)).Me(ctx, connect.NewRequest(&api.MeRequest{}))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Msg.Name != "Ravi" || me.Msg.Role != auth.RoleCustomer {
		t.Errorf("me = %+v", me.Msg)
	}

	_, err = env.customers(bearer(login.Msg.Token)).ListCustomers(ctx, connect.NewRequest(&api.ListCustomersRequest{}))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("customer listing customers: got %v, want PermissionDenied", err)
	}
}

func TestCustomerRegister_Errors(t *testing.T) {
	env, cleanup := setupAuthTestServer(t)
	defer cleanup()

	tests := []struct {
		name string
		req  *api.CustomerRegisterRequest
		want connect.Code
	}{
		{"unknown phone", &api.CustomerRegisterRequest{Phone: "+919000000000", Password: "long-enough"}, connect.CodeNotFound},
		{"invalid phone", &api.CustomerRegisterRequest{Phone: "12", Password: "long-enough"}, connect.CodeInvalidArgument},
		{"short password", &api.CustomerRegisterRequest{Phone: "+919000000000", Password: "short"}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client().CustomerRegister(context.Background(), connect.NewRequest(tt.req))
			if got := connect.CodeOf(err); got != tt.want {
				t.Errorf("code = %v, want %v (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestRegister_RequiresAdmin(t *testing.T) {
	env, cleanup := setupAuthTestServer(t)
	defer cleanup()
	ctx := context.Background()

	req := &api.RegisterRequest{Email: "clerk@agency.test", DisplayName: "Clerk", Password: "clerk-pass-1"}

	_, err := env.client().Register(ctx, connect.NewRequest(req))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("anonymous register: got %v, want Unauthenticated", err)
	}

	token := env.adminToken(t)
	resp, err := env.client(bearer(token)).Register(ctx, connect.NewRequest(req))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Principal.Login != req.Email || resp.Msg.Principal.Role != auth.RoleAdmin {
		t.Errorf("principal = %+v", resp.Msg.Principal)
	}

	_, err = env.client(bearer(token)).Register(ctx, connect.NewRequest(req))
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("duplicate register: got %v, want AlreadyExists", err)
	}

	if _, err := env.client().Login(ctx, connect.NewRequest(&api.LoginRequest{Email: req.Email, Password: req.Password})); err != nil {
		t.Errorf("new staff login failed: %v", err)
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	env, cleanup := setupAuthTestServer(t)
	defer cleanup()

	for name, opts := range map[string][]connect.ClientOption{
		"no token":  nil,
		"bad token": {bearer("not-a-jwt")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.client(opts...).Me(context.Background(), connect.NewRequest(&api.MeRequest{}))
			if connect.CodeOf(err) != connect.CodeUnauthenticated {
				t.Errorf("got %v, want Unauthenticated", err)
			}
		})
	}
}
