package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/internal/blob"
	"github.com/mmynk/milkagency/internal/cache"
	"github.com/mmynk/milkagency/internal/invoice"
	"github.com/mmynk/milkagency/internal/metrics"
	"github.com/mmynk/milkagency/internal/middleware"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/internal/storage/sqlite"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

const (
	testUserHeader = "X-Test-User"
	testRoleHeader = "X-Test-Role"
	testAdminID    = "admin-1"
)

// testAuthInterceptor returns a Connect interceptor that trusts the caller
// named in the test headers.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if id := req.Header().Get(testUserHeader); id != "" {
				ctx = middleware.WithPrincipal(ctx, id, id, req.Header().Get(testRoleHeader))
			}
			return next(ctx, req)
		}
	}
}

// as makes a client call on behalf of id with role.
func as(id, role string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set(testUserHeader, id)
			req.Header().Set(testRoleHeader, role)
			return next(ctx, req)
		}
	}))
}

func asAdmin() connect.ClientOption {
	return as(testAdminID, auth.RoleAdmin)
}

func asCustomer(id string) connect.ClientOption {
	return as(id, auth.RoleCustomer)
}

type testEnv struct {
	store       *sqlite.SQLiteStore
	url         string
	cache       *cache.Memory
	metrics     *metrics.Metrics
	blobs       blob.Store
	reports     *ReportService
	commissions *CommissionService
}

// setupTestServer creates a test server with every service mounted over a
// temporary SQLite database.
func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "milkagency-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create store: %v", err)
	}
	blobs, err := blob.NewLocal(filepath.Join(tempDir, "media"))
	if err != nil {
		store.Close()
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create blob store: %v", err)
	}

	env := &testEnv{
		store:   store,
		cache:   cache.NewMemory(),
		metrics: metrics.New(),
		blobs:   blobs,
	}
	locker := cache.NewMemoryLocker()
	archive := NewInvoiceArchive(store, invoice.NewRenderer(invoice.Business{Name: "Test Agency"}), blobs)
	env.reports = NewReportService(store, env.cache, env.metrics, 10, time.Minute)
	env.commissions = NewCommissionService(store, locker, env.metrics)

	authInterceptor := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewCustomerServiceHandler(NewCustomerService(store, "IN"), authInterceptor))
	mux.Handle(apiconnect.NewCatalogServiceHandler(NewCatalogService(store), authInterceptor))
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(store, locker, env.cache, env.metrics, archive), authInterceptor))
	mux.Handle(apiconnect.NewPaymentServiceHandler(NewPaymentService(store, locker, env.cache, env.metrics), authInterceptor))
	mux.Handle(apiconnect.NewCommissionServiceHandler(env.commissions, authInterceptor))
	mux.Handle(apiconnect.NewOrderServiceHandler(NewOrderService(store, locker, env.cache, env.metrics, archive), authInterceptor))
	mux.Handle(apiconnect.NewCashbookServiceHandler(NewCashbookService(store), authInterceptor))
	mux.Handle(apiconnect.NewReportServiceHandler(env.reports, authInterceptor))

	server := httptest.NewServer(mux)
	env.url = server.URL

	cleanup := func() {
		server.Close()
		store.Close()
		os.RemoveAll(tempDir)
	}
	return env, cleanup
}

func (e *testEnv) customers(opts ...connect.ClientOption) apiconnect.CustomerServiceClient {
	return apiconnect.NewCustomerServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *testEnv) catalog(opts ...connect.ClientOption) apiconnect.CatalogServiceClient {
	return apiconnect.NewCatalogServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *testEnv) bills(opts ...connect.ClientOption) apiconnect.BillServiceClient {
	return apiconnect.NewBillServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *testEnv) payments(opts ...connect.ClientOption) apiconnect.PaymentServiceClient {
	return apiconnect.NewPaymentServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *testEnv) commissionClient(opts ...connect.ClientOption) apiconnect.CommissionServiceClient {
	return apiconnect.NewCommissionServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *testEnv) orders(opts ...connect.ClientOption) apiconnect.OrderServiceClient {
	return apiconnect.NewOrderServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *testEnv) cashbook(opts ...connect.ClientOption) apiconnect.CashbookServiceClient {
	return apiconnect.NewCashbookServiceClient(http.DefaultClient, e.url, opts...)
}

func (e *testEnv) reportClient(opts ...connect.ClientOption) apiconnect.ReportServiceClient {
	return apiconnect.NewReportServiceClient(http.DefaultClient, e.url, opts...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	company  *models.Company
	customer *models.Customer
	milk     *models.Item
	curd     *models.Item
}

// seed writes a company, a customer and a milk and curd item directly
// through the store.
func (e *testEnv) seed(t *testing.T, opening string, commissioned bool) fixture {
	t.Helper()
	ctx := context.Background()

	company := &models.Company{Name: "Heritage"}
	if err := e.store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}
	customer := &models.Customer{
		Phone:          "+919876543210",
		Name:           "Ravi",
		ShopName:       "Ravi Stores",
		Area:           "Kukatpally",
		OpeningDue:     dec(opening),
		IsCommissioned: commissioned,
	}
	if err := e.store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	milk := &models.Item{
		Code: "TM500", Name: "Toned Milk 500ml", CompanyID: company.ID, Category: models.CategoryMilk,
		SellingPrice: dec("100"), BuyingPrice: dec("90"), MRP: dec("110"), StockQuantity: 50, UnitVolumeML: 500,
	}
	if err := e.store.CreateItem(ctx, milk); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	curd := &models.Item{
		Code: "CD450", Name: "Curd 450g", CompanyID: company.ID, Category: models.CategoryCurd,
		SellingPrice: dec("30"), BuyingPrice: dec("27"), StockQuantity: 20, UnitVolumeML: 450,
	}
	if err := e.store.CreateItem(ctx, curd); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	return fixture{company: company, customer: customer, milk: milk, curd: curd}
}

func (e *testEnv) dueOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	c, err := e.store.GetCustomer(context.Background(), id)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	return c.Due
}

func (e *testEnv) stockOf(t *testing.T, id string) int {
	t.Helper()
	item, err := e.store.GetItem(context.Background(), id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	return item.StockQuantity
}

func TestConnectError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"not found", fmt.Errorf("%w: bill b1", storage.ErrNotFound), connect.CodeNotFound},
		{"duplicate transaction", storage.ErrDuplicateTransaction, connect.CodeAlreadyExists},
		{"duplicate", storage.ErrDuplicate, connect.CodeAlreadyExists},
		{"empty bill", storage.ErrEmptyBill, connect.CodeInvalidArgument},
		{"frozen", storage.ErrFrozen, connect.CodeFailedPrecondition},
		{"already deducted", storage.ErrAlreadyDeducted, connect.CodeFailedPrecondition},
		{"invalid state", storage.ErrInvalidState, connect.CodeFailedPrecondition},
		{"counter payment", storage.ErrCounterPayment, connect.CodeFailedPrecondition},
		{"lock", cache.ErrNotObtained, connect.CodeUnavailable},
		{"deadline", context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{"connect error passes through", connect.NewError(connect.CodePermissionDenied, errors.New("no")), connect.CodePermissionDenied},
		{"unknown", errors.New("disk on fire"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := connect.CodeOf(connectError(tt.err)); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLockCustomers(t *testing.T) {
	locker := cache.NewMemoryLocker()
	ctx := context.Background()

	unlock, err := lockCustomers(ctx, locker, "b", "a", "b", "")
	if err != nil {
		t.Fatalf("lockCustomers failed: %v", err)
	}

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, err := lockCustomers(short, locker, "a"); err == nil {
		t.Fatal("expected second lock on a to fail while held")
	}

	unlock()
	again, err := lockCustomers(ctx, locker, "a", "b")
	if err != nil {
		t.Fatalf("lock after release failed: %v", err)
	}
	again()

	noop, err := lockCustomers(ctx, nil, "a")
	if err != nil {
		t.Fatalf("nil locker failed: %v", err)
	}
	noop()
}
