package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/internal/blob"
	"github.com/mmynk/milkagency/internal/cache"
	"github.com/mmynk/milkagency/internal/config"
	"github.com/mmynk/milkagency/internal/invoice"
	"github.com/mmynk/milkagency/internal/metrics"
	"github.com/mmynk/milkagency/internal/middleware"
	"github.com/mmynk/milkagency/internal/service"
	"github.com/mmynk/milkagency/internal/storage/sqlite"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
	"github.com/mmynk/milkagency/pkg/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	logging.Setup()

	if err := run(*envFile); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	staff := auth.NewPasswordAuthenticator(store)
	if err := auth.EnsureAdmin(ctx, staff, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	customers := auth.NewCustomerAuthenticator(store, cfg.PhoneRegion)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	m := metrics.New()

	var (
		dashboardCache cache.Cache  = cache.NewMemory()
		locker         cache.Locker = cache.NewMemoryLocker()
	)
	if cfg.RedisAddress != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddress)
		if err != nil {
			return err
		}
		defer client.Close()
		dashboardCache = cache.NewRedis(client)
		locker = cache.NewRedisLocker(client)
		slog.Info("Redis cache enabled", "address", cfg.RedisAddress)
	}

	blobs, closeBlobs, err := openBlobs(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBlobs()

	renderer := invoice.NewRenderer(invoice.Business{
		Name:    cfg.Business.Name,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
	})
	archive := service.NewInvoiceArchive(store, renderer, blobs)
	reports := service.NewReportService(store, dashboardCache, m, cfg.LowStockThreshold, cfg.DashboardCacheTTL)

	// Interceptors run in order: metrics see every call, logging sees the principal.
	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	authenticated := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	adminOnly := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager),
		middleware.RequireRole(auth.RoleAdmin),
		middleware.LoggingInterceptor(),
	)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", "Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(requestLogger)

	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(staff, customers, store, jwtManager, slog.Default()), public))
	mount(apiconnect.NewCustomerServiceHandler(service.NewCustomerService(store, cfg.PhoneRegion), adminOnly))
	mount(apiconnect.NewCatalogServiceHandler(service.NewCatalogService(store), authenticated))
	mount(apiconnect.NewBillServiceHandler(service.NewBillService(store, locker, dashboardCache, m, archive), authenticated))
	mount(apiconnect.NewPaymentServiceHandler(service.NewPaymentService(store, locker, dashboardCache, m), authenticated))
	mount(apiconnect.NewCommissionServiceHandler(service.NewCommissionService(store, locker, m), adminOnly))
	mount(apiconnect.NewOrderServiceHandler(service.NewOrderService(store, locker, dashboardCache, m, archive), authenticated))
	mount(apiconnect.NewCashbookServiceHandler(service.NewCashbookService(store), adminOnly))
	mount(apiconnect.NewReportServiceHandler(reports, authenticated))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())

	downloads := &downloadHandler{bills: store, archive: archive, reports: reports}
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthHTTP(jwtManager))
		r.Get("/download/bills/{id}.pdf", downloads.bill)
		r.Get("/download/reports/monthly-sales.xlsx", downloads.monthlySales)
	})

	// h2c serves HTTP/2 without TLS, which gRPC clients of Connect need.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openBlobs(ctx context.Context, cfg *config.Config) (blob.Store, func(), error) {
	switch cfg.StorageProvider {
	case "gcs":
		g, err := blob.NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentials)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Invoice archive on GCS", "bucket", cfg.GCSBucket)
		return g, func() { g.Close() }, nil
	default:
		l, err := blob.NewLocal(cfg.MediaRoot)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Invoice archive on local disk", "root", cfg.MediaRoot)
		return l, func() {}, nil
	}
}

// requestLogger logs all plain HTTP requests.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
