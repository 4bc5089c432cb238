// Command commission-close computes monthly commission records for every
// commissioned customer. Run it early each month; with no flags it closes
// the previous month. Settled records are left alone, so reruns are safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mmynk/milkagency/internal/cache"
	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/config"
	"github.com/mmynk/milkagency/internal/metrics"
	"github.com/mmynk/milkagency/internal/service"
	"github.com/mmynk/milkagency/internal/storage/sqlite"
	"github.com/mmynk/milkagency/pkg/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	year := flag.Int("year", 0, "year to close (default: previous month's year)")
	month := flag.Int("month", 0, "month to close, 1-12 (default: previous month)")
	flag.Parse()

	logging.Setup()

	if err := run(*envFile, *year, *month); err != nil {
		slog.Error("Commission close failed", "error", err)
		os.Exit(1)
	}
}

func run(envFile string, year, month int) error {
	if year == 0 || month == 0 {
		year, month = calculator.PreviousMonth(time.Now())
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d", month)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	ctx := context.Background()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	// Share the server's customer locks when Redis is configured.
	var locker cache.Locker = cache.NewMemoryLocker()
	if cfg.RedisAddress != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddress)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = cache.NewRedisLocker(client)
	} else {
		slog.Warn("No REDIS_ADDRESS; customer locks are local to this process")
	}

	closed, err := service.NewCommissionService(store, locker, metrics.New()).Close(ctx, year, month)
	if err != nil {
		return err
	}

	for _, c := range closed.Commissions {
		fmt.Printf("%s\tmilk=%s L/day\tcurd=%s L/day\tcommission=%s\n",
			c.CustomerID, c.MilkVolume.StringFixed(2), c.CurdVolume.StringFixed(2), c.CommissionAmount.StringFixed(2))
	}
	fmt.Printf("closed %d-%02d: %d computed, %d skipped\n", closed.Year, closed.Month, len(closed.Commissions), closed.Skipped)
	return nil
}
