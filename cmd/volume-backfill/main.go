// Command volume-backfill fills in unit volumes for items created before
// volumes were recorded, inferring them from the item code or name.
// Items whose volume cannot be inferred are listed for manual entry.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/config"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/internal/storage/sqlite"
	"github.com/mmynk/milkagency/pkg/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	result, err := backfill(context.Background(), store, *dryRun)
	if err != nil {
		slog.Error("Backfill failed", "error", err)
		os.Exit(1)
	}
	for _, item := range result.Unresolved {
		fmt.Printf("unresolved\t%s\t%s\t%s\n", item.ID, item.Code, item.Name)
	}
	fmt.Printf("updated %d items, %d unresolved\n", result.Updated, len(result.Unresolved))
}

type backfillResult struct {
	Updated    int
	Unresolved []*models.Item
}

// backfill sets UnitVolumeML on milk and curd items that lack it. The code
// is tried before the name.
func backfill(ctx context.Context, store storage.Store, dryRun bool) (*backfillResult, error) {
	items, err := store.ListItems(ctx, models.ItemFilter{IncludeFrozen: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	result := &backfillResult{}
	for _, item := range items {
		if item.UnitVolumeML > 0 {
			continue
		}
		if category := models.NormalizeCategory(item.Category); category != models.CategoryMilk && category != models.CategoryCurd {
			continue
		}
		ml, ok := calculator.ParseLegacyVolume(item.Code)
		if !ok {
			ml, ok = calculator.ParseLegacyVolume(item.Name)
		}
		if !ok {
			result.Unresolved = append(result.Unresolved, item)
			continue
		}

		slog.Info("Unit volume inferred", "item_id", item.ID, "code", item.Code, "ml", ml, "dry_run", dryRun)
		if !dryRun {
			if err := store.SetUnitVolume(ctx, item.ID, ml); err != nil {
				return nil, fmt.Errorf("failed to set volume for %s: %w", item.ID, err)
			}
		}
		result.Updated++
	}
	return result, nil
}
