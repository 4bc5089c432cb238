package main

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage/sqlite"
)

func TestBackfill(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	items := []*models.Item{
		{Code: "FCM500", Name: "Full Cream", Category: models.CategoryMilk},
		{Code: "CRD", Name: "Curd 450g", Category: models.CategoryCurd},
		{Code: "TM1", Name: "Toned Milk", Category: models.CategoryMilk, UnitVolumeML: 1000},
		{Code: "GH", Name: "Ghee", Category: models.CategoryMilk},
		{Code: "PN200", Name: "Paneer 200g", Category: "other"},
	}
	for _, item := range items {
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	// A legacy row whose category was saved as typed.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, `UPDATE items SET category = 'MILK' WHERE id = ?`, items[0].ID); err != nil {
		t.Fatalf("failed to write legacy category: %v", err)
	}
	db.Close()

	dry, err := backfill(ctx, store, true)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if dry.Updated != 2 {
		t.Errorf("dry run updated = %d, want 2", dry.Updated)
	}
	if got, _ := store.GetItem(ctx, items[0].ID); got.UnitVolumeML != 0 {
		t.Errorf("dry run wrote volume %d", got.UnitVolumeML)
	}

	result, err := backfill(ctx, store, false)
	if err != nil {
		t.Fatalf("backfill failed: %v", err)
	}
	if result.Updated != 2 {
		t.Errorf("updated = %d, want 2", result.Updated)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0].ID != items[3].ID {
		t.Errorf("unresolved = %v, want only Ghee", result.Unresolved)
	}

	want := map[string]int{items[0].ID: 500, items[1].ID: 450, items[2].ID: 1000, items[4].ID: 0}
	for id, ml := range want {
		got, err := store.GetItem(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.UnitVolumeML != ml {
			t.Errorf("item %s volume = %d, want %d", got.Code, got.UnitVolumeML, ml)
		}
	}

	again, err := backfill(ctx, store, false)
	if err != nil {
		t.Fatal(err)
	}
	if again.Updated != 0 {
		t.Errorf("second run updated = %d, want 0", again.Updated)
	}
}
