package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// CreateCompany persists a new company.
func (s *SQLiteStore) CreateCompany(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, website) VALUES (?, ?, ?)`,
		company.ID, company.Name, company.Website,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: company %s", storage.ErrDuplicate, company.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

// GetCompany retrieves a company by ID.
func (s *SQLiteStore) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	company := &models.Company{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, website FROM companies WHERE id = ?`, id,
	).Scan(&company.ID, &company.Name, &company.Website)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: company %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanies returns all companies ordered by name.
func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, website FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company := &models.Company{}
		if err := rows.Scan(&company.ID, &company.Name, &company.Website); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return companies, nil
}

const itemColumns = `id, COALESCE(code, ''), name, COALESCE(company_id, ''), category, selling_price, buying_price, mrp,
	stock_quantity, pcs_count, unit_volume_ml, description, frozen`

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(
		&item.ID, &item.Code, &item.Name, &item.CompanyID, &item.Category, &item.SellingPrice,
		&item.BuyingPrice, &item.MRP, &item.StockQuantity, &item.PcsCount, &item.UnitVolumeML,
		&item.Description, &item.Frozen,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItem persists a new catalog item.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Category = models.NormalizeCategory(item.Category)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, code, name, company_id, category, selling_price, buying_price, mrp,
			stock_quantity, pcs_count, unit_volume_ml, description, frozen)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, nullIfEmpty(item.Code), item.Name, nullIfEmpty(item.CompanyID), item.Category,
		item.SellingPrice, item.BuyingPrice, item.MRP, item.StockQuantity, item.PcsCount,
		item.UnitVolumeML, item.Description, item.Frozen,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: item code %s", storage.ErrDuplicate, item.Code)
	}
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*models.Item, error) {
	return getItem(ctx, s.db, id)
}

func getItem(ctx context.Context, q queryer, id string) (*models.Item, error) {
	item, err := scanItem(q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// UpdateItem rewrites an item's catalog fields. Stock and frozen are left alone.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	item.Category = models.NormalizeCategory(item.Category)
	result, err := s.db.ExecContext(ctx,
		`UPDATE items SET code = ?, name = ?, company_id = ?, category = ?, selling_price = ?, buying_price = ?,
			mrp = ?, pcs_count = ?, unit_volume_ml = ?, description = ?
		 WHERE id = ?`,
		nullIfEmpty(item.Code), item.Name, nullIfEmpty(item.CompanyID), item.Category, item.SellingPrice,
		item.BuyingPrice, item.MRP, item.PcsCount, item.UnitVolumeML, item.Description, item.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: item code %s", storage.ErrDuplicate, item.Code)
	}
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return expectOneRow(result, "item", item.ID)
}

// ListItems returns items ordered by name.
func (s *SQLiteStore) ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1 = 1`
	var args []any
	if !filter.IncludeFrozen {
		query += ` AND frozen = 0`
	}
	if filter.CompanyID != "" {
		query += ` AND company_id = ?`
		args = append(args, filter.CompanyID)
	}
	if filter.Category != "" {
		query += ` AND LOWER(TRIM(category)) = ?`
		args = append(args, models.NormalizeCategory(filter.Category))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// AdjustStock adds delta to an item's stock and returns the updated item.
func (s *SQLiteStore) AdjustStock(ctx context.Context, id string, delta int) (*models.Item, error) {
	var item *models.Item
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := moveStock(ctx, tx, id, delta); err != nil {
			return err
		}
		var err error
		item, err = getItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetItemFrozen freezes or unfreezes an item.
func (s *SQLiteStore) SetItemFrozen(ctx context.Context, id string, frozen bool) error {
	result, err := s.db.ExecContext(ctx, `UPDATE items SET frozen = ? WHERE id = ?`, frozen, id)
	if err != nil {
		return fmt.Errorf("failed to set item frozen: %w", err)
	}
	return expectOneRow(result, "item", id)
}

// SetUnitVolume records an item's unit volume in milliliters.
func (s *SQLiteStore) SetUnitVolume(ctx context.Context, id string, ml int) error {
	result, err := s.db.ExecContext(ctx, `UPDATE items SET unit_volume_ml = ? WHERE id = ?`, ml, id)
	if err != nil {
		return fmt.Errorf("failed to set unit volume: %w", err)
	}
	return expectOneRow(result, "item", id)
}

// moveStock applies delta to an item's stock. Stock may go negative; that
// is logged but not refused.
func moveStock(ctx context.Context, q queryer, itemID string, delta int) error {
	if delta == 0 {
		return nil
	}
	var stock int
	err := q.QueryRowContext(ctx,
		`UPDATE items SET stock_quantity = stock_quantity + ? WHERE id = ? RETURNING stock_quantity`,
		delta, itemID,
	).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: item %s", storage.ErrNotFound, itemID)
	}
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if stock < 0 {
		slog.Warn("Stock went negative", "item_id", itemID, "stock", stock, "delta", delta)
	}
	return nil
}
