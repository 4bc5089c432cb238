package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// VolumesFor sums the liters of milk and curd billed to a customer in a month.
func (s *SQLiteStore) VolumesFor(ctx context.Context, customerID string, year, month int) (models.MonthlyVolume, error) {
	vol := models.MonthlyVolume{CustomerID: customerID}
	from, to := monthRange(year, month)

	// Rows written before categories were normalized may be mixed case.
	rows, err := s.db.QueryContext(ctx,
		`SELECT LOWER(TRIM(i.category)), i.unit_volume_ml, bi.quantity
		 FROM bill_items bi
		 JOIN bills b ON b.id = bi.bill_id
		 JOIN items i ON i.id = bi.item_id
		 WHERE b.customer_id = ? AND b.deleted_at = 0 AND b.invoice_date >= ? AND b.invoice_date < ?
		   AND LOWER(TRIM(i.category)) IN (?, ?)`,
		customerID, from, to, models.CategoryMilk, models.CategoryCurd,
	)
	if err != nil {
		return vol, fmt.Errorf("failed to query volumes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var ml, qty int
		if err := rows.Scan(&category, &ml, &qty); err != nil {
			return vol, fmt.Errorf("failed to scan volume: %w", err)
		}
		liters := calculator.LitersFor(ml, qty)
		switch category {
		case models.CategoryMilk:
			vol.MilkLiters = vol.MilkLiters.Add(liters)
		case models.CategoryCurd:
			vol.CurdLiters = vol.CurdLiters.Add(liters)
		}
	}
	if err := rows.Err(); err != nil {
		return vol, fmt.Errorf("failed to iterate volumes: %w", err)
	}
	return vol, nil
}

// UpsertCommission creates or replaces the record for (customer, year, month).
func (s *SQLiteStore) UpsertCommission(ctx context.Context, c *models.MonthlyCommission) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		existing, err := getCommission(ctx, tx, c.CustomerID, c.Year, c.Month)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		if existing != nil {
			if existing.Deducted {
				return fmt.Errorf("%w: %d-%02d for customer %s", storage.ErrAlreadyDeducted, c.Year, c.Month, c.CustomerID)
			}
			c.ID = existing.ID
			c.CreatedAt = existing.CreatedAt
			_, err := tx.ExecContext(ctx,
				`UPDATE monthly_commissions SET milk_volume = ?, curd_volume = ?, total_volume = ?,
					milk_commission = ?, curd_commission = ?, commission_amount = ?
				 WHERE id = ?`,
				c.MilkVolume, c.CurdVolume, c.TotalVolume, c.MilkCommission, c.CurdCommission,
				c.CommissionAmount, c.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to update commission: %w", err)
			}
			return nil
		}

		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.CreatedAt == 0 {
			c.CreatedAt = s.now().Unix()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO monthly_commissions (id, customer_id, year, month, milk_volume, curd_volume, total_volume,
				milk_commission, curd_commission, commission_amount, deducted, bill_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, '', ?)`,
			c.ID, c.CustomerID, c.Year, c.Month, c.MilkVolume, c.CurdVolume, c.TotalVolume,
			c.MilkCommission, c.CurdCommission, c.CommissionAmount, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert commission: %w", err)
		}
		return nil
	})
}

const commissionColumns = `id, customer_id, year, month, milk_volume, curd_volume, total_volume, milk_commission,
	curd_commission, commission_amount, deducted, bill_id, created_at`

func scanCommission(row rowScanner) (*models.MonthlyCommission, error) {
	c := &models.MonthlyCommission{}
	err := row.Scan(&c.ID, &c.CustomerID, &c.Year, &c.Month, &c.MilkVolume, &c.CurdVolume, &c.TotalVolume,
		&c.MilkCommission, &c.CurdCommission, &c.CommissionAmount, &c.Deducted, &c.BillID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCommission retrieves the record for (customer, year, month).
func (s *SQLiteStore) GetCommission(ctx context.Context, customerID string, year, month int) (*models.MonthlyCommission, error) {
	return getCommission(ctx, s.db, customerID, year, month)
}

func getCommission(ctx context.Context, q queryer, customerID string, year, month int) (*models.MonthlyCommission, error) {
	c, err := scanCommission(q.QueryRowContext(ctx,
		`SELECT `+commissionColumns+` FROM monthly_commissions WHERE customer_id = ? AND year = ? AND month = ?`,
		customerID, year, month,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: commission %d-%02d for customer %s", storage.ErrNotFound, year, month, customerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}
	return c, nil
}

// ListCommissions returns records newest month first.
func (s *SQLiteStore) ListCommissions(ctx context.Context, filter models.CommissionFilter) ([]*models.MonthlyCommission, error) {
	query := `SELECT ` + commissionColumns + ` FROM monthly_commissions WHERE 1 = 1`
	var args []any
	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.Year != 0 {
		query += ` AND year = ?`
		args = append(args, filter.Year)
	}
	if filter.Month != 0 {
		query += ` AND month = ?`
		args = append(args, filter.Month)
	}
	if filter.OnlyOpen {
		query += ` AND deducted = 0`
	}
	query += ` ORDER BY year DESC, month DESC, customer_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	defer rows.Close()

	var commissions []*models.MonthlyCommission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		commissions = append(commissions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commissions: %w", err)
	}
	return commissions, nil
}

// latestOpenCommission returns the most recent undeducted record with a
// positive amount, or nil if there is none. Older open months stay open for
// later bills.
func latestOpenCommission(ctx context.Context, q queryer, customerID string) (*models.MonthlyCommission, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+commissionColumns+` FROM monthly_commissions
		 WHERE customer_id = ? AND deducted = 0 ORDER BY year DESC, month DESC`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find open commission: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		if c.CommissionAmount.GreaterThan(decimal.Zero) {
			return c, nil
		}
	}
	return nil, rows.Err()
}

func markCommissionDeducted(ctx context.Context, q queryer, id, billID string) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE monthly_commissions SET deducted = 1, bill_id = ? WHERE id = ?`, billID, id,
	); err != nil {
		return fmt.Errorf("failed to mark commission deducted: %w", err)
	}
	return nil
}

// reopenCommission releases the commission consumed by a bill, if any.
func reopenCommission(ctx context.Context, q queryer, billID string) error {
	if _, err := q.ExecContext(ctx,
		`UPDATE monthly_commissions SET deducted = 0, bill_id = '' WHERE bill_id = ?`, billID,
	); err != nil {
		return fmt.Errorf("failed to reopen commission: %w", err)
	}
	return nil
}
