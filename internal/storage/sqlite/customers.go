package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

const customerColumns = `id, phone, name, shop_name, retailer_id, flat_number, area, pin_code, city, state,
	opening_due, due, is_commissioned, is_delivery, frozen, password_hash, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(
		&c.ID, &c.Phone, &c.Name, &c.ShopName, &c.RetailerID, &c.FlatNumber, &c.Area, &c.PinCode,
		&c.City, &c.State, &c.OpeningDue, &c.Due, &c.IsCommissioned, &c.IsDelivery, &c.Frozen,
		&c.PasswordHash, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCustomer persists a new customer. Due starts at the opening due.
func (s *SQLiteStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := s.now().Unix()
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.Due = c.OpeningDue

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Phone, c.Name, c.ShopName, c.RetailerID, c.FlatNumber, c.Area, c.PinCode, c.City, c.State,
		c.OpeningDue, c.Due, c.IsCommissioned, c.IsDelivery, c.Frozen, c.PasswordHash, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: customer with phone %s", storage.ErrDuplicate, c.Phone)
	}
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// GetCustomer retrieves a customer by ID.
func (s *SQLiteStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return getCustomer(ctx, s.db, id)
}

func getCustomer(ctx context.Context, q queryer, id string) (*models.Customer, error) {
	c, err := scanCustomer(q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: customer %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// GetCustomerByPhone retrieves a customer by phone number.
func (s *SQLiteStore) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE phone = ?`, phone))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: customer with phone %s", storage.ErrNotFound, phone)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by phone: %w", err)
	}
	return c, nil
}

// UpdateCustomer rewrites a customer's profile fields.
func (s *SQLiteStore) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	c.UpdatedAt = s.now().Unix()
	result, err := s.db.ExecContext(ctx,
		`UPDATE customers SET phone = ?, name = ?, shop_name = ?, retailer_id = ?, flat_number = ?, area = ?,
			pin_code = ?, city = ?, state = ?, is_commissioned = ?, is_delivery = ?, updated_at = ?
		 WHERE id = ?`,
		c.Phone, c.Name, c.ShopName, c.RetailerID, c.FlatNumber, c.Area, c.PinCode, c.City, c.State,
		c.IsCommissioned, c.IsDelivery, c.UpdatedAt, c.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: customer with phone %s", storage.ErrDuplicate, c.Phone)
	}
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return expectOneRow(result, "customer", c.ID)
}

// ListCustomers returns customers ordered by name.
func (s *SQLiteStore) ListCustomers(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1 = 1`
	var args []any
	if !filter.IncludeFrozen {
		query += ` AND frozen = 0`
	}
	if filter.Area != "" {
		query += ` AND area = ?`
		args = append(args, filter.Area)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query += ` AND (LOWER(name) LIKE ? OR LOWER(shop_name) LIKE ? OR phone LIKE ?)`
		args = append(args, like, like, like)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}
	return customers, nil
}

// SetCustomerFrozen freezes or unfreezes a customer.
func (s *SQLiteStore) SetCustomerFrozen(ctx context.Context, id string, frozen bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE customers SET frozen = ?, updated_at = ? WHERE id = ?`,
		frozen, s.now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set customer frozen: %w", err)
	}
	return expectOneRow(result, "customer", id)
}

// SetCustomerPasswordHash stores the portal password hash.
func (s *SQLiteStore) SetCustomerPasswordHash(ctx context.Context, id, hash string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE customers SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, s.now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set customer password: %w", err)
	}
	return expectOneRow(result, "customer", id)
}

// SetOpeningDue changes the carried-over balance and recomputes due.
func (s *SQLiteStore) SetOpeningDue(ctx context.Context, id string, amount decimal.Decimal) (*models.Customer, error) {
	var customer *models.Customer
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE customers SET opening_due = ?, updated_at = ? WHERE id = ?`,
			amount, s.now().Unix(), id,
		)
		if err != nil {
			return fmt.Errorf("failed to set opening due: %w", err)
		}
		if err := expectOneRow(result, "customer", id); err != nil {
			return err
		}
		if _, err := recomputeDue(ctx, tx, id); err != nil {
			return err
		}
		customer, err = getCustomer(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// RecomputeDue rebuilds the cached due from the ledger.
func (s *SQLiteStore) RecomputeDue(ctx context.Context, id string) (decimal.Decimal, error) {
	var due decimal.Decimal
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		due, err = recomputeDue(ctx, tx, id)
		return err
	})
	return due, err
}

// DueAsOf evaluates the ledger at a point in time.
func (s *SQLiteStore) DueAsOf(ctx context.Context, customerID string, asOf time.Time) (decimal.Decimal, error) {
	c, err := getCustomer(ctx, s.db, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	bills, payments, err := loadLedger(ctx, s.db, customerID, ledgerWindow{
		beforeDate: formatDate(asOf),
		beforeUnix: asOf.Unix(),
	})
	if err != nil {
		return decimal.Zero, err
	}
	return calculator.ActualDue(c.OpeningDue, bills, payments), nil
}

// ledgerWindow restricts which ledger rows are loaded. Zero values mean no limit.
type ledgerWindow struct {
	excludeBillID string
	beforeDate    string
	beforeUnix    int64
}

// loadLedger reads a customer's bills and payments for due reconciliation.
func loadLedger(ctx context.Context, q queryer, customerID string, w ledgerWindow) ([]calculator.BillForDue, []calculator.PaymentForDue, error) {
	billQuery := `SELECT total_amount, deleted_at FROM bills WHERE customer_id = ?`
	billArgs := []any{customerID}
	if w.excludeBillID != "" {
		billQuery += ` AND id != ?`
		billArgs = append(billArgs, w.excludeBillID)
	}
	if w.beforeDate != "" {
		billQuery += ` AND invoice_date < ?`
		billArgs = append(billArgs, w.beforeDate)
	}

	rows, err := q.QueryContext(ctx, billQuery, billArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bills for due: %w", err)
	}
	var bills []calculator.BillForDue
	for rows.Next() {
		var b calculator.BillForDue
		var deletedAt int64
		if err := rows.Scan(&b.TotalAmount, &deletedAt); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan bill for due: %w", err)
		}
		b.Deleted = deletedAt != 0
		bills = append(bills, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate bills for due: %w", err)
	}

	payQuery := `SELECT amount, status FROM customer_payments WHERE customer_id = ?`
	payArgs := []any{customerID}
	if w.excludeBillID != "" {
		payQuery += ` AND bill_id != ?`
		payArgs = append(payArgs, w.excludeBillID)
	}
	if w.beforeUnix != 0 {
		payQuery += ` AND created_at < ?`
		payArgs = append(payArgs, w.beforeUnix)
	}

	rows, err = q.QueryContext(ctx, payQuery, payArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payments for due: %w", err)
	}
	defer rows.Close()
	var payments []calculator.PaymentForDue
	for rows.Next() {
		var p calculator.PaymentForDue
		var status string
		if err := rows.Scan(&p.Amount, &status); err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment for due: %w", err)
		}
		p.Success = status == models.PaymentSuccess
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate payments for due: %w", err)
	}
	return bills, payments, nil
}

// ledgerDue evaluates a customer's all-time ledger, optionally ignoring one bill.
func ledgerDue(ctx context.Context, q queryer, customerID, excludeBillID string) (decimal.Decimal, error) {
	var opening decimal.Decimal
	err := q.QueryRowContext(ctx, `SELECT opening_due FROM customers WHERE id = ?`, customerID).Scan(&opening)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: customer %s", storage.ErrNotFound, customerID)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read opening due: %w", err)
	}
	bills, payments, err := loadLedger(ctx, q, customerID, ledgerWindow{excludeBillID: excludeBillID})
	if err != nil {
		return decimal.Zero, err
	}
	return calculator.ActualDue(opening, bills, payments), nil
}

// recomputeDue writes the ledger balance into customers.due.
func recomputeDue(ctx context.Context, q queryer, customerID string) (decimal.Decimal, error) {
	due, err := ledgerDue(ctx, q, customerID, "")
	if err != nil {
		return decimal.Zero, err
	}
	if _, err := q.ExecContext(ctx,
		`UPDATE customers SET due = ?, updated_at = ? WHERE id = ?`,
		due, time.Now().Unix(), customerID,
	); err != nil {
		return decimal.Zero, fmt.Errorf("failed to update due: %w", err)
	}
	return due, nil
}

func expectOneRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, kind, id)
	}
	return nil
}
