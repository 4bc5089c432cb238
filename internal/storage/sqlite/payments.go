package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// RecordPayment appends a payment to a customer's ledger and recomputes due.
func (s *SQLiteStore) RecordPayment(ctx context.Context, payment *models.CustomerPayment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = s.now().Unix()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentSuccess
	}
	if payment.Method == "" {
		payment.Method = models.MethodUPI
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getCustomer(ctx, tx, payment.CustomerID); err != nil {
			return err
		}

		n, err := countRows(ctx, tx,
			`SELECT COUNT(*) FROM customer_payments WHERE transaction_id = ?`, payment.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to check transaction id: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateTransaction, payment.TransactionID)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO customer_payments (id, customer_id, bill_id, amount, transaction_id, method, status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			payment.ID, payment.CustomerID, payment.BillID, payment.Amount, payment.TransactionID,
			payment.Method, payment.Status, payment.CreatedAt,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateTransaction, payment.TransactionID)
		}
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		_, err = recomputeDue(ctx, tx, payment.CustomerID)
		return err
	})
}

const paymentColumns = `p.id, p.customer_id, p.bill_id, p.amount, p.transaction_id, p.method, p.status, p.created_at,
	COALESCE(c.name, '')`

func scanPayment(row rowScanner) (*models.CustomerPayment, error) {
	p := &models.CustomerPayment{}
	err := row.Scan(&p.ID, &p.CustomerID, &p.BillID, &p.Amount, &p.TransactionID, &p.Method, &p.Status,
		&p.CreatedAt, &p.CustomerName)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, id string) (*models.CustomerPayment, error) {
	return getPayment(ctx, s.db, id)
}

func getPayment(ctx context.Context, q queryer, id string) (*models.CustomerPayment, error) {
	p, err := scanPayment(q.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM customer_payments p LEFT JOIN customers c ON c.id = p.customer_id
		 WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// UpdatePaymentStatus changes a payment's status and recomputes due.
func (s *SQLiteStore) UpdatePaymentStatus(ctx context.Context, id, status string) (*models.CustomerPayment, error) {
	var payment *models.CustomerPayment
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		existing, err := getPayment(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing.BillID != "" {
			return fmt.Errorf("%w: payment %s", storage.ErrCounterPayment, id)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE customer_payments SET status = ? WHERE id = ?`, status, id); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		payment, err = getPayment(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = recomputeDue(ctx, tx, payment.CustomerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment removes a payment and recomputes due.
func (s *SQLiteStore) DeletePayment(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		payment, err := getPayment(ctx, tx, id)
		if err != nil {
			return err
		}
		if payment.BillID != "" {
			return fmt.Errorf("%w: payment %s", storage.ErrCounterPayment, id)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM customer_payments WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		_, err = recomputeDue(ctx, tx, payment.CustomerID)
		return err
	})
}

// ListPayments returns payments newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]*models.CustomerPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM customer_payments p LEFT JOIN customers c ON c.id = p.customer_id
		WHERE 1 = 1`
	var args []any
	if filter.CustomerID != "" {
		query += ` AND p.customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.Customer != "" {
		like := "%" + strings.ToLower(filter.Customer) + "%"
		query += ` AND (LOWER(c.name) LIKE ? OR c.phone LIKE ?)`
		args = append(args, like, like)
	}
	if filter.TransactionID != "" {
		query += ` AND p.transaction_id LIKE ?`
		args = append(args, "%"+filter.TransactionID+"%")
	}
	query += ` ORDER BY p.created_at DESC, p.rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.CustomerPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
