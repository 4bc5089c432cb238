package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// GetDenominations returns the till count. A zero count is returned if none was saved.
func (s *SQLiteStore) GetDenominations(ctx context.Context) (models.Denominations, error) {
	var d models.Denominations
	err := s.db.QueryRowContext(ctx,
		`SELECT c500, c200, c100, c50, c20, c10, coin20, coin10, coin5, coin2, coin1 FROM cashbook WHERE id = 1`,
	).Scan(&d.C500, &d.C200, &d.C100, &d.C50, &d.C20, &d.C10, &d.Coin20, &d.Coin10, &d.Coin5, &d.Coin2, &d.Coin1)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Denominations{}, nil
	}
	if err != nil {
		return d, fmt.Errorf("failed to get cashbook: %w", err)
	}
	return d, nil
}

// SaveDenominations overwrites the till count.
func (s *SQLiteStore) SaveDenominations(ctx context.Context, d models.Denominations) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cashbook (id, c500, c200, c100, c50, c20, c10, coin20, coin10, coin5, coin2, coin1, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			c500 = excluded.c500, c200 = excluded.c200, c100 = excluded.c100, c50 = excluded.c50,
			c20 = excluded.c20, c10 = excluded.c10, coin20 = excluded.coin20, coin10 = excluded.coin10,
			coin5 = excluded.coin5, coin2 = excluded.coin2, coin1 = excluded.coin1, updated_at = excluded.updated_at`,
		d.C500, d.C200, d.C100, d.C50, d.C20, d.C10, d.Coin20, d.Coin10, d.Coin5, d.Coin2, d.Coin1, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save cashbook: %w", err)
	}
	return nil
}

// AddExpense records a cash expense.
func (s *SQLiteStore) AddExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := s.now()
	e.Date = civilDate(e.Date, now)
	if e.CreatedAt == 0 {
		e.CreatedAt = now.Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, category, description, date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount, e.Category, e.Description, formatDate(e.Date), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ListExpenses returns expenses dated in [from, to], newest first. Zero bounds are open.
func (s *SQLiteStore) ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error) {
	query := `SELECT id, amount, category, description, date, created_at FROM expenses WHERE 1 = 1`
	var args []any
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, formatDate(from))
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, formatDate(to))
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var date string
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.Description, &date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = parseDate(date)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(result, "expense", id)
}

// AddBankBalance appends a bank balance snapshot.
func (s *SQLiteStore) AddBankBalance(ctx context.Context, b *models.BankBalance) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := s.now()
	b.Date = civilDate(b.Date, now)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bank_balances (id, amount, date, created_at) VALUES (?, ?, ?, ?)`,
		b.ID, b.Amount, formatDate(b.Date), now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bank balance: %w", err)
	}
	return nil
}

// LatestBankBalance returns the most recent snapshot, or nil if there is none.
func (s *SQLiteStore) LatestBankBalance(ctx context.Context) (*models.BankBalance, error) {
	b := &models.BankBalance{}
	var date string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, amount, date FROM bank_balances ORDER BY date DESC, created_at DESC LIMIT 1`,
	).Scan(&b.ID, &b.Amount, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank balance: %w", err)
	}
	b.Date = parseDate(date)
	return b, nil
}

// UpsertDailyPayment records what a company invoiced and was paid on a day.
// A second call for the same (company, date) overwrites the first.
func (s *SQLiteStore) UpsertDailyPayment(ctx context.Context, p *models.DailyPayment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Date = civilDate(p.Date, s.now())
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO daily_payments (id, company_id, date, invoice_amount, paid_amount)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (company_id, date) DO UPDATE SET
			invoice_amount = excluded.invoice_amount, paid_amount = excluded.paid_amount
		 RETURNING id`,
		p.ID, p.CompanyID, formatDate(p.Date), p.InvoiceAmount, p.PaidAmount,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: company %s", storage.ErrNotFound, p.CompanyID)
		}
		return fmt.Errorf("failed to upsert daily payment: %w", err)
	}
	return nil
}

// CompanyDues aggregates daily payments per company for a month.
func (s *SQLiteStore) CompanyDues(ctx context.Context, year, month int) ([]models.CompanyDue, error) {
	from, to := monthRange(year, month)
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.name, d.date, d.invoice_amount, d.paid_amount
		 FROM daily_payments d JOIN companies c ON c.id = d.company_id
		 WHERE d.date >= ? AND d.date < ?
		 ORDER BY c.name, d.date`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query company dues: %w", err)
	}
	defer rows.Close()

	var dues []models.CompanyDue
	for rows.Next() {
		var companyID, name, date string
		var invoice, paid decimal.Decimal
		if err := rows.Scan(&companyID, &name, &date, &invoice, &paid); err != nil {
			return nil, fmt.Errorf("failed to scan company due: %w", err)
		}
		if len(dues) == 0 || dues[len(dues)-1].CompanyID != companyID {
			dues = append(dues, models.CompanyDue{CompanyID: companyID, CompanyName: name})
		}
		d := &dues[len(dues)-1]
		d.TotalInvoice = d.TotalInvoice.Add(invoice)
		d.TotalPaid = d.TotalPaid.Add(paid)
		d.TotalDue = d.TotalInvoice.Sub(d.TotalPaid)
		d.LastUpdated = parseDate(date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company dues: %w", err)
	}
	return dues, nil
}
