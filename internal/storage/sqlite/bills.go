package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// counterPaymentPrefix marks the payment recorded with a bill's last_paid.
const counterPaymentPrefix = "BILL-"

// pricedLine is a validated bill line ready to be written.
type pricedLine struct {
	item     *models.Item
	qty      int
	price    decimal.Decimal
	discount decimal.Decimal
	total    decimal.Decimal
	profit   decimal.Decimal
}

// pricedBill is everything about a bill that can be computed before any write.
type pricedBill struct {
	customer *models.Customer
	lines    []pricedLine
	subtotal decimal.Decimal
	profit   decimal.Decimal
}

// priceBill validates a bill input and prices its lines. It performs no writes.
func priceBill(ctx context.Context, q queryer, input models.BillInput) (*pricedBill, error) {
	priced := &pricedBill{}

	for _, line := range input.Lines {
		if line.Quantity > 0 {
			priced.lines = append(priced.lines, pricedLine{qty: line.Quantity})
		}
	}
	if len(priced.lines) == 0 {
		return nil, storage.ErrEmptyBill
	}

	if input.CustomerID != "" {
		customer, err := getCustomer(ctx, q, input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer.Frozen {
			return nil, fmt.Errorf("%w: customer %s", storage.ErrFrozen, customer.Name)
		}
		priced.customer = customer
	}

	sum := decimal.Zero
	i := 0
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			continue
		}
		item, err := getItem(ctx, q, line.ItemID)
		if err != nil {
			return nil, err
		}
		if item.Frozen {
			return nil, fmt.Errorf("%w: item %s", storage.ErrFrozen, item.Name)
		}

		price := item.SellingPrice
		if line.Price != nil {
			price = *line.Price
		}
		pl := &priced.lines[i]
		pl.item = item
		pl.price = price
		pl.discount = line.Discount
		pl.total = calculator.LineTotal(price, line.Discount, line.Quantity)
		pl.profit = calculator.LineProfit(price, item.BuyingPrice, line.Discount, line.Quantity)

		sum = sum.Add(pl.total)
		priced.profit = priced.profit.Add(pl.profit)
		i++
	}
	priced.subtotal = calculator.RoundInvoiceTotal(sum)
	return priced, nil
}

// CreateBill writes a new bill and all of its side effects in one transaction.
func (s *SQLiteStore) CreateBill(ctx context.Context, input models.BillInput) (*models.Bill, error) {
	var bill *models.Bill
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		bill, err = s.createBillTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *SQLiteStore) createBillTx(ctx context.Context, tx *sql.Tx, input models.BillInput) (*models.Bill, error) {
	priced, err := priceBill(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	bill := &models.Bill{
		ID:          uuid.New().String(),
		CustomerID:  input.CustomerID,
		OrderID:     input.OrderID,
		InvoiceDate: civilDate(input.InvoiceDate, now),
		LastPaid:    input.LastPaid,
		Profit:      priced.profit,
		CreatedAt:   now.Unix(),
	}

	var commission *models.MonthlyCommission
	if priced.customer != nil {
		bill.OpDueAmount, err = ledgerDue(ctx, tx, bill.CustomerID, "")
		if err != nil {
			return nil, err
		}
		// A bill with nothing to pay leaves the commission for the next one.
		if priced.customer.IsCommissioned && priced.subtotal.IsPositive() {
			commission, err = latestOpenCommission(ctx, tx, bill.CustomerID)
			if err != nil {
				return nil, err
			}
		}
	}
	if commission != nil {
		bill.CommissionDeducted = commission.CommissionAmount
		bill.CommissionYear = commission.Year
		bill.CommissionMonth = commission.Month
	}
	bill.TotalAmount = calculator.ApplyCommission(priced.subtotal, bill.CommissionDeducted)

	bill.InvoiceNumber, err = nextInvoiceNumber(ctx, tx, now)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, invoice_number, customer_id, order_id, invoice_date, total_amount, op_due_amount,
			last_paid, profit, commission_deducted, commission_year, commission_month, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.InvoiceNumber, nullIfEmpty(bill.CustomerID), bill.OrderID, formatDate(bill.InvoiceDate),
		bill.TotalAmount, bill.OpDueAmount, bill.LastPaid, bill.Profit, bill.CommissionDeducted,
		bill.CommissionYear, bill.CommissionMonth, bill.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bill: %w", err)
	}

	bill.Items, err = writeBillLines(ctx, tx, bill.ID, priced.lines)
	if err != nil {
		return nil, err
	}

	if commission != nil {
		if err := markCommissionDeducted(ctx, tx, commission.ID, bill.ID); err != nil {
			return nil, err
		}
	}

	if bill.CustomerID != "" {
		if err := writeCounterPayment(ctx, tx, bill, now); err != nil {
			return nil, err
		}
		if _, err := recomputeDue(ctx, tx, bill.CustomerID); err != nil {
			return nil, err
		}
	}

	return bill, nil
}

// UpdateBill replaces a bill's lines and counter payment. The invoice number
// and any commission already deducted are kept.
func (s *SQLiteStore) UpdateBill(ctx context.Context, id string, input models.BillInput) (*models.Bill, error) {
	var bill *models.Bill
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		old, err := getBill(ctx, tx, id)
		if err != nil {
			return err
		}
		if old.DeletedAt != 0 {
			return fmt.Errorf("%w: bill %s", storage.ErrNotFound, id)
		}

		priced, err := priceBill(ctx, tx, input)
		if err != nil {
			return err
		}

		// Undo the old bill's stock and counter payment.
		for _, it := range old.Items {
			if err := moveStock(ctx, tx, it.ItemID, it.Quantity); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bill_items WHERE bill_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete bill items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM customer_payments WHERE bill_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete counter payment: %w", err)
		}

		updated := *old
		updated.CustomerID = input.CustomerID
		if input.OrderID != "" {
			updated.OrderID = input.OrderID
		}
		if !input.InvoiceDate.IsZero() {
			updated.InvoiceDate = civilDate(input.InvoiceDate, input.InvoiceDate)
		}
		updated.LastPaid = input.LastPaid
		updated.Profit = priced.profit
		updated.OpDueAmount = decimal.Zero

		// A deducted commission belongs to the customer it was earned by, and
		// is released when the edited bill has nothing left to pay.
		var commission *models.MonthlyCommission
		customerChanged := old.CustomerID != updated.CustomerID
		if customerChanged || !priced.subtotal.IsPositive() {
			if err := reopenCommission(ctx, tx, id); err != nil {
				return err
			}
			updated.CommissionDeducted = decimal.Zero
			updated.CommissionYear, updated.CommissionMonth = 0, 0
			if customerChanged && priced.subtotal.IsPositive() && priced.customer != nil && priced.customer.IsCommissioned {
				commission, err = latestOpenCommission(ctx, tx, updated.CustomerID)
				if err != nil {
					return err
				}
			}
			if commission != nil {
				updated.CommissionDeducted = commission.CommissionAmount
				updated.CommissionYear, updated.CommissionMonth = commission.Year, commission.Month
			}
		}

		if updated.CustomerID != "" {
			updated.OpDueAmount, err = ledgerDue(ctx, tx, updated.CustomerID, id)
			if err != nil {
				return err
			}
		}
		updated.TotalAmount = calculator.ApplyCommission(priced.subtotal, updated.CommissionDeducted)

		_, err = tx.ExecContext(ctx,
			`UPDATE bills SET customer_id = ?, order_id = ?, invoice_date = ?, total_amount = ?, op_due_amount = ?,
				last_paid = ?, profit = ?, commission_deducted = ?, commission_year = ?, commission_month = ?
			 WHERE id = ?`,
			nullIfEmpty(updated.CustomerID), updated.OrderID, formatDate(updated.InvoiceDate), updated.TotalAmount,
			updated.OpDueAmount, updated.LastPaid, updated.Profit, updated.CommissionDeducted,
			updated.CommissionYear, updated.CommissionMonth, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}

		updated.Items, err = writeBillLines(ctx, tx, id, priced.lines)
		if err != nil {
			return err
		}
		if commission != nil {
			if err := markCommissionDeducted(ctx, tx, commission.ID, id); err != nil {
				return err
			}
		}

		if updated.CustomerID != "" {
			if err := writeCounterPayment(ctx, tx, &updated, s.now()); err != nil {
				return err
			}
			if _, err := recomputeDue(ctx, tx, updated.CustomerID); err != nil {
				return err
			}
		}
		if old.CustomerID != "" && old.CustomerID != updated.CustomerID {
			if _, err := recomputeDue(ctx, tx, old.CustomerID); err != nil {
				return err
			}
		}

		bill = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// DeleteBill soft-deletes a bill: stock is restored, the counter payment is
// removed, the commission it consumed is re-opened, the order it came from
// is cancelled and due is recomputed.
func (s *SQLiteStore) DeleteBill(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		old, err := getBill(ctx, tx, id)
		if err != nil {
			return err
		}
		if old.DeletedAt != 0 {
			return fmt.Errorf("%w: bill %s", storage.ErrNotFound, id)
		}

		for _, it := range old.Items {
			if err := moveStock(ctx, tx, it.ItemID, it.Quantity); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM customer_payments WHERE bill_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete counter payment: %w", err)
		}
		if err := reopenCommission(ctx, tx, id); err != nil {
			return err
		}
		if old.OrderID != "" {
			if _, err := tx.ExecContext(ctx,
				`UPDATE customer_orders SET status = ?, updated_at = ? WHERE id = ?`,
				models.OrderCancelled, s.now().Unix(), old.OrderID,
			); err != nil {
				return fmt.Errorf("failed to cancel order: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE bills SET deleted_at = ? WHERE id = ?`, s.now().Unix(), id,
		); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}

		if old.CustomerID != "" {
			if _, err := recomputeDue(ctx, tx, old.CustomerID); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetBill retrieves a bill by ID, including its lines. Deleted bills are
// returned with DeletedAt set.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	return getBill(ctx, s.db, id)
}

const billColumns = `id, invoice_number, COALESCE(customer_id, ''), order_id, invoice_date, total_amount, op_due_amount,
	last_paid, profit, commission_deducted, commission_year, commission_month, created_at, deleted_at`

func scanBill(row rowScanner) (*models.Bill, error) {
	bill := &models.Bill{}
	var invoiceDate string
	err := row.Scan(
		&bill.ID, &bill.InvoiceNumber, &bill.CustomerID, &bill.OrderID, &invoiceDate, &bill.TotalAmount,
		&bill.OpDueAmount, &bill.LastPaid, &bill.Profit, &bill.CommissionDeducted, &bill.CommissionYear,
		&bill.CommissionMonth, &bill.CreatedAt, &bill.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	bill.InvoiceDate = parseDate(invoiceDate)
	return bill, nil
}

func getBill(ctx context.Context, q queryer, id string) (*models.Bill, error) {
	bill, err := scanBill(q.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bill %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, item_id, item_name, price_per_unit, discount, quantity, total_amount
		 FROM bill_items WHERE bill_id = ? ORDER BY rowid`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.BillItem
		if err := rows.Scan(&it.ID, &it.ItemID, &it.ItemName, &it.PricePerUnit, &it.Discount, &it.Quantity, &it.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		bill.Items = append(bill.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill items: %w", err)
	}
	return bill, nil
}

// ListBills returns non-deleted bills, newest first. Lines are not loaded.
func (s *SQLiteStore) ListBills(ctx context.Context, filter models.BillFilter) ([]*models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE deleted_at = 0`
	var args []any
	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if !filter.From.IsZero() {
		query += ` AND invoice_date >= ?`
		args = append(args, formatDate(filter.From))
	}
	if !filter.To.IsZero() {
		query += ` AND invoice_date <= ?`
		args = append(args, formatDate(filter.To))
	}
	query += ` ORDER BY invoice_date DESC, created_at DESC, invoice_number DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// writeBillLines inserts priced lines and debits stock for each.
func writeBillLines(ctx context.Context, tx *sql.Tx, billID string, lines []pricedLine) ([]models.BillItem, error) {
	items := make([]models.BillItem, 0, len(lines))
	for _, line := range lines {
		it := models.BillItem{
			ID:           uuid.New().String(),
			ItemID:       line.item.ID,
			ItemName:     line.item.Name,
			PricePerUnit: line.price,
			Discount:     line.discount,
			Quantity:     line.qty,
			TotalAmount:  line.total,
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bill_items (id, bill_id, item_id, item_name, price_per_unit, discount, quantity, total_amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, billID, it.ItemID, it.ItemName, it.PricePerUnit, it.Discount, it.Quantity, it.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert bill item: %w", err)
		}
		if err := moveStock(ctx, tx, it.ItemID, -it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// writeCounterPayment records the bill's last_paid as a SUCCESS cash payment.
func writeCounterPayment(ctx context.Context, tx *sql.Tx, bill *models.Bill, now time.Time) error {
	if !bill.LastPaid.IsPositive() {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO customer_payments (id, customer_id, bill_id, amount, transaction_id, method, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), bill.CustomerID, bill.ID, bill.LastPaid, counterPaymentPrefix+bill.InvoiceNumber,
		models.MethodCash, models.PaymentSuccess, now.Unix(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s%s", storage.ErrDuplicateTransaction, counterPaymentPrefix, bill.InvoiceNumber)
	}
	if err != nil {
		return fmt.Errorf("failed to insert counter payment: %w", err)
	}
	return nil
}

// nextInvoiceNumber returns INV-<yyyymmdd>-<nnnn>, numbering bills created
// on the same day. Deleted bills keep their numbers.
func nextInvoiceNumber(ctx context.Context, q queryer, now time.Time) (string, error) {
	prefix := "INV-" + now.Format("20060102") + "-"
	n, err := countRows(ctx, q, `SELECT COUNT(*) FROM bills WHERE invoice_number LIKE ?`, prefix+"%")
	if err != nil {
		return "", fmt.Errorf("failed to count bills: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, n+1), nil
}

// civilDate truncates t to a UTC calendar date, defaulting to fallback's date.
func civilDate(t, fallback time.Time) time.Time {
	if t.IsZero() {
		t = fallback
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
