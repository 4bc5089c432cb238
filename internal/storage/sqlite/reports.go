package sqlite

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/models"
)

// DashboardCounts builds the admin landing page snapshot for day.
func (s *SQLiteStore) DashboardCounts(ctx context.Context, day time.Time, lowStock int) (*models.DashboardCounts, error) {
	d := &models.DashboardCounts{}
	today := formatDate(day)

	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&d.TotalCustomers, `SELECT COUNT(*) FROM customers`, nil},
		{&d.FrozenCustomers, `SELECT COUNT(*) FROM customers WHERE frozen = 1`, nil},
		{&d.TotalItems, `SELECT COUNT(*) FROM items WHERE frozen = 0`, nil},
		{&d.TotalCompanies, `SELECT COUNT(*) FROM companies`, nil},
		{&d.BillsToday, `SELECT COUNT(*) FROM bills WHERE deleted_at = 0 AND invoice_date = ?`, []any{today}},
		{&d.LowStockItems, `SELECT COUNT(*) FROM items WHERE frozen = 0 AND stock_quantity > 0 AND stock_quantity <= ?`, []any{lowStock}},
		{&d.OutOfStock, `SELECT COUNT(*) FROM items WHERE frozen = 0 AND stock_quantity <= 0`, nil},
		{&d.PendingOrders, `SELECT COUNT(*) FROM customer_orders WHERE status = ?`, []any{models.OrderPending}},
	}
	for _, c := range counts {
		n, err := countRows(ctx, s.db, c.query, c.args...)
		if err != nil {
			return nil, fmt.Errorf("failed to count for dashboard: %w", err)
		}
		*c.dst = n
	}

	var err error
	d.SalesToday, err = sumDecimal(ctx, s.db,
		`SELECT total_amount FROM bills WHERE deleted_at = 0 AND invoice_date = ?`, today)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}
	d.ProfitToday, err = sumDecimal(ctx, s.db,
		`SELECT profit FROM bills WHERE deleted_at = 0 AND invoice_date = ?`, today)
	if err != nil {
		return nil, fmt.Errorf("failed to sum profit: %w", err)
	}
	d.TotalDue, err = sumDecimal(ctx, s.db,
		`SELECT due FROM customers WHERE CAST(due AS REAL) > 0`)
	if err != nil {
		return nil, fmt.Errorf("failed to sum dues: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT stock_quantity, buying_price FROM items WHERE stock_quantity > 0`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock value: %w", err)
	}
	for rows.Next() {
		var qty int
		var price decimal.Decimal
		if err := rows.Scan(&qty, &price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan stock value: %w", err)
		}
		d.StockValue = d.StockValue.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock value: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT c.name FROM customers c
		 WHERE c.frozen = 0 AND NOT EXISTS (
			SELECT 1 FROM bills b WHERE b.customer_id = c.id AND b.deleted_at = 0 AND b.invoice_date = ?)
		 ORDER BY c.name`,
		today,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query idle customers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan idle customer: %w", err)
		}
		d.IdleCustomers = append(d.IdleCustomers, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate idle customers: %w", err)
	}
	return d, nil
}

// StockSummary builds the stock dashboard. Sold quantities count bills dated on or after since.
func (s *SQLiteStore) StockSummary(ctx context.Context, since time.Time) (*models.StockSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.id, i.name, COALESCE(i.company_id, ''), COALESCE(c.name, ''), i.stock_quantity, i.buying_price,
			COALESCE((SELECT SUM(bi.quantity) FROM bill_items bi JOIN bills b ON b.id = bi.bill_id
				WHERE bi.item_id = i.id AND b.deleted_at = 0 AND b.invoice_date >= ?), 0)
		 FROM items i LEFT JOIN companies c ON c.id = i.company_id
		 WHERE i.frozen = 0
		 ORDER BY i.name`,
		formatDate(since),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock summary: %w", err)
	}
	defer rows.Close()

	summary := &models.StockSummary{}
	var lines []models.StockLine
	companies := map[string]*models.CompanyStock{}
	var companyOrder []string

	for rows.Next() {
		var line models.StockLine
		var companyID string
		var price decimal.Decimal
		if err := rows.Scan(&line.ItemID, &line.ItemName, &companyID, &line.CompanyName, &line.StockQuantity,
			&price, &line.SoldQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock line: %w", err)
		}
		if line.StockQuantity > 0 {
			line.StockValue = price.Mul(decimal.NewFromInt(int64(line.StockQuantity)))
		}
		summary.TotalValue = summary.TotalValue.Add(line.StockValue)
		lines = append(lines, line)

		cs, ok := companies[companyID]
		if !ok {
			cs = &models.CompanyStock{CompanyID: companyID, CompanyName: line.CompanyName}
			companies[companyID] = cs
			companyOrder = append(companyOrder, companyID)
		}
		cs.Items++
		cs.Quantity += line.StockQuantity
		cs.Value = cs.Value.Add(line.StockValue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock summary: %w", err)
	}

	byValue := append([]models.StockLine(nil), lines...)
	sort.SliceStable(byValue, func(i, j int) bool { return byValue[i].StockValue.GreaterThan(byValue[j].StockValue) })
	summary.TopByValue = firstN(byValue, 10)

	var sold []models.StockLine
	for _, l := range lines {
		if l.SoldQuantity > 0 {
			sold = append(sold, l)
		}
	}
	sort.SliceStable(sold, func(i, j int) bool { return sold[i].SoldQuantity > sold[j].SoldQuantity })
	summary.StockOut = firstN(sold, 10)

	for _, id := range companyOrder {
		summary.ByCompany = append(summary.ByCompany, *companies[id])
	}
	sort.SliceStable(summary.ByCompany, func(i, j int) bool {
		return summary.ByCompany[i].Value.GreaterThan(summary.ByCompany[j].Value)
	})
	return summary, nil
}

// MonthlySales returns per-customer totals for a month. Walk-in bills are
// grouped under an empty customer ID.
func (s *SQLiteStore) MonthlySales(ctx context.Context, year, month int, customerID string) ([]models.SalesRow, error) {
	from, to := monthRange(year, month)
	query := `SELECT COALESCE(b.customer_id, ''), COALESCE(c.name, ''), COALESCE(c.shop_name, ''), COALESCE(c.due, '0'),
			b.total_amount, b.profit
		 FROM bills b LEFT JOIN customers c ON c.id = b.customer_id
		 WHERE b.deleted_at = 0 AND b.invoice_date >= ? AND b.invoice_date < ?`
	args := []any{from, to}
	if customerID != "" {
		query += ` AND b.customer_id = ?`
		args = append(args, customerID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly sales: %w", err)
	}
	byCustomer := map[string]*models.SalesRow{}
	var order []string
	for rows.Next() {
		var r models.SalesRow
		var total, profit decimal.Decimal
		if err := rows.Scan(&r.CustomerID, &r.CustomerName, &r.ShopName, &r.Due, &total, &profit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan monthly sale: %w", err)
		}
		row, ok := byCustomer[r.CustomerID]
		if !ok {
			row = &r
			byCustomer[r.CustomerID] = row
			order = append(order, r.CustomerID)
		}
		row.Bills++
		row.Sales = row.Sales.Add(total)
		row.Profit = row.Profit.Add(profit)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly sales: %w", err)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	out := make([]models.SalesRow, 0, len(order))
	for _, id := range order {
		row := byCustomer[id]
		if id != "" {
			row.Paid, err = sumDecimal(ctx, s.db,
				`SELECT amount FROM customer_payments WHERE customer_id = ? AND status = ? AND created_at >= ? AND created_at < ?`,
				id, models.PaymentSuccess, start.Unix(), end.Unix())
			if err != nil {
				return nil, fmt.Errorf("failed to sum payments: %w", err)
			}
			vol, err := s.VolumesFor(ctx, id, year, month)
			if err != nil {
				return nil, err
			}
			row.Liters = vol.MilkLiters.Add(vol.CurdLiters)
		}
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sales.GreaterThan(out[j].Sales) })
	return out, nil
}

// MonthlyProfit sums the profit of a month's bills.
func (s *SQLiteStore) MonthlyProfit(ctx context.Context, year, month int) (decimal.Decimal, error) {
	from, to := monthRange(year, month)
	profit, err := sumDecimal(ctx, s.db,
		`SELECT profit FROM bills WHERE deleted_at = 0 AND invoice_date >= ? AND invoice_date < ?`, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum monthly profit: %w", err)
	}
	return profit, nil
}

func firstN(lines []models.StockLine, n int) []models.StockLine {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
