package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// PlaceOrder records a portal order at the items' current selling prices.
// Stock is not touched until the order is approved and billed.
func (s *SQLiteStore) PlaceOrder(ctx context.Context, order *models.CustomerOrder) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		customer, err := getCustomer(ctx, tx, order.CustomerID)
		if err != nil {
			return err
		}
		if customer.Frozen {
			return fmt.Errorf("%w: customer %s", storage.ErrFrozen, customer.Name)
		}

		var lines []models.CustomerOrderItem
		total := decimal.Zero
		for _, requested := range order.Items {
			if requested.RequestedQuantity <= 0 {
				continue
			}
			item, err := getItem(ctx, tx, requested.ItemID)
			if err != nil {
				return err
			}
			if item.Frozen {
				return fmt.Errorf("%w: item %s", storage.ErrFrozen, item.Name)
			}
			line := models.CustomerOrderItem{
				ID:                uuid.New().String(),
				ItemID:            item.ID,
				ItemName:          item.Name,
				RequestedQuantity: requested.RequestedQuantity,
				RequestedPrice:    item.SellingPrice,
				RequestedTotal:    calculator.LineTotal(item.SellingPrice, decimal.Zero, requested.RequestedQuantity),
			}
			total = total.Add(line.RequestedTotal)
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			return storage.ErrEmptyBill
		}

		now := s.now()
		order.ID = uuid.New().String()
		order.Status = models.OrderPending
		order.OrderDate = civilDate(order.OrderDate, now)
		order.TotalAmount = total
		order.Items = lines
		order.CreatedAt = now.Unix()
		order.UpdatedAt = order.CreatedAt
		if order.Phone == "" {
			order.Phone = customer.Phone
		}
		if order.DeliveryAddress == "" {
			order.DeliveryAddress = customer.Address()
		}
		order.OrderNumber, err = nextOrderNumber(ctx, tx, now)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO customer_orders (id, order_number, customer_id, status, order_date, delivery_date,
				delivery_address, phone, notes, admin_notes, total_amount, approved_total_amount, bill_id,
				created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '0', '', ?, ?)`,
			order.ID, order.OrderNumber, order.CustomerID, order.Status, formatDate(order.OrderDate),
			formatDate(order.DeliveryDate), order.DeliveryAddress, order.Phone, order.Notes, order.AdminNotes,
			order.TotalAmount, order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, line := range lines {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO customer_order_items (id, order_id, item_id, item_name, requested_quantity,
					requested_price, requested_total)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				line.ID, order.ID, line.ItemID, line.ItemName, line.RequestedQuantity, line.RequestedPrice,
				line.RequestedTotal,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}
		return nil
	})
}

// GetOrder retrieves an order with its lines.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*models.CustomerOrder, error) {
	return getOrder(ctx, s.db, id)
}

const orderColumns = `id, order_number, customer_id, status, order_date, delivery_date, delivery_address, phone,
	notes, admin_notes, total_amount, approved_total_amount, bill_id, created_at, updated_at`

func scanOrder(row rowScanner) (*models.CustomerOrder, error) {
	o := &models.CustomerOrder{}
	var orderDate, deliveryDate string
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &orderDate, &deliveryDate,
		&o.DeliveryAddress, &o.Phone, &o.Notes, &o.AdminNotes, &o.TotalAmount, &o.ApprovedTotalAmount,
		&o.BillID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.OrderDate = parseDate(orderDate)
	o.DeliveryDate = parseDate(deliveryDate)
	return o, nil
}

func getOrder(ctx context.Context, q queryer, id string) (*models.CustomerOrder, error) {
	order, err := scanOrder(q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM customer_orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, item_id, item_name, requested_quantity, requested_price, approved_quantity, approved_price,
			discount, requested_total, approved_total
		 FROM customer_order_items WHERE order_id = ? ORDER BY rowid`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.CustomerOrderItem
		if err := rows.Scan(&it.ID, &it.ItemID, &it.ItemName, &it.RequestedQuantity, &it.RequestedPrice,
			&it.ApprovedQuantity, &it.ApprovedPrice, &it.Discount, &it.RequestedTotal, &it.ApprovedTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return order, nil
}

// ListOrders returns orders newest first. Lines are not loaded.
func (s *SQLiteStore) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.CustomerOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM customer_orders WHERE 1 = 1`
	var args []any
	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, order_number DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.CustomerOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// ApproveOrder records the approved quantities, bills the order and marks it
// confirmed, all in one transaction. Lines without an approval are billed as
// requested; an approval with zero quantity drops the line.
func (s *SQLiteStore) ApproveOrder(ctx context.Context, id string, approvals []models.OrderApproval, adminNotes string) (*models.Bill, error) {
	var bill *models.Bill
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		order, err := getOrder(ctx, tx, id)
		if err != nil {
			return err
		}
		if order.Status != models.OrderPending {
			return fmt.Errorf("%w: order %s is %s", storage.ErrInvalidState, order.OrderNumber, order.Status)
		}

		byItem := make(map[string]models.OrderApproval, len(approvals))
		for _, a := range approvals {
			byItem[a.ItemID] = a
		}

		input := models.BillInput{CustomerID: order.CustomerID, OrderID: order.ID}
		for i := range order.Items {
			line := &order.Items[i]
			line.ApprovedQuantity = line.RequestedQuantity
			line.ApprovedPrice = line.RequestedPrice
			if a, ok := byItem[line.ItemID]; ok {
				line.ApprovedQuantity = a.Quantity
				if a.Price != nil {
					line.ApprovedPrice = *a.Price
				}
				line.Discount = a.Discount
			}
			line.ApprovedTotal = calculator.LineTotal(line.ApprovedPrice, line.Discount, line.ApprovedQuantity)

			price := line.ApprovedPrice
			input.Lines = append(input.Lines, models.BillLineInput{
				ItemID:   line.ItemID,
				Quantity: line.ApprovedQuantity,
				Discount: line.Discount,
				Price:    &price,
			})

			if _, err := tx.ExecContext(ctx,
				`UPDATE customer_order_items SET approved_quantity = ?, approved_price = ?, discount = ?, approved_total = ?
				 WHERE id = ?`,
				line.ApprovedQuantity, line.ApprovedPrice, line.Discount, line.ApprovedTotal, line.ID,
			); err != nil {
				return fmt.Errorf("failed to update order item: %w", err)
			}
		}

		bill, err = s.createBillTx(ctx, tx, input)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE customer_orders SET status = ?, bill_id = ?, approved_total_amount = ?, admin_notes = ?, updated_at = ?
			 WHERE id = ?`,
			models.OrderConfirmed, bill.ID, bill.TotalAmount, adminNotes, s.now().Unix(), id,
		); err != nil {
			return fmt.Errorf("failed to mark order billed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// SetOrderStatus moves an order to status if it is currently in one of from.
func (s *SQLiteStore) SetOrderStatus(ctx context.Context, id string, from []string, status, adminNotes string) (*models.CustomerOrder, error) {
	var order *models.CustomerOrder
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := getOrder(ctx, tx, id)
		if err != nil {
			return err
		}
		if !slices.Contains(from, current.Status) {
			return fmt.Errorf("%w: order %s is %s", storage.ErrInvalidState, current.OrderNumber, current.Status)
		}
		notes := current.AdminNotes
		if adminNotes != "" {
			notes = adminNotes
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE customer_orders SET status = ?, admin_notes = ?, updated_at = ? WHERE id = ?`,
			status, notes, s.now().Unix(), id,
		); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order, err = getOrder(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// nextOrderNumber returns ORD-<yyyymmddHHMMSS>-<nnnn>.
func nextOrderNumber(ctx context.Context, q queryer, now time.Time) (string, error) {
	n, err := countRows(ctx, q, `SELECT COUNT(*) FROM customer_orders WHERE order_number LIKE ?`,
		"ORD-"+now.Format("20060102")+"%")
	if err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102150405"), n+1), nil
}
