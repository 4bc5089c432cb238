package sqlite

import (
	"database/sql"
	"fmt"
)

// schema sets up the database. Money and liters are stored as TEXT so that
// decimal values round-trip exactly; business dates are TEXT (YYYY-MM-DD).
// Companies and customers must be created before the tables that reference them.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    phone TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    shop_name TEXT NOT NULL DEFAULT '',
    retailer_id TEXT NOT NULL DEFAULT '',
    flat_number TEXT NOT NULL DEFAULT '',
    area TEXT NOT NULL DEFAULT '',
    pin_code TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT '',
    opening_due TEXT NOT NULL DEFAULT '0',
    due TEXT NOT NULL DEFAULT '0',
    is_commissioned INTEGER NOT NULL DEFAULT 0,
    is_delivery INTEGER NOT NULL DEFAULT 0,
    frozen INTEGER NOT NULL DEFAULT 0,
    password_hash TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS companies (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    website TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    code TEXT UNIQUE,
    name TEXT NOT NULL,
    company_id TEXT,
    category TEXT NOT NULL DEFAULT '',
    selling_price TEXT NOT NULL DEFAULT '0',
    buying_price TEXT NOT NULL DEFAULT '0',
    mrp TEXT NOT NULL DEFAULT '0',
    stock_quantity INTEGER NOT NULL DEFAULT 0,
    pcs_count INTEGER NOT NULL DEFAULT 0,
    unit_volume_ml INTEGER NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    frozen INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    invoice_number TEXT NOT NULL UNIQUE,
    customer_id TEXT,
    order_id TEXT NOT NULL DEFAULT '',
    invoice_date TEXT NOT NULL,
    total_amount TEXT NOT NULL,
    op_due_amount TEXT NOT NULL,
    last_paid TEXT NOT NULL,
    profit TEXT NOT NULL,
    commission_deducted TEXT NOT NULL DEFAULT '0',
    commission_year INTEGER NOT NULL DEFAULT 0,
    commission_month INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    deleted_at INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE TABLE IF NOT EXISTS bill_items (
    id TEXT PRIMARY KEY,
    bill_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    item_name TEXT NOT NULL,
    price_per_unit TEXT NOT NULL,
    discount TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    total_amount TEXT NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE,
    FOREIGN KEY (item_id) REFERENCES items(id)
);

CREATE TABLE IF NOT EXISTS customer_payments (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    bill_id TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    transaction_id TEXT NOT NULL UNIQUE,
    method TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE TABLE IF NOT EXISTS monthly_commissions (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    year INTEGER NOT NULL,
    month INTEGER NOT NULL,
    milk_volume TEXT NOT NULL,
    curd_volume TEXT NOT NULL,
    total_volume TEXT NOT NULL,
    milk_commission TEXT NOT NULL,
    curd_commission TEXT NOT NULL,
    commission_amount TEXT NOT NULL,
    deducted INTEGER NOT NULL DEFAULT 0,
    bill_id TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    UNIQUE (customer_id, year, month),
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE TABLE IF NOT EXISTS customer_orders (
    id TEXT PRIMARY KEY,
    order_number TEXT NOT NULL UNIQUE,
    customer_id TEXT NOT NULL,
    status TEXT NOT NULL,
    order_date TEXT NOT NULL,
    delivery_date TEXT NOT NULL DEFAULT '',
    delivery_address TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    admin_notes TEXT NOT NULL DEFAULT '',
    total_amount TEXT NOT NULL,
    approved_total_amount TEXT NOT NULL DEFAULT '0',
    bill_id TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE TABLE IF NOT EXISTS customer_order_items (
    id TEXT PRIMARY KEY,
    order_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    item_name TEXT NOT NULL,
    requested_quantity INTEGER NOT NULL,
    requested_price TEXT NOT NULL,
    approved_quantity INTEGER NOT NULL DEFAULT 0,
    approved_price TEXT NOT NULL DEFAULT '0',
    discount TEXT NOT NULL DEFAULT '0',
    requested_total TEXT NOT NULL,
    approved_total TEXT NOT NULL DEFAULT '0',
    FOREIGN KEY (order_id) REFERENCES customer_orders(id) ON DELETE CASCADE,
    FOREIGN KEY (item_id) REFERENCES items(id)
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    amount TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cashbook (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    c500 INTEGER NOT NULL DEFAULT 0,
    c200 INTEGER NOT NULL DEFAULT 0,
    c100 INTEGER NOT NULL DEFAULT 0,
    c50 INTEGER NOT NULL DEFAULT 0,
    c20 INTEGER NOT NULL DEFAULT 0,
    c10 INTEGER NOT NULL DEFAULT 0,
    coin20 INTEGER NOT NULL DEFAULT 0,
    coin10 INTEGER NOT NULL DEFAULT 0,
    coin5 INTEGER NOT NULL DEFAULT 0,
    coin2 INTEGER NOT NULL DEFAULT 0,
    coin1 INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bank_balances (
    id TEXT PRIMARY KEY,
    amount TEXT NOT NULL,
    date TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_payments (
    id TEXT PRIMARY KEY,
    company_id TEXT NOT NULL,
    date TEXT NOT NULL,
    invoice_amount TEXT NOT NULL,
    paid_amount TEXT NOT NULL,
    UNIQUE (company_id, date),
    FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_customers_area ON customers(area);
CREATE INDEX IF NOT EXISTS idx_items_company_id ON items(company_id);
CREATE INDEX IF NOT EXISTS idx_bills_customer_id ON bills(customer_id);
CREATE INDEX IF NOT EXISTS idx_bills_invoice_date ON bills(invoice_date);
CREATE INDEX IF NOT EXISTS idx_bill_items_bill_id ON bill_items(bill_id);
CREATE INDEX IF NOT EXISTS idx_customer_payments_customer_id ON customer_payments(customer_id);
CREATE INDEX IF NOT EXISTS idx_customer_payments_bill_id ON customer_payments(bill_id);
CREATE INDEX IF NOT EXISTS idx_monthly_commissions_customer_id ON monthly_commissions(customer_id);
CREATE INDEX IF NOT EXISTS idx_customer_orders_customer_id ON customer_orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_customer_order_items_order_id ON customer_order_items(order_id);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
