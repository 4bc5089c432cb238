// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/milkagency/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateTransaction is returned when a payment reuses a transaction ID.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	// ErrDuplicate is returned when another unique key (phone, code, name) collides.
	ErrDuplicate = errors.New("already exists")

	// ErrEmptyBill is returned when a bill has no line with a positive quantity.
	ErrEmptyBill = errors.New("bill must contain at least one item")

	// ErrFrozen is returned when a frozen customer or item is billed.
	ErrFrozen = errors.New("frozen")

	// ErrAlreadyDeducted is returned when a deducted commission would be overwritten.
	ErrAlreadyDeducted = errors.New("commission already deducted")

	// ErrInvalidState is returned when an order is not in a state that allows the change.
	ErrInvalidState = errors.New("invalid state")

	// ErrCounterPayment is returned when a bill's counter payment is changed
	// directly. It follows the bill's last_paid; edit the bill instead.
	ErrCounterPayment = errors.New("counter payment belongs to a bill; edit the bill instead")
)

// Store defines the interface for agency storage operations.
// Every method that changes the ledger (bills, payments, opening due)
// rewrites the affected customer's cached due in the same transaction.
type Store interface {
	// CreateUser persists a new staff user.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns nil, nil if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns nil, nil if no user has the ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	// UpdateCustomer rewrites profile fields. Due, opening due, frozen and
	// password have their own methods.
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	ListCustomers(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, error)
	SetCustomerFrozen(ctx context.Context, id string, frozen bool) error
	SetCustomerPasswordHash(ctx context.Context, id, hash string) error
	// SetOpeningDue changes the carried-over balance and recomputes due.
	SetOpeningDue(ctx context.Context, id string, amount decimal.Decimal) (*models.Customer, error)
	// RecomputeDue rebuilds the cached due from the ledger and returns it.
	RecomputeDue(ctx context.Context, id string) (decimal.Decimal, error)
	// DueAsOf is the ledger balance counting bills dated before asOf and
	// payments created before asOf.
	DueAsOf(ctx context.Context, customerID string, asOf time.Time) (decimal.Decimal, error)

	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id string) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error)
	// AdjustStock adds delta (which may be negative) to an item's stock.
	AdjustStock(ctx context.Context, id string, delta int) (*models.Item, error)
	SetItemFrozen(ctx context.Context, id string, frozen bool) error
	SetUnitVolume(ctx context.Context, id string, ml int) error

	// CreateBill writes a bill atomically: invoice number, op-due snapshot,
	// line pricing, stock debit, commission deduction, counter payment and
	// due recompute all commit together or not at all.
	CreateBill(ctx context.Context, input models.BillInput) (*models.Bill, error)
	// UpdateBill replaces a bill's lines and counter payment. The stock
	// effect is as if the old bill were deleted and the new one created.
	UpdateBill(ctx context.Context, id string, input models.BillInput) (*models.Bill, error)
	// DeleteBill soft-deletes a bill and reverses its side effects.
	DeleteBill(ctx context.Context, id string) error
	GetBill(ctx context.Context, id string) (*models.Bill, error)
	ListBills(ctx context.Context, filter models.BillFilter) ([]*models.Bill, error)

	// RecordPayment appends a payment. The transaction ID must be unique.
	RecordPayment(ctx context.Context, payment *models.CustomerPayment) error
	GetPayment(ctx context.Context, id string) (*models.CustomerPayment, error)
	// UpdatePaymentStatus and DeletePayment refuse a bill's counter payment
	// with ErrCounterPayment.
	UpdatePaymentStatus(ctx context.Context, id, status string) (*models.CustomerPayment, error)
	DeletePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context, filter models.PaymentFilter) ([]*models.CustomerPayment, error)

	// VolumesFor sums the liters of milk and curd billed to a customer in a month.
	VolumesFor(ctx context.Context, customerID string, year, month int) (models.MonthlyVolume, error)
	// UpsertCommission creates or replaces the record for (customer, year,
	// month). A deducted record is never replaced.
	UpsertCommission(ctx context.Context, commission *models.MonthlyCommission) error
	GetCommission(ctx context.Context, customerID string, year, month int) (*models.MonthlyCommission, error)
	ListCommissions(ctx context.Context, filter models.CommissionFilter) ([]*models.MonthlyCommission, error)

	PlaceOrder(ctx context.Context, order *models.CustomerOrder) error
	GetOrder(ctx context.Context, id string) (*models.CustomerOrder, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.CustomerOrder, error)
	// ApproveOrder bills a pending order in one transaction.
	ApproveOrder(ctx context.Context, id string, approvals []models.OrderApproval, adminNotes string) (*models.Bill, error)
	// SetOrderStatus moves an order to status if it is currently in one of from.
	SetOrderStatus(ctx context.Context, id string, from []string, status, adminNotes string) (*models.CustomerOrder, error)

	GetDenominations(ctx context.Context) (models.Denominations, error)
	SaveDenominations(ctx context.Context, d models.Denominations) error
	AddExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	AddBankBalance(ctx context.Context, balance *models.BankBalance) error
	// LatestBankBalance returns nil, nil if none was ever recorded.
	LatestBankBalance(ctx context.Context) (*models.BankBalance, error)
	UpsertDailyPayment(ctx context.Context, payment *models.DailyPayment) error
	CompanyDues(ctx context.Context, year, month int) ([]models.CompanyDue, error)

	DashboardCounts(ctx context.Context, day time.Time, lowStock int) (*models.DashboardCounts, error)
	StockSummary(ctx context.Context, since time.Time) (*models.StockSummary, error)
	MonthlySales(ctx context.Context, year, month int, customerID string) ([]models.SalesRow, error)
	MonthlyProfit(ctx context.Context, year, month int) (decimal.Decimal, error)

	// Close releases any resources held by the store.
	Close() error
}
