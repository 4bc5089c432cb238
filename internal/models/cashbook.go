package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense categories.
const (
	ExpensePetrol = "petrol"
	ExpenseFood   = "food"
	ExpenseOthers = "others"
)

// Expense is cash paid out of the till.
type Expense struct {
	ID          string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	CreatedAt   int64
}

// Denominations is the count of notes and coins in the till.
type Denominations struct {
	C500   int
	C200   int
	C100   int
	C50    int
	C20    int
	C10    int
	Coin20 int
	Coin10 int
	Coin5  int
	Coin2  int
	Coin1  int
}

// BankBalance is a dated snapshot of the bank account. The latest row wins.
type BankBalance struct {
	ID     string
	Amount decimal.Decimal
	Date   time.Time
}

// DailyPayment is what the agency was invoiced by, and paid to, a company on
// a given day. Unique per (company, date).
type DailyPayment struct {
	ID            string
	CompanyID     string
	Date          time.Time
	InvoiceAmount decimal.Decimal
	PaidAmount    decimal.Decimal
}

// CompanyDue aggregates DailyPayment rows for a month.
type CompanyDue struct {
	CompanyID    string
	CompanyName  string
	TotalInvoice decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalDue     decimal.Decimal
	LastUpdated  time.Time
}
