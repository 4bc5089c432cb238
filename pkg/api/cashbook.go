package api

import "github.com/shopspring/decimal"

type Denominations struct {
	C500   int `json:"c500" validate:"gte=0"`
	C200   int `json:"c200" validate:"gte=0"`
	C100   int `json:"c100" validate:"gte=0"`
	C50    int `json:"c50" validate:"gte=0"`
	C20    int `json:"c20" validate:"gte=0"`
	C10    int `json:"c10" validate:"gte=0"`
	Coin20 int `json:"coin20" validate:"gte=0"`
	Coin10 int `json:"coin10" validate:"gte=0"`
	Coin5  int `json:"coin5" validate:"gte=0"`
	Coin2  int `json:"coin2" validate:"gte=0"`
	Coin1  int `json:"coin1" validate:"gte=0"`
}

type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
}

type CompanyDue struct {
	CompanyID    string          `json:"company_id"`
	CompanyName  string          `json:"company_name"`
	TotalInvoice decimal.Decimal `json:"total_invoice"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalDue     decimal.Decimal `json:"total_due"`
	LastUpdated  string          `json:"last_updated,omitempty"`
}

type DailyPayment struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Date          string          `json:"date"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

// GetCashbookDashboardRequest selects the month; zero values mean the current month.
type GetCashbookDashboardRequest struct {
	Year  int `json:"year,omitempty" validate:"omitempty,gte=2000,lte=2100"`
	Month int `json:"month,omitempty" validate:"omitempty,gte=1,lte=12"`
}

type GetCashbookDashboardResponse struct {
	Year               int                        `json:"year"`
	Month              int                        `json:"month"`
	Denominations      *Denominations             `json:"denominations"`
	CashTotal          decimal.Decimal            `json:"cash_total"`
	BankBalance        decimal.Decimal            `json:"bank_balance"`
	BankBalanceDate    string                     `json:"bank_balance_date,omitempty"`
	Expenses           []*Expense                 `json:"expenses"`
	ExpenseTotal       decimal.Decimal            `json:"expense_total"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category"`
	CompanyDues        []*CompanyDue              `json:"company_dues"`
	CompanyDueTotal    decimal.Decimal            `json:"company_due_total"`
	MonthlyProfit      decimal.Decimal            `json:"monthly_profit"`
	NetProfit          decimal.Decimal            `json:"net_profit"`
}

type SaveDenominationsRequest struct {
	Denominations Denominations `json:"denominations"`
}

type SaveDenominationsResponse struct {
	Denominations *Denominations  `json:"denominations"`
	CashTotal     decimal.Decimal `json:"cash_total"`
}

type AddExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Category    string          `json:"category" validate:"required,oneof=petrol food others"`
	Description string          `json:"description" validate:"max=300"`
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	From string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListExpensesResponse struct {
	Expenses []*Expense      `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}

type DeleteExpenseRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteExpenseResponse struct{}

type SetBankBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type SetBankBalanceResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

type RecordCompanyPaymentRequest struct {
	CompanyID     string          `json:"company_id" validate:"required"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount" validate:"gte=0"`
	PaidAmount    decimal.Decimal `json:"paid_amount" validate:"gte=0"`
}

type RecordCompanyPaymentResponse struct {
	Payment *DailyPayment `json:"payment"`
}
