package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
	"github.com/mmynk/milkagency/pkg/api/apiconnect"
)

// CashbookService tracks the till, expenses, bank balance and what the
// agency owes its suppliers. Staff only.
type CashbookService struct {
	apiconnect.UnimplementedCashbookServiceHandler
	store storage.Store
	now   func() time.Time
}

func NewCashbookService(store storage.Store) *CashbookService {
	return &CashbookService{store: store, now: time.Now}
}

// GetCashbookDashboard summarizes a month: cash in hand, latest bank
// balance, expenses, company dues and profit net of expenses.
func (s *CashbookService) GetCashbookDashboard(ctx context.Context, req *connect.Request[api.GetCashbookDashboardRequest]) (*connect.Response[api.GetCashbookDashboardResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	year, month := monthOrCurrent(req.Msg.Year, req.Msg.Month, s.now())
	resp := &api.GetCashbookDashboardResponse{
		Year:               year,
		Month:              month,
		ExpensesByCategory: make(map[string]decimal.Decimal),
	}

	d, err := s.store.GetDenominations(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	resp.Denominations = toAPIDenominations(d)
	resp.CashTotal = calculator.CashTotal(d)

	balance, err := s.store.LatestBankBalance(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	if balance != nil {
		resp.BankBalance = balance.Amount
		resp.BankBalanceDate = formatDate(balance.Date)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	expenses, err := s.store.ListExpenses(ctx, start, start.AddDate(0, 1, -1))
	if err != nil {
		return nil, connectError(err)
	}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toAPIExpense(e))
		resp.ExpenseTotal = resp.ExpenseTotal.Add(e.Amount)
		resp.ExpensesByCategory[e.Category] = resp.ExpensesByCategory[e.Category].Add(e.Amount)
	}

	dues, err := s.store.CompanyDues(ctx, year, month)
	if err != nil {
		return nil, connectError(err)
	}
	for _, due := range dues {
		resp.CompanyDues = append(resp.CompanyDues, toAPICompanyDue(due))
		resp.CompanyDueTotal = resp.CompanyDueTotal.Add(due.TotalDue)
	}

	profit, err := s.store.MonthlyProfit(ctx, year, month)
	if err != nil {
		return nil, connectError(err)
	}
	resp.MonthlyProfit = profit
	resp.NetProfit = profit.Sub(resp.ExpenseTotal)

	return connect.NewResponse(resp), nil
}

// SaveDenominations overwrites the till count.
func (s *CashbookService) SaveDenominations(ctx context.Context, req *connect.Request[api.SaveDenominationsRequest]) (*connect.Response[api.SaveDenominationsResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	d := fromAPIDenominations(req.Msg.Denominations)
	if err := s.store.SaveDenominations(ctx, d); err != nil {
		return nil, connectError(err)
	}
	total := calculator.CashTotal(d)
	slog.Info("Cashbook saved", "cash_total", total)
	return connect.NewResponse(&api.SaveDenominationsResponse{Denominations: toAPIDenominations(d), CashTotal: total}), nil
}

func (s *CashbookService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}
	expense := &models.Expense{
		Amount:      req.Msg.Amount,
		Category:    req.Msg.Category,
		Description: req.Msg.Description,
		Date:        date,
	}
	if err := s.store.AddExpense(ctx, expense); err != nil {
		return nil, connectError(err)
	}
	slog.Info("Expense added", "expense_id", expense.ID, "category", expense.Category, "amount", expense.Amount)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

func (s *CashbookService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	from, err := parseDate("from", req.Msg.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.Msg.To)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, from, to)
	if err != nil {
		return nil, connectError(err)
	}
	resp := &api.ListExpensesResponse{}
	for _, e := range expenses {
		resp.Expenses = append(resp.Expenses, toAPIExpense(e))
		resp.Total = resp.Total.Add(e.Amount)
	}
	return connect.NewResponse(resp), nil
}

func (s *CashbookService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	slog.Info("Expense deleted", "expense_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// SetBankBalance appends a balance snapshot; the latest one is reported.
func (s *CashbookService) SetBankBalance(ctx context.Context, req *connect.Request[api.SetBankBalanceRequest]) (*connect.Response[api.SetBankBalanceResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}
	balance := &models.BankBalance{Amount: req.Msg.Amount, Date: date}
	if err := s.store.AddBankBalance(ctx, balance); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.SetBankBalanceResponse{Amount: balance.Amount, Date: formatDate(balance.Date)}), nil
}

// RecordCompanyPayment sets what a supplier invoiced and was paid on a
// day. A second call for the same day replaces the first.
func (s *CashbookService) RecordCompanyPayment(ctx context.Context, req *connect.Request[api.RecordCompanyPaymentRequest]) (*connect.Response[api.RecordCompanyPaymentResponse], error) {
	if err := validate(req.Msg); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}
	payment := &models.DailyPayment{
		CompanyID:     req.Msg.CompanyID,
		Date:          date,
		InvoiceAmount: req.Msg.InvoiceAmount,
		PaidAmount:    req.Msg.PaidAmount,
	}
	if err := s.store.UpsertDailyPayment(ctx, payment); err != nil {
		return nil, connectError(err)
	}
	slog.Info("Company payment recorded", "company_id", payment.CompanyID, "date", formatDate(payment.Date))
	return connect.NewResponse(&api.RecordCompanyPaymentResponse{Payment: &api.DailyPayment{
		ID:            payment.ID,
		CompanyID:     payment.CompanyID,
		Date:          formatDate(payment.Date),
		InvoiceAmount: payment.InvoiceAmount,
		PaidAmount:    payment.PaidAmount,
	}}), nil
}
