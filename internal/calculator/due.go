// Package calculator holds the pure arithmetic of the agency: due
// reconciliation, commission slabs and invoice line pricing. Nothing here
// touches storage; callers pass in aggregates the database already summed.
package calculator

import "github.com/shopspring/decimal"

// BillForDue represents a bill with the minimal information needed for due
// reconciliation.
type BillForDue struct {
	TotalAmount decimal.Decimal
	Deleted     bool
}

// PaymentForDue represents a payment with the minimal information needed for
// due reconciliation.
type PaymentForDue struct {
	Amount  decimal.Decimal
	Success bool
}

// ActualDue computes a customer's outstanding balance from the ledger:
//
//	due = opening_due + Σ bill.total_amount − Σ payment.amount
//
// Deleted bills and payments that did not succeed are ignored. The window
// is the customer's whole history; a monthly statement is this same value
// evaluated at the month's boundaries.
func ActualDue(openingDue decimal.Decimal, bills []BillForDue, payments []PaymentForDue) decimal.Decimal {
	due := openingDue
	for _, b := range bills {
		if b.Deleted {
			continue
		}
		due = due.Add(b.TotalAmount)
	}
	for _, p := range payments {
		if !p.Success {
			continue
		}
		due = due.Sub(p.Amount)
	}
	return due
}

// DueAfterBill is the balance once a bill and its counter payment are
// applied on top of the opening due snapshot.
func DueAfterBill(opDue, billTotal, lastPaid decimal.Decimal) decimal.Decimal {
	return opDue.Add(billTotal).Sub(lastPaid)
}

// Statement is a customer's ledger summarised over a window.
type Statement struct {
	OpeningDue   decimal.Decimal
	InvoiceTotal decimal.Decimal
	PaidTotal    decimal.Decimal
	ClosingDue   decimal.Decimal
	BillCount    int
	PaymentCount int
}

// BuildStatement summarises the bills and payments that fall inside a window,
// given the due carried into it.
func BuildStatement(openingDue decimal.Decimal, bills []BillForDue, payments []PaymentForDue) Statement {
	st := Statement{OpeningDue: openingDue}
	for _, b := range bills {
		if b.Deleted {
			continue
		}
		st.InvoiceTotal = st.InvoiceTotal.Add(b.TotalAmount)
		st.BillCount++
	}
	for _, p := range payments {
		if !p.Success {
			continue
		}
		st.PaidTotal = st.PaidTotal.Add(p.Amount)
		st.PaymentCount++
	}
	st.ClosingDue = ActualDue(openingDue, bills, payments)
	return st
}
