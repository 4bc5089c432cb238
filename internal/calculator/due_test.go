package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestActualDue(t *testing.T) {
	tests := []struct {
		name     string
		opening  string
		bills    []BillForDue
		payments []PaymentForDue
		want     string
	}{
		{
			name:    "opening only",
			opening: "250",
			want:    "250",
		},
		{
			name:     "bill with counter payment",
			opening:  "500",
			bills:    []BillForDue{{TotalAmount: d("1000")}},
			payments: []PaymentForDue{{Amount: d("200"), Success: true}},
			want:     "1300",
		},
		{
			name:    "deleted bills ignored",
			opening: "0",
			bills: []BillForDue{
				{TotalAmount: d("100")},
				{TotalAmount: d("400"), Deleted: true},
			},
			want: "100",
		},
		{
			name:    "failed and pending payments ignored",
			opening: "0",
			bills:   []BillForDue{{TotalAmount: d("300")}},
			payments: []PaymentForDue{
				{Amount: d("100"), Success: true},
				{Amount: d("50"), Success: false},
			},
			want: "200",
		},
		{
			name:     "overpayment goes negative",
			opening:  "0",
			bills:    []BillForDue{{TotalAmount: d("100")}},
			payments: []PaymentForDue{{Amount: d("150"), Success: true}},
			want:     "-50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActualDue(d(tt.opening), tt.bills, tt.payments)
			if !got.Equal(d(tt.want)) {
				t.Errorf("ActualDue() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDueAfterBillMatchesLedger(t *testing.T) {
	opening := d("500")
	total := d("1000")
	paid := d("200")

	ledger := ActualDue(opening, []BillForDue{{TotalAmount: total}}, []PaymentForDue{{Amount: paid, Success: true}})
	if got := DueAfterBill(opening, total, paid); !got.Equal(ledger) {
		t.Errorf("DueAfterBill() = %s, ledger = %s", got, ledger)
	}
}

func TestBuildStatement(t *testing.T) {
	st := BuildStatement(d("100"),
		[]BillForDue{{TotalAmount: d("300")}, {TotalAmount: d("50"), Deleted: true}},
		[]PaymentForDue{{Amount: d("120"), Success: true}, {Amount: d("10")}},
	)
	if !st.InvoiceTotal.Equal(d("300")) || st.BillCount != 1 {
		t.Errorf("InvoiceTotal = %s (%d bills), want 300 (1)", st.InvoiceTotal, st.BillCount)
	}
	if !st.PaidTotal.Equal(d("120")) || st.PaymentCount != 1 {
		t.Errorf("PaidTotal = %s (%d payments), want 120 (1)", st.PaidTotal, st.PaymentCount)
	}
	if !st.ClosingDue.Equal(d("280")) {
		t.Errorf("ClosingDue = %s, want 280", st.ClosingDue)
	}
	if !st.OpeningDue.Equal(decimal.NewFromInt(100)) {
		t.Errorf("OpeningDue = %s, want 100", st.OpeningDue)
	}
}
