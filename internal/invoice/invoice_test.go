package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/models"
)

func sampleBill() *models.Bill {
	return &models.Bill{
		ID:                 "b1",
		InvoiceNumber:      "INV-20250105-0001",
		CustomerID:         "c1",
		InvoiceDate:        time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		TotalAmount:        decimal.RequireFromString("990"),
		OpDueAmount:        decimal.RequireFromString("500"),
		LastPaid:           decimal.RequireFromString("200"),
		CommissionDeducted: decimal.RequireFromString("10"),
		CommissionYear:     2024,
		CommissionMonth:    12,
		CreatedAt:          time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC).Unix(),
		Items: []models.BillItem{
			{ItemID: "milk", ItemName: "Toned Milk 500ml", PricePerUnit: decimal.RequireFromString("25"), Discount: decimal.RequireFromString("1"), Quantity: 40, TotalAmount: decimal.RequireFromString("960")},
			{ItemID: "curd", ItemName: "Curd 450g", PricePerUnit: decimal.RequireFromString("40"), Quantity: 1, TotalAmount: decimal.RequireFromString("40")},
		},
	}
}

func TestArchiveKey(t *testing.T) {
	got := ArchiveKey(sampleBill())
	want := "2025/January/05-01-2025/INV-20250105-0001.pdf"
	if got != want {
		t.Errorf("ArchiveKey = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer(Business{Name: "Sri Durga Milk Agency", Address: "Main Road", Phone: "9392890375"})

	tests := []struct {
		name     string
		customer *models.Customer
	}{
		{"customer", &models.Customer{Name: "Ravi", ShopName: "Ravi Stores", Area: "Gandhi Nagar", Phone: "+919876543210"}},
		{"walk-in", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(Document{
				Bill:     sampleBill(),
				Customer: tt.customer,
				MRP:      map[string]decimal.Decimal{"milk": decimal.RequireFromString("27")},
			})
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Errorf("output is not a PDF: %q", out[:min(len(out), 8)])
			}
		})
	}
}
