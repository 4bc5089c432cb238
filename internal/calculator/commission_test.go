package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSlabCommission(t *testing.T) {
	tests := []struct {
		name   string
		table  SlabTable
		volume string
		want   string
	}{
		{name: "milk zero", table: MilkSlabs, volume: "0", want: "0"},
		{name: "milk negative", table: MilkSlabs, volume: "-3", want: "0"},
		{name: "milk first slab", table: MilkSlabs, volume: "10", want: "2.00"},
		{name: "milk first boundary", table: MilkSlabs, volume: "15", want: "3.00"},
		{name: "milk second slab", table: MilkSlabs, volume: "20", want: "4.50"},
		{name: "milk second boundary", table: MilkSlabs, volume: "30", want: "7.50"},
		{name: "milk top slab", table: MilkSlabs, volume: "40", want: "11.00"},
		{name: "curd first slab", table: CurdSlabs, volume: "10", want: "2.50"},
		{name: "curd second slab", table: CurdSlabs, volume: "30", want: "8.50"},
		{name: "curd top slab", table: CurdSlabs, volume: "40", want: "12.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.table.Commission(d(tt.volume))
			if !got.Equal(d(tt.want)) {
				t.Errorf("Commission(%s) = %s, want %s", tt.volume, got, tt.want)
			}
		})
	}
}

func TestSlabCommissionMonotonic(t *testing.T) {
	for _, table := range []SlabTable{MilkSlabs, CurdSlabs} {
		prev := decimal.Zero
		for v := 0; v <= 600; v++ {
			vol := decimal.NewFromInt(int64(v)).Div(decimal.NewFromInt(10))
			got := table.Commission(vol)
			if got.LessThan(prev) {
				t.Fatalf("commission decreased at %s: %s < %s", vol, got, prev)
			}
			prev = got
		}
	}
}

func TestSlabCommissionContinuousAtBoundaries(t *testing.T) {
	eps := d("0.0001")
	for _, table := range []SlabTable{MilkSlabs, CurdSlabs} {
		for _, s := range table {
			if s.UpTo == nil {
				continue
			}
			below := table.Commission(s.UpTo.Sub(eps))
			above := table.Commission(s.UpTo.Add(eps))
			if above.Sub(below).GreaterThan(d("0.001")) {
				t.Errorf("jump at %s: %s -> %s", s.UpTo, below, above)
			}
		}
	}
}

func TestSlabTableValidate(t *testing.T) {
	if err := MilkSlabs.Validate(); err != nil {
		t.Errorf("MilkSlabs.Validate() = %v", err)
	}
	if err := CurdSlabs.Validate(); err != nil {
		t.Errorf("CurdSlabs.Validate() = %v", err)
	}

	bad := []SlabTable{
		{},
		{{UpTo: bound("10"), Rate: d("0.1")}},
		{{Rate: d("0.1")}, {Rate: d("0.2")}},
		{{UpTo: bound("10"), Rate: d("0.1")}, {UpTo: bound("5"), Rate: d("0.2")}, {Rate: d("0.3")}},
		{{UpTo: bound("10"), Rate: d("-0.1")}, {Rate: d("0.3")}},
	}
	for i, table := range bad {
		if err := table.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestMonthlyCommission(t *testing.T) {
	// 20 L/day of milk over 30 days: slab(20) = 4.50, × 30 = 135.
	b := MonthlyCommission(d("600"), decimal.Zero, 30)
	if !b.AvgMilk.Equal(d("20")) {
		t.Errorf("AvgMilk = %s, want 20", b.AvgMilk)
	}
	if !b.MilkCommission.Equal(d("135")) {
		t.Errorf("MilkCommission = %s, want 135", b.MilkCommission)
	}
	if !b.CurdCommission.IsZero() {
		t.Errorf("CurdCommission = %s, want 0", b.CurdCommission)
	}
	if !b.TotalCommission.Equal(d("135")) {
		t.Errorf("TotalCommission = %s, want 135", b.TotalCommission)
	}
	if !b.MilkRate.Equal(d("0.225")) {
		t.Errorf("MilkRate = %s, want 0.225", b.MilkRate)
	}
	if !b.CurdRate.IsZero() {
		t.Errorf("CurdRate = %s, want 0", b.CurdRate)
	}
}

func TestMonthlyCommissionIsNotSlabOfTotal(t *testing.T) {
	b := MonthlyCommission(d("600"), decimal.Zero, 30)
	raw := MilkSlabs.Commission(d("600"))
	if b.MilkCommission.Equal(raw) {
		t.Errorf("expected daily-average scaling to differ from raw total slab (%s)", raw)
	}
}

func TestMonthlyCommissionBothCategories(t *testing.T) {
	// Curd 10 L/day over 31 days: 2.50 × 31 = 77.50.
	b := MonthlyCommission(d("310"), d("310"), 31)
	if !b.CurdCommission.Equal(d("77.5")) {
		t.Errorf("CurdCommission = %s, want 77.5", b.CurdCommission)
	}
	if !b.MilkCommission.Equal(d("62")) {
		t.Errorf("MilkCommission = %s, want 62", b.MilkCommission)
	}
	if !b.TotalCommission.Equal(d("139.5")) {
		t.Errorf("TotalCommission = %s, want 139.5", b.TotalCommission)
	}
	if !b.AvgTotal.Equal(d("20")) {
		t.Errorf("AvgTotal = %s, want 20", b.AvgTotal)
	}
}

func TestMonthlyCommissionZeroDays(t *testing.T) {
	b := MonthlyCommission(d("100"), d("100"), 0)
	if !b.TotalCommission.IsZero() {
		t.Errorf("TotalCommission = %s, want 0", b.TotalCommission)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	if y != 2023 || m != 12 {
		t.Errorf("PreviousMonth(Jan 2024) = %d-%d, want 2023-12", y, m)
	}
	y, m = PreviousMonth(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	if y != 2024 || m != 2 {
		t.Errorf("PreviousMonth(Mar 31 2024) = %d-%d, want 2024-2", y, m)
	}
}
