package calculator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Slab is one band of a tiered rate table. Liters above UpTo fall through to
// the next slab. The last slab must have UpTo == nil.
type Slab struct {
	UpTo *decimal.Decimal
	Rate decimal.Decimal
}

// SlabTable is a marginal, piecewise-linear rate table: each liter is paid
// at the rate of the band it falls in.
type SlabTable []Slab

func bound(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// MilkSlabs pays 0.20/L up to 15 L, 0.30/L from 15 to 30 L and 0.35/L above.
var MilkSlabs = SlabTable{
	{UpTo: bound("15"), Rate: decimal.RequireFromString("0.20")},
	{UpTo: bound("30"), Rate: decimal.RequireFromString("0.30")},
	{Rate: decimal.RequireFromString("0.35")},
}

// CurdSlabs pays 0.25/L up to 20 L, 0.35/L from 20 to 35 L and 0.50/L above.
var CurdSlabs = SlabTable{
	{UpTo: bound("20"), Rate: decimal.RequireFromString("0.25")},
	{UpTo: bound("35"), Rate: decimal.RequireFromString("0.35")},
	{Rate: decimal.RequireFromString("0.50")},
}

// Validate checks that bounds are strictly increasing, rates are
// non-negative and only the last slab is open-ended.
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("slab table is empty")
	}
	prev := decimal.Zero
	for i, s := range t {
		if s.Rate.IsNegative() {
			return fmt.Errorf("slab %d: negative rate %s", i, s.Rate)
		}
		last := i == len(t)-1
		if s.UpTo == nil {
			if !last {
				return fmt.Errorf("slab %d: only the last slab may be open-ended", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("slab %d: last slab must be open-ended", i)
		}
		if !s.UpTo.GreaterThan(prev) {
			return fmt.Errorf("slab %d: bound %s not above %s", i, s.UpTo, prev)
		}
		prev = *s.UpTo
	}
	return nil
}

// Commission applies the table to a volume in liters. Non-positive volumes
// earn nothing.
func (t SlabTable) Commission(volume decimal.Decimal) decimal.Decimal {
	if !volume.IsPositive() {
		return decimal.Zero
	}
	total := decimal.Zero
	lower := decimal.Zero
	for _, s := range t {
		if s.UpTo == nil || volume.LessThanOrEqual(*s.UpTo) {
			return total.Add(volume.Sub(lower).Mul(s.Rate))
		}
		total = total.Add(s.UpTo.Sub(lower).Mul(s.Rate))
		lower = *s.UpTo
	}
	return total
}

// CommissionBreakdown is the result of a month's commission calculation.
type CommissionBreakdown struct {
	DaysInMonth int

	MilkLiters decimal.Decimal
	CurdLiters decimal.Decimal

	// Average daily liters.
	AvgMilk  decimal.Decimal
	AvgCurd  decimal.Decimal
	AvgTotal decimal.Decimal

	MilkCommission  decimal.Decimal
	CurdCommission  decimal.Decimal
	TotalCommission decimal.Decimal

	// Effective per-liter rates over the whole month (zero when no volume).
	MilkRate  decimal.Decimal
	CurdRate  decimal.Decimal
	TotalRate decimal.Decimal
}

// MonthlyCommission evaluates each slab table once on the month's average
// daily volume and scales the result back up by the number of days:
//
//	commission = table(liters / days) × days
//
// This is the agency's policy; it is not the same as applying the table to
// the raw monthly total.
func MonthlyCommission(milkLiters, curdLiters decimal.Decimal, daysInMonth int) CommissionBreakdown {
	b := CommissionBreakdown{
		DaysInMonth: daysInMonth,
		MilkLiters:  milkLiters,
		CurdLiters:  curdLiters,
	}
	if daysInMonth <= 0 {
		return b
	}
	days := decimal.NewFromInt(int64(daysInMonth))

	b.AvgMilk = milkLiters.Div(days)
	b.AvgCurd = curdLiters.Div(days)
	b.AvgTotal = b.AvgMilk.Add(b.AvgCurd)

	b.MilkCommission = MilkSlabs.Commission(b.AvgMilk).Mul(days).Round(2)
	b.CurdCommission = CurdSlabs.Commission(b.AvgCurd).Mul(days).Round(2)
	b.TotalCommission = b.MilkCommission.Add(b.CurdCommission)

	if milkLiters.IsPositive() {
		b.MilkRate = b.MilkCommission.Div(milkLiters).Round(4)
	}
	if curdLiters.IsPositive() {
		b.CurdRate = b.CurdCommission.Div(curdLiters).Round(4)
	}
	if total := milkLiters.Add(curdLiters); total.IsPositive() {
		b.TotalRate = b.TotalCommission.Div(total).Round(4)
	}
	return b
}

// DaysIn returns the number of days in the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PreviousMonth returns the calendar month before t.
func PreviousMonth(t time.Time) (year, month int) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}
