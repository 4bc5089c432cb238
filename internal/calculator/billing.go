package calculator

import "github.com/shopspring/decimal"

// LineTotal is price×qty − discount×qty, where discount is per unit.
func LineTotal(price, discount decimal.Decimal, qty int) decimal.Decimal {
	q := decimal.NewFromInt(int64(qty))
	return price.Mul(q).Sub(discount.Mul(q))
}

// LineProfit is (price − buying)×qty − discount×qty.
func LineProfit(price, buying, discount decimal.Decimal, qty int) decimal.Decimal {
	q := decimal.NewFromInt(int64(qty))
	return price.Sub(buying).Mul(q).Sub(discount.Mul(q))
}

// RoundInvoiceTotal rounds a bill total up to the next whole rupee.
func RoundInvoiceTotal(total decimal.Decimal) decimal.Decimal {
	return total.Ceil()
}

// ApplyCommission deducts a commission from a bill total. The result never
// goes below zero.
func ApplyCommission(total, commission decimal.Decimal) decimal.Decimal {
	adjusted := total.Sub(commission)
	if adjusted.IsNegative() {
		return decimal.Zero
	}
	return adjusted
}

// LitersFor converts a unit volume in milliliters and a quantity into liters.
func LitersFor(unitVolumeML, qty int) decimal.Decimal {
	if unitVolumeML <= 0 || qty == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(unitVolumeML) * int64(qty)).Div(decimal.NewFromInt(1000))
}
