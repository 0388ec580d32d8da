package cart

import "github.com/shopspring/decimal"

// LineTotal is unitPrice × quantity computed in decimal.
func LineTotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		InexactFloat64()
}

// Total sums the line totals in decimal.
func Total(items []LineItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.TotalItemPrice))
	}
	return sum.InexactFloat64()
}
