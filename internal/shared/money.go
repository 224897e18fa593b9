package shared

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places kept for monetary amounts.
const CurrencyPlaces = 2

// Money converts a float amount into a decimal.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// WholeCents reports whether v has no more than CurrencyPlaces decimals.
func WholeCents(v float64) bool {
	return Money(v).Exponent() >= -CurrencyPlaces
}

// LineTotal returns unitPrice * qty rounded to cents.
func LineTotal(unitPrice float64, qty int64) float64 {
	return Money(unitPrice).Mul(decimal.NewFromInt(qty)).Round(CurrencyPlaces).InexactFloat64()
}

// LineProfit returns (salesPrice - buyingPrice) * qty rounded to cents.
func LineProfit(salesPrice, buyingPrice float64, qty int64) float64 {
	margin := Money(salesPrice).Sub(Money(buyingPrice))
	return margin.Mul(decimal.NewFromInt(qty)).Round(CurrencyPlaces).InexactFloat64()
}

// FormatCurrency renders v with exactly two decimal places.
func FormatCurrency(v float64) string {
	return Money(v).StringFixed(CurrencyPlaces)
}
