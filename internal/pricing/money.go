package pricing

import "github.com/shopspring/decimal"

var (
	one              = decimal.NewFromInt(1)
	squareMillimetre = decimal.NewFromInt(1_000_000)
)

// Round2 rounds a monetary amount to cents, half-up for non-negative amounts.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PriceHT applies the sales coefficient to a purchase price. The result is not rounded.
func PriceHT(purchasePrice, coefficient decimal.Decimal) decimal.Decimal {
	return purchasePrice.Mul(coefficient)
}

// PriceTTC marks up a purchase price and adds VAT, rounding once at the end.
func PriceTTC(purchasePrice, coefficient, vatRate decimal.Decimal) decimal.Decimal {
	return Round2(WithVAT(PriceHT(purchasePrice, coefficient), vatRate))
}

// WithVAT returns amountHT × (1 + vatRate), unrounded.
func WithVAT(amountHT, vatRate decimal.Decimal) decimal.Decimal {
	return amountHT.Mul(one.Add(vatRate))
}

// ExtractVAT returns the VAT part contained in a tax-inclusive amount.
func ExtractVAT(amountTTC, vatRate decimal.Decimal) decimal.Decimal {
	return Round2(amountTTC.Div(one.Add(vatRate)).Mul(vatRate))
}

// AreaM2 converts two millimetre dimensions into square metres.
func AreaM2(widthMM, projectionMM int) decimal.Decimal {
	return decimal.NewFromInt(int64(widthMM)).
		Mul(decimal.NewFromInt(int64(projectionMM))).
		Div(squareMillimetre)
}
