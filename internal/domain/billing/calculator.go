// Package billing computes per-line and aggregate invoice totals. All amounts
// are int64 minor units (paise); intermediate math runs through decimal so
// repeated inclusive/exclusive conversions cannot accumulate float drift.
//
// Two independent flags shape the result: whether tax applies at all, and
// whether the listed unit price already contains the tax (inclusive pricing)
// or excludes it (tax added on top).
package billing

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineAmounts is the breakdown of a single line item.
type LineAmounts struct {
	Total       int64 // what the customer pays for this line
	TaxableBase int64 // portion excluding tax
	Tax         int64 // tax component
}

// Totals is the invoice-level aggregate.
type Totals struct {
	SubTotal   int64
	TotalTax   int64
	GrandTotal int64
}

// LineInput is the calculator's view of a line item under edit or at save.
type LineInput struct {
	Price    int64 // unit price in paise
	Quantity float64
	TaxRate  float64 // percent
}

// clampAmount treats negative inputs as zero; totals must never go negative.
func clampAmount(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// clampNumber treats negative or non-finite inputs as zero so a half-typed
// form value can never push NaN into a persisted total.
func clampNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ComputeLine computes the breakdown of one line.
//
// Tax disabled: total = price * quantity, no tax component.
// Exclusive: tax = base * rate/100 is added on top of the base.
// Inclusive: total = price * quantity already contains the tax; the embedded
// component is recovered as total * rate/(100+rate).
func ComputeLine(price int64, quantity, taxRate float64, taxEnabled, taxInclusive bool) LineAmounts {
	price = clampAmount(price)
	quantity = clampNumber(quantity)
	taxRate = clampNumber(taxRate)

	base := decimal.NewFromInt(price).
		Mul(decimal.NewFromFloat(quantity)).
		Round(0)

	if !taxEnabled {
		amount := base.IntPart()
		return LineAmounts{Total: amount, TaxableBase: amount, Tax: 0}
	}

	rate := decimal.NewFromFloat(taxRate)

	if taxInclusive {
		total := base.IntPart()
		tax := decimal.NewFromInt(total).
			Mul(rate).
			Div(hundred.Add(rate)).
			Round(0).
			IntPart()
		return LineAmounts{Total: total, TaxableBase: total - tax, Tax: tax}
	}

	taxable := base.IntPart()
	tax := decimal.NewFromInt(taxable).
		Mul(rate).
		Div(hundred).
		Round(0).
		IntPart()
	return LineAmounts{Total: taxable + tax, TaxableBase: taxable, Tax: tax}
}

// ComputeAggregate sums line breakdowns into invoice totals. GrandTotal is
// SubTotal + TotalTax by construction; with tax disabled the tax column is
// zero and SubTotal equals GrandTotal.
func ComputeAggregate(items []LineInput, taxEnabled, taxInclusive bool) Totals {
	var t Totals
	for _, item := range items {
		line := ComputeLine(item.Price, item.Quantity, item.TaxRate, taxEnabled, taxInclusive)
		t.SubTotal += line.TaxableBase
		t.TotalTax += line.Tax
	}
	t.GrandTotal = t.SubTotal + t.TotalTax
	return t
}
