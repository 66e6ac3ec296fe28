package billing

import (
	"math"
	"testing"
)

func TestComputeLineExclusiveTax(t *testing.T) {
	// price 100.00, qty 2, 18% added on top
	got := ComputeLine(10000, 2, 18, true, false)
	if got.Total != 23600 {
		t.Errorf("Total = %d, want 23600", got.Total)
	}
	if got.TaxableBase != 20000 {
		t.Errorf("TaxableBase = %d, want 20000", got.TaxableBase)
	}
	if got.Tax != 3600 {
		t.Errorf("Tax = %d, want 3600", got.Tax)
	}
}

func TestComputeLineInclusiveTax(t *testing.T) {
	// price 118.00 already contains 18% tax; component recovered backward
	got := ComputeLine(11800, 2, 18, true, true)
	if got.Total != 23600 {
		t.Errorf("Total = %d, want 23600", got.Total)
	}
	if got.TaxableBase != 20000 {
		t.Errorf("TaxableBase = %d, want 20000", got.TaxableBase)
	}
	if got.Tax != 3600 {
		t.Errorf("Tax = %d, want 3600", got.Tax)
	}
}

func TestComputeLineTaxDisabled(t *testing.T) {
	// tax rate is ignored entirely when tax is disabled
	got := ComputeLine(5000, 3, 99, false, false)
	if got.Total != 15000 {
		t.Errorf("Total = %d, want 15000", got.Total)
	}
	if got.Tax != 0 {
		t.Errorf("Tax = %d, want 0", got.Tax)
	}
	if got.TaxableBase != 15000 {
		t.Errorf("TaxableBase = %d, want 15000", got.TaxableBase)
	}
}

func TestComputeLineClampsBadInputs(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		quantity float64
		taxRate  float64
	}{
		{"negative price", -10000, 2, 18},
		{"negative quantity", 10000, -2, 18},
		{"NaN quantity", 10000, math.NaN(), 18},
		{"Inf quantity", 10000, math.Inf(1), 18},
		{"negative rate treated as zero rate", 0, 2, -18},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ComputeLine(c.price, c.quantity, c.taxRate, true, false)
			if got.Total < 0 || got.Tax < 0 || got.TaxableBase < 0 {
				t.Errorf("negative component in %+v", got)
			}
		})
	}

	// NaN must never leak: a NaN quantity zeroes the line
	got := ComputeLine(10000, math.NaN(), 18, true, false)
	if got.Total != 0 {
		t.Errorf("NaN quantity: Total = %d, want 0", got.Total)
	}
}

func TestComputeLineFractionalQuantity(t *testing.T) {
	// 2.5 kg at 40.00/kg, 5% exclusive
	got := ComputeLine(4000, 2.5, 5, true, false)
	if got.TaxableBase != 10000 {
		t.Errorf("TaxableBase = %d, want 10000", got.TaxableBase)
	}
	if got.Tax != 500 {
		t.Errorf("Tax = %d, want 500", got.Tax)
	}
	if got.Total != 10500 {
		t.Errorf("Total = %d, want 10500", got.Total)
	}
}

func TestComputeAggregate(t *testing.T) {
	items := []LineInput{
		{Price: 10000, Quantity: 2, TaxRate: 18},
		{Price: 5000, Quantity: 1, TaxRate: 5},
	}

	got := ComputeAggregate(items, true, false)
	if got.SubTotal != 25000 {
		t.Errorf("SubTotal = %d, want 25000", got.SubTotal)
	}
	if got.TotalTax != 3600+250 {
		t.Errorf("TotalTax = %d, want 3850", got.TotalTax)
	}
	if got.GrandTotal != got.SubTotal+got.TotalTax {
		t.Errorf("GrandTotal = %d, want SubTotal+TotalTax = %d", got.GrandTotal, got.SubTotal+got.TotalTax)
	}
}

func TestComputeAggregateTaxDisabled(t *testing.T) {
	items := []LineInput{
		{Price: 5000, Quantity: 3, TaxRate: 18},
	}
	got := ComputeAggregate(items, false, false)
	if got.TotalTax != 0 {
		t.Errorf("TotalTax = %d, want 0", got.TotalTax)
	}
	if got.SubTotal != 15000 || got.GrandTotal != 15000 {
		t.Errorf("SubTotal/GrandTotal = %d/%d, want 15000/15000", got.SubTotal, got.GrandTotal)
	}
}

func TestComputeAggregateIdempotent(t *testing.T) {
	items := []LineInput{
		{Price: 11800, Quantity: 2, TaxRate: 18},
		{Price: 3333, Quantity: 7, TaxRate: 12.5},
	}
	first := ComputeAggregate(items, true, true)
	second := ComputeAggregate(items, true, true)
	if first != second {
		t.Errorf("aggregate not idempotent: %+v vs %+v", first, second)
	}
}

func TestInclusiveExclusiveIdentity(t *testing.T) {
	// GrandTotal == SubTotal + TotalTax must hold exactly in integer paise
	// for awkward rates and quantities in both modes.
	items := []LineInput{
		{Price: 9999, Quantity: 3, TaxRate: 12.5},
		{Price: 101, Quantity: 13, TaxRate: 28},
		{Price: 77777, Quantity: 0.25, TaxRate: 18},
	}
	for _, inclusive := range []bool{false, true} {
		got := ComputeAggregate(items, true, inclusive)
		if got.GrandTotal != got.SubTotal+got.TotalTax {
			t.Errorf("inclusive=%v: GrandTotal %d != SubTotal %d + TotalTax %d",
				inclusive, got.GrandTotal, got.SubTotal, got.TotalTax)
		}
	}
}
