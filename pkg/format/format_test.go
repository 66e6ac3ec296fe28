package format

import "testing"

func TestAmount(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{23600, "236.00"},
		{0, "0.00"},
		{5, "0.05"},
		{150, "1.50"},
		{123456789, "1234567.89"},
	}
	for _, c := range cases {
		if got := Amount(c.minor); got != c.want {
			t.Errorf("Amount(%d) = %q, want %q", c.minor, got, c.want)
		}
	}
}

func TestAmountWithSymbol(t *testing.T) {
	if got := AmountWithSymbol("₹", 23600); got != "₹236.00" {
		t.Errorf("got %q", got)
	}
}

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{23600, "Two Hundred and Thirty Six Rupees Only/-"},
		{23650, "Two Hundred and Thirty Six Rupees and Fifty Paise Only/-"},
		{0, "Zero Rupees Only/-"},
		{100, "One Rupees Only/-"},
		{10000000 * 100, "One Crore Rupees Only/-"},
		{150000 * 100, "One Lakh Fifty Thousand Rupees Only/-"},
		{1205 * 100, "One Thousand Two Hundred and Five Rupees Only/-"},
		{-500, "Zero Rupees Only/-"},
	}
	for _, c := range cases {
		if got := AmountInWords(c.minor); got != c.want {
			t.Errorf("AmountInWords(%d) = %q, want %q", c.minor, got, c.want)
		}
	}
}
