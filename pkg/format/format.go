// Package format holds presentation helpers for money values: fixed two-decimal
// formatting of minor-unit amounts and the Indian-system amount-in-words used on
// printable invoices. No business rules live here.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount renders an int64 minor-unit amount (paise) as a plain two-decimal
// string, e.g. 23600 -> "236.00".
func Amount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// AmountWithSymbol prefixes the formatted amount with a currency symbol.
func AmountWithSymbol(symbol string, minor int64) string {
	return symbol + Amount(minor)
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// twoDigits spells a number 0..99
func twoDigits(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

// inWords spells an integer under one arab (10^9) using the Indian grouping
// crore / lakh / thousand / hundred.
func inWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var parts []string
	if crore := n / 10000000; crore > 0 {
		parts = append(parts, twoDigits(crore)+" Crore")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, twoDigits(lakh)+" Lakh")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigits(thousand)+" Thousand")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, ones[hundred]+" Hundred")
		n %= 100
	}
	if n > 0 {
		last := twoDigits(n)
		if len(parts) > 0 {
			last = "and " + last
		}
		parts = append(parts, last)
	}
	return strings.Join(parts, " ")
}

// AmountInWords spells an int64 minor-unit amount as rupees and paise,
// e.g. 23650 -> "Two Hundred and Thirty Six Rupees and Fifty Paise Only/-".
func AmountInWords(minor int64) string {
	if minor < 0 {
		minor = 0
	}
	rupees := minor / 100
	paise := minor % 100

	result := inWords(rupees) + " Rupees"
	if paise > 0 {
		result += " and " + inWords(paise) + " Paise"
	}
	return result + " Only/-"
}
