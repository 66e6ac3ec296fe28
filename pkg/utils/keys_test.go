package utils

import "testing"

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Atlas Builders", "atlas builders"},
		{"  Atlas Builders  ", "atlas builders"},
		{"ATLAS builders", "atlas builders"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := NormalizeKey(c.in); got != c.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValidGSTIN(t *testing.T) {
	cases := []struct {
		gstin string
		valid bool
	}{
		{"29ABCDE1234F1Z5", true},
		{"07AAACR5055K1Z7", true},
		{"  29abcde1234f1z5 ", true}, // normalized before matching
		{"29ABCDE1234F1X5", false},   // 14th char must be Z
		{"29ABCDE1234F1Z", false},    // too short
		{"29ABCDE1234F1Z55", false},  // too long
		{"ABABCDE1234F1Z5", false},   // state code must be digits
		{"", false},
	}
	for _, c := range cases {
		if got := IsValidGSTIN(c.gstin); got != c.valid {
			t.Errorf("IsValidGSTIN(%q) = %v, want %v", c.gstin, got, c.valid)
		}
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	if got := FormatInvoiceNumber("INV", 42); got != "INV-0042" {
		t.Errorf("got %q, want INV-0042", got)
	}
	if got := FormatInvoiceNumber("QB", 12345); got != "QB-12345" {
		t.Errorf("got %q, want QB-12345", got)
	}
	if got := FormatInvoiceNumber("", 1); got != "INV-0001" {
		t.Errorf("empty prefix: got %q, want INV-0001", got)
	}
}

func TestCustomItemID(t *testing.T) {
	id := NewCustomItemID()
	if !IsCustomItemID(id) {
		t.Errorf("NewCustomItemID() = %q, not recognized as custom", id)
	}
	if IsCustomItemID("9f1c2b3a-0000-0000-0000-000000000000") {
		t.Error("uuid wrongly classified as custom item id")
	}
}
