package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// gstinPattern is the structural format of an Indian GSTIN: 2-digit state code,
// 10-character PAN, entity number, Z, check character. Structure only, no
// checksum or registry verification.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// CustomItemPrefix marks synthesized product ids for ad-hoc invoice lines that
// have no catalog entry behind them.
const CustomItemPrefix = "custom-"

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// NormalizeKey trims and case-folds a string for duplicate detection. Both
// customer and product matching go through this one function so the two code
// paths can never diverge.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidGSTIN reports whether s structurally matches the GSTIN format.
func IsValidGSTIN(s string) bool {
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// FormatInvoiceNumber builds a display invoice number from the profile's
// prefix and counter, e.g. "INV-0042".
func FormatInvoiceNumber(prefix string, number int) string {
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%04d", prefix, number)
}

// NewCustomItemID synthesizes a product id for an ad-hoc line item.
func NewCustomItemID() string {
	return fmt.Sprintf("%s%d", CustomItemPrefix, time.Now().UnixMilli())
}

// IsCustomItemID reports whether a product id is a synthesized placeholder
// rather than a catalog reference.
func IsCustomItemID(id string) bool {
	return strings.HasPrefix(id, CustomItemPrefix)
}
