package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringSlice stores a list of strings as a JSON text column so the same
// mapping works on both sqlite and postgres backends.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	}
	return errors.New("unsupported type for StringSlice")
}

// Profile holds the business and tax configuration for an account: identity
// fields that appear on the printed invoice, the tax mode defaults, the
// invoice numbering scheme, and free-text terms. Exactly one per account.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"account_id"`

	BusinessName string `gorm:"size:255;not null" json:"business_name"`
	Address      string `gorm:"type:text" json:"address"`
	GSTIN        string `gorm:"size:20" json:"gstin"`
	Phone        string `gorm:"size:50" json:"phone"`
	Email        string `gorm:"size:255" json:"email"`
	State        string `gorm:"size:100" json:"state"`

	Currency       string `gorm:"size:10;default:'INR'" json:"currency"`
	CurrencySymbol string `gorm:"size:10;default:'₹'" json:"currency_symbol"`

	TaxEnabled     bool    `gorm:"default:true" json:"tax_enabled"`
	DefaultTaxRate float64 `gorm:"default:18" json:"default_tax_rate"`
	IsTaxInclusive bool    `gorm:"default:false" json:"is_tax_inclusive"`

	// NextNumber is monotonically non-decreasing: +1 per committed invoice,
	// back to 1 only on an explicit invoice-history reset.
	InvoicePrefix string `gorm:"size:20;default:'INV'" json:"invoice_prefix"`
	NextNumber    int    `gorm:"default:1" json:"next_number"`

	AvailableUnits StringSlice `gorm:"type:text" json:"available_units"`

	SignatureTitle     string `gorm:"size:255" json:"signature_title"`
	TermsAndConditions string `gorm:"type:text" json:"terms_and_conditions"`

	BankName          string `gorm:"size:255" json:"bank_name"`
	BankAccountNumber string `gorm:"size:100" json:"bank_account_number"`
	BankIFSC          string `gorm:"size:20" json:"bank_ifsc"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new profile
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// DefaultProfile builds the profile template seeded at signup.
func DefaultProfile(accountID uuid.UUID, businessName, email string) *Profile {
	if businessName == "" {
		businessName = "My Business"
	}
	return &Profile{
		AccountID:      accountID,
		BusinessName:   businessName,
		Email:          email,
		Currency:       "INR",
		CurrencySymbol: "₹",
		TaxEnabled:     true,
		DefaultTaxRate: 18,
		IsTaxInclusive: false,
		InvoicePrefix:  "INV",
		NextNumber:     1,
		AvailableUnits: StringSlice{"pcs", "kg", "nos", "m", "bags", "units", "box", "set", "sqft", "ton"},
		SignatureTitle: "For " + businessName,
		TermsAndConditions: "1. Goods once sold will not be taken back.\n" +
			"2. Payment should be made by due date.\n" +
			"3. Interest @ 18% p.a. will be charged for delayed payment.",
	}
}
