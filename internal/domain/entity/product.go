package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry in the account's master data. Names are unique
// within an account by case-insensitive match; the synchronizer enforces this
// when inserting from invoice lines.
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AccountID uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Unit      string         `gorm:"size:50;default:'unit'" json:"unit"`
	Price     int64          `gorm:"default:0" json:"price"` // Stored in paise
	TaxRate   float64        `gorm:"default:0" json:"tax_rate"`
	HSNCode   *string        `gorm:"size:20;column:hsn_code" json:"hsn_code,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the unit price as a decimal value (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the unit price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price * 100)
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Price     float64   `json:"price"` // Decimal value for JSON
	TaxRate   float64   `json:"tax_rate"`
	HSNCode   *string   `json:"hsn_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(ProductJSON{
		ID:        p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		Price:     p.GetPriceDecimal(),
		TaxRate:   p.TaxRate,
		HSNCode:   p.HSNCode,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}
