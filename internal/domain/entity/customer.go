package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a catalog entry in the account's master data. Matched by
// case-insensitive name during invoice sync; created explicitly from the
// customers screen or implicitly from a saved invoice.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AccountID uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"type:text" json:"address"`
	GSTIN     *string        `gorm:"size:20" json:"gstin,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
