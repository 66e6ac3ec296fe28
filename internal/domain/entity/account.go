package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the root aggregate: one registered credential owning a profile,
// the product and customer catalogs, and the invoice log.
type Account struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email        string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	BusinessName string         `gorm:"size:255;not null" json:"business_name"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Profile *Profile `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
