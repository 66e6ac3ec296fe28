package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is an immutable record of a committed sale. Customer fields and line
// items are snapshots copied at save time: later edits to the catalogs never
// retroactively alter history. The most recent invoice carries IsLast, which
// backs the prefill of the next draft.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	InvoiceNumber string    `gorm:"size:50;not null" json:"invoice_number"`
	IssueDate     time.Time `gorm:"not null" json:"date"`

	// Customer snapshot
	CustomerName    string  `gorm:"size:255;not null" json:"customer_name"`
	CustomerAddress string  `gorm:"type:text" json:"customer_address"`
	CustomerGSTIN   *string `gorm:"size:20" json:"customer_gstin,omitempty"`
	CustomerPhone   *string `gorm:"size:50" json:"customer_phone,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	// Aggregates in paise; GrandTotal == SubTotal + TotalTax exactly.
	SubTotal   int64 `gorm:"not null" json:"sub_total"`
	TotalTax   int64 `gorm:"not null" json:"total_tax"`
	GrandTotal int64 `gorm:"not null" json:"grand_total"`

	// Tax-mode and currency snapshots frozen at save time
	TaxEnabled     bool   `gorm:"not null" json:"tax_enabled"`
	IsTaxInclusive bool   `gorm:"not null" json:"is_tax_inclusive"`
	CurrencySymbol string `gorm:"size:10" json:"currency_symbol"`

	Status enum.InvoiceStatus `gorm:"default:2" json:"status"`
	IsLast bool               `gorm:"default:false;index" json:"-"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a frozen line-item snapshot. ProductID keeps the originating
// catalog id, or a synthesized "custom-*" placeholder for ad-hoc lines.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID string    `gorm:"size:64;not null" json:"product_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Unit      string    `gorm:"size:50" json:"unit"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // Unit price in paise
	TaxRate   float64   `gorm:"not null" json:"tax_rate"`
	Total     int64     `gorm:"not null" json:"total"` // Line total in paise
	Position  int       `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// invoiceItemJSON exposes money fields as decimal values at the JSON boundary
type invoiceItemJSON struct {
	ID        uuid.UUID `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	TaxRate   float64   `json:"tax_rate"`
	Total     float64   `json:"total"`
}

// MarshalJSON converts InvoiceItem to JSON with decimal money values
func (i InvoiceItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(invoiceItemJSON{
		ID:        i.ID,
		ProductID: i.ProductID,
		Name:      i.Name,
		Unit:      i.Unit,
		Quantity:  i.Quantity,
		Price:     float64(i.Price) / 100,
		TaxRate:   i.TaxRate,
		Total:     float64(i.Total) / 100,
	})
}

// invoiceJSON exposes aggregate money fields as decimal values at the JSON boundary
type invoiceJSON struct {
	ID              uuid.UUID          `json:"id"`
	InvoiceNumber   string             `json:"invoice_number"`
	Date            string             `json:"date"`
	CustomerName    string             `json:"customer_name"`
	CustomerAddress string             `json:"customer_address"`
	CustomerGSTIN   *string            `json:"customer_gstin,omitempty"`
	CustomerPhone   *string            `json:"customer_phone,omitempty"`
	Items           []InvoiceItem      `json:"items"`
	SubTotal        float64            `json:"sub_total"`
	TotalTax        float64            `json:"total_tax"`
	GrandTotal      float64            `json:"grand_total"`
	TaxEnabled      bool               `json:"tax_enabled"`
	IsTaxInclusive  bool               `json:"is_tax_inclusive"`
	CurrencySymbol  string             `json:"currency_symbol"`
	Status          enum.InvoiceStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
}

// MarshalJSON converts Invoice to JSON with decimal money values
func (i Invoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(invoiceJSON{
		ID:              i.ID,
		InvoiceNumber:   i.InvoiceNumber,
		Date:            i.IssueDate.Format("2006-01-02"),
		CustomerName:    i.CustomerName,
		CustomerAddress: i.CustomerAddress,
		CustomerGSTIN:   i.CustomerGSTIN,
		CustomerPhone:   i.CustomerPhone,
		Items:           i.Items,
		SubTotal:        float64(i.SubTotal) / 100,
		TotalTax:        float64(i.TotalTax) / 100,
		GrandTotal:      float64(i.GrandTotal) / 100,
		TaxEnabled:      i.TaxEnabled,
		IsTaxInclusive:  i.IsTaxInclusive,
		CurrencySymbol:  i.CurrencySymbol,
		Status:          i.Status,
		CreatedAt:       i.CreatedAt,
	})
}
