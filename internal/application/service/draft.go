package service

import (
	"time"

	"github.com/quickbill/billing-api/internal/domain/billing"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/pkg/utils"
)

// DraftItem is a mutable invoice line under construction. Total is derived
// and refreshed by the draft on every mutation.
type DraftItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	Price     int64   `json:"price"` // Unit price in paise
	TaxRate   float64 `json:"tax_rate"`
	Total     int64   `json:"total"` // Line total in paise
}

// InvoiceDraft is the only mutable form of an invoice. Committed invoices are
// entity.Invoice values and expose no mutators; a draft becomes one exactly
// once, through InvoiceService.Save.
type InvoiceDraft struct {
	CustomerName    string      `json:"customer_name"`
	CustomerAddress string      `json:"customer_address"`
	CustomerGSTIN   string      `json:"customer_gstin"`
	CustomerPhone   string      `json:"customer_phone"`
	IssueDate       time.Time   `json:"date"`
	Items           []DraftItem `json:"items"`

	TaxEnabled     bool   `json:"tax_enabled"`
	IsTaxInclusive bool   `json:"is_tax_inclusive"`
	CurrencySymbol string `json:"currency_symbol"`

	SubTotal   int64 `json:"sub_total"`
	TotalTax   int64 `json:"total_tax"`
	GrandTotal int64 `json:"grand_total"`
}

// NewDraft starts a draft using the profile's current tax mode. When a last
// invoice is available its customer and items are prefilled so a repeat sale
// is a one-click save; prefilled items get fresh ids so edits to the new
// draft never alias the committed record.
func NewDraft(profile *entity.Profile, last *entity.Invoice) *InvoiceDraft {
	d := &InvoiceDraft{
		IssueDate:      time.Now(),
		TaxEnabled:     profile.TaxEnabled,
		IsTaxInclusive: profile.IsTaxInclusive,
		CurrencySymbol: profile.CurrencySymbol,
	}
	if last != nil {
		d.CustomerName = last.CustomerName
		d.CustomerAddress = last.CustomerAddress
		if last.CustomerGSTIN != nil {
			d.CustomerGSTIN = *last.CustomerGSTIN
		}
		if last.CustomerPhone != nil {
			d.CustomerPhone = *last.CustomerPhone
		}
		for _, item := range last.Items {
			d.Items = append(d.Items, DraftItem{
				ID:        utils.NewUUID().String(),
				ProductID: item.ProductID,
				Name:      item.Name,
				Unit:      item.Unit,
				Quantity:  item.Quantity,
				Price:     item.Price,
				TaxRate:   item.TaxRate,
			})
		}
	}
	d.recompute()
	return d
}

// SetCustomer replaces the draft's customer block
func (d *InvoiceDraft) SetCustomer(name, address, gstin, phone string) {
	d.CustomerName = name
	d.CustomerAddress = address
	d.CustomerGSTIN = gstin
	d.CustomerPhone = phone
}

// SetTaxMode switches the tax flags and reprices every line
func (d *InvoiceDraft) SetTaxMode(enabled, inclusive bool) {
	d.TaxEnabled = enabled
	d.IsTaxInclusive = inclusive
	d.recompute()
}

// AddItem appends a line from a catalog product
func (d *InvoiceDraft) AddItem(product *entity.Product, quantity float64) *DraftItem {
	d.Items = append(d.Items, DraftItem{
		ID:        utils.NewUUID().String(),
		ProductID: product.ID.String(),
		Name:      product.Name,
		Unit:      product.Unit,
		Quantity:  quantity,
		Price:     product.Price,
		TaxRate:   product.TaxRate,
	})
	d.recompute()
	return &d.Items[len(d.Items)-1]
}

// AddCustomItem appends an ad-hoc line not backed by the catalog. Its
// product id is a synthesized placeholder; the synchronizer may later
// promote the line to a real catalog product under a fresh id.
func (d *InvoiceDraft) AddCustomItem(name, unit string, price int64, quantity, taxRate float64) *DraftItem {
	d.Items = append(d.Items, DraftItem{
		ID:        utils.NewUUID().String(),
		ProductID: utils.NewCustomItemID(),
		Name:      name,
		Unit:      unit,
		Quantity:  quantity,
		Price:     price,
		TaxRate:   taxRate,
	})
	d.recompute()
	return &d.Items[len(d.Items)-1]
}

// UpdateItem changes the priced fields of the line with the given id and
// reports whether it was found
func (d *InvoiceDraft) UpdateItem(id string, quantity float64, price int64, taxRate float64) bool {
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items[i].Quantity = quantity
			d.Items[i].Price = price
			d.Items[i].TaxRate = taxRate
			d.recompute()
			return true
		}
	}
	return false
}

// RemoveItem deletes the line with the given id and reports whether it was found
func (d *InvoiceDraft) RemoveItem(id string) bool {
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.recompute()
			return true
		}
	}
	return false
}

// recompute refreshes every line total and the running aggregates
func (d *InvoiceDraft) recompute() {
	inputs := make([]billing.LineInput, len(d.Items))
	for i, item := range d.Items {
		line := billing.ComputeLine(item.Price, item.Quantity, item.TaxRate, d.TaxEnabled, d.IsTaxInclusive)
		d.Items[i].Total = line.Total
		inputs[i] = billing.LineInput{Price: item.Price, Quantity: item.Quantity, TaxRate: item.TaxRate}
	}
	totals := billing.ComputeAggregate(inputs, d.TaxEnabled, d.IsTaxInclusive)
	d.SubTotal = totals.SubTotal
	d.TotalTax = totals.TotalTax
	d.GrandTotal = totals.GrandTotal
}
