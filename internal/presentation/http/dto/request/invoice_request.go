package request

// InvoiceItemRequest is one draft line in a save request. Price is a decimal
// amount converted to paise at the boundary.
type InvoiceItemRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name" binding:"required,min=1,max=255"`
	Unit      string  `json:"unit" binding:"omitempty,max=50"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price" binding:"min=0"`
	TaxRate   float64 `json:"tax_rate" binding:"min=0,max=100"`
}

// SaveInvoiceRequest carries a complete draft to commit. Totals are not
// accepted from the client; they are always recomputed server-side.
type SaveInvoiceRequest struct {
	CustomerName    string               `json:"customer_name"`
	CustomerAddress string               `json:"customer_address"`
	CustomerGSTIN   string               `json:"customer_gstin"`
	CustomerPhone   string               `json:"customer_phone"`
	Date            string               `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Items           []InvoiceItemRequest `json:"items"`
	TaxEnabled      *bool                `json:"tax_enabled"`
	IsTaxInclusive  *bool                `json:"is_tax_inclusive"`
}
