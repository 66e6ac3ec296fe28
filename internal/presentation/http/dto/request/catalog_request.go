package request

// ProductRequest represents a product create or update request.
// Price is a decimal amount; it is converted to paise at the boundary.
type ProductRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Unit    string  `json:"unit" binding:"omitempty,max=50"`
	Price   float64 `json:"price" binding:"min=0"`
	TaxRate float64 `json:"tax_rate" binding:"min=0,max=100"`
	HSNCode string  `json:"hsn_code" binding:"omitempty,max=20"`
}

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin" binding:"omitempty,max=20"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
}

// ProfileRequest represents a business profile update request
type ProfileRequest struct {
	BusinessName   string   `json:"business_name" binding:"required,min=1,max=255"`
	Address        string   `json:"address"`
	GSTIN          string   `json:"gstin" binding:"omitempty,max=20"`
	Phone          string   `json:"phone" binding:"omitempty,max=50"`
	Email          string   `json:"email" binding:"omitempty,email"`
	State          string   `json:"state" binding:"omitempty,max=100"`
	Currency       string   `json:"currency" binding:"omitempty,max=10"`
	CurrencySymbol string   `json:"currency_symbol" binding:"omitempty,max=10"`
	TaxEnabled     bool     `json:"tax_enabled"`
	DefaultTaxRate float64  `json:"default_tax_rate" binding:"min=0,max=100"`
	IsTaxInclusive bool     `json:"is_tax_inclusive"`
	InvoicePrefix  string   `json:"invoice_prefix" binding:"omitempty,max=20"`
	AvailableUnits []string `json:"available_units"`

	SignatureTitle     string `json:"signature_title" binding:"omitempty,max=255"`
	TermsAndConditions string `json:"terms_and_conditions"`

	BankName          string `json:"bank_name" binding:"omitempty,max=255"`
	BankAccountNumber string `json:"bank_account_number" binding:"omitempty,max=100"`
	BankIFSC          string `json:"bank_ifsc" binding:"omitempty,max=20"`
}
