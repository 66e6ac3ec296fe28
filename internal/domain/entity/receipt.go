package entity

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	GSTIN        string `json:"gstin,omitempty"`
}

// ReceiptItem is a single line on a printed receipt. Amounts are in
// currency units, not paise.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object composed from a stored invoice and the
// business profile at print time. It is never persisted.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	InvoiceNumber string        `json:"invoice_number"`
	Date          string        `json:"date"`
	Customer      string        `json:"customer,omitempty"`
	Items         []ReceiptItem `json:"items"`
	SubTotal      float64       `json:"sub_total"`
	Tax           float64       `json:"tax"`
	TaxInclusive  bool          `json:"tax_inclusive"`
	GrandTotal    float64       `json:"grand_total"`
	Footer        string        `json:"footer,omitempty"`
}
