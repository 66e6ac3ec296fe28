package service

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
	"github.com/quickbill/billing-api/pkg/printer"
)

// PrinterService renders invoices as thermal receipts and sends them to
// the configured ESC/POS printer.
type PrinterService struct {
	printer     printer.Printer
	store       repository.EntityStore
	printerType string
}

// NewPrinterService creates a new printer service
func NewPrinterService(p printer.Printer, store repository.EntityStore, printerType string) *PrinterService {
	return &PrinterService{
		printer:     p,
		store:       store,
		printerType: printerType,
	}
}

// PrinterStatus reports the configured printer and its connectivity.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page and returns the rendered receipt so callers
// can inspect it even when no printer is attached.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			BusinessName: "PRINTER TEST",
			Address:      "Test Address",
			Phone:        "+91 00000 00000",
		},
		InvoiceNumber: "TEST-0001",
		Date:          "Test Date",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal:   20.00,
		Tax:        0.00,
		GrandTotal: 20.00,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintInvoice renders a stored invoice with the current profile header
// and prints it. The receipt is returned even when printing fails.
func (s *PrinterService) PrintInvoice(ctx context.Context, invoiceID uuid.UUID) (*entity.Receipt, error) {
	invoice, err := s.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	receipt := buildReceipt(invoice, profile)

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (invoice %s): %v", invoiceID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

func buildReceipt(invoice *entity.Invoice, profile *entity.Profile) *entity.Receipt {
	receipt := &entity.Receipt{
		InvoiceNumber: invoice.InvoiceNumber,
		Date:          invoice.IssueDate.Format("2006-01-02"),
		Customer:      invoice.CustomerName,
		SubTotal:      float64(invoice.SubTotal) / 100,
		Tax:           float64(invoice.TotalTax) / 100,
		TaxInclusive:  invoice.IsTaxInclusive,
		GrandTotal:    float64(invoice.GrandTotal) / 100,
		Footer:        "Thank you for your business!",
	}

	if profile != nil {
		receipt.Header = entity.ReceiptHeader{
			BusinessName: profile.BusinessName,
			Address:      profile.Address,
			Phone:        profile.Phone,
			GSTIN:        profile.GSTIN,
		}
	}

	for _, item := range invoice.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.Price) / 100,
			Total:     float64(item.Total) / 100,
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes for 58mm paper.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.GSTIN != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTIN)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNumber).
		KeyValue("Date:", r.Date)
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		qty := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
		doc.ItemLine(qty, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity != 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Tax > 0 {
		label := "Tax:"
		if r.TaxInclusive {
			label = "Tax (incl):"
		}
		doc.KeyValue(label, fmt.Sprintf("%.2f", r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.GrandTotal)).
		SetBold(false)

	doc.Separator('-')

	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			LineFeed().
			Text(r.Footer).
			LineFeed().
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
