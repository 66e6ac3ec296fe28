package service

import (
	"bytes"
	"testing"

	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/pkg/printer"
)

func TestPrintInvoiceBuildsReceiptFromSnapshot(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	invoices := NewInvoiceService(store, NewSyncService(store))
	printers := NewPrinterService(printer.NewNullPrinter(), store, "none")

	out, err := invoices.Save(ctx, accountID, newValidDraft())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	receipt, err := printers.PrintInvoice(ctx, out.Invoice.ID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if receipt.InvoiceNumber != "INV-0001" {
		t.Errorf("InvoiceNumber = %q", receipt.InvoiceNumber)
	}
	if receipt.Customer != "Sharma Traders" {
		t.Errorf("Customer = %q", receipt.Customer)
	}
	if receipt.GrandTotal != 236.00 {
		t.Errorf("GrandTotal = %v, want 236.00", receipt.GrandTotal)
	}
	if len(receipt.Items) != 1 || receipt.Items[0].Quantity != 2 {
		t.Errorf("items = %+v", receipt.Items)
	}
	if receipt.Header.BusinessName == "" {
		t.Error("profile header missing")
	}
}

func TestFormatReceiptRendersLineItems(t *testing.T) {
	receipt := &entity.Receipt{
		Header:        entity.ReceiptHeader{BusinessName: "Sharma Hardware", GSTIN: "29ABCDE1234F1Z5"},
		InvoiceNumber: "INV-0042",
		Date:          "2026-09-01",
		Customer:      "Verma & Sons",
		Items: []entity.ReceiptItem{
			{Name: "Cement", Quantity: 2.5, UnitPrice: 100, Total: 250},
		},
		SubTotal:   250,
		Tax:        45,
		GrandTotal: 295,
	}

	data := FormatReceipt(receipt)
	for _, want := range []string{
		"Sharma Hardware",
		"GSTIN: 29ABCDE1234F1Z5",
		"INV-0042",
		"2.5x Cement",
		"295.00",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("receipt missing %q", want)
		}
	}
	if !bytes.HasSuffix(data, []byte{0x1D, 'V', 0x01}) {
		t.Error("missing partial cut terminator")
	}
}
