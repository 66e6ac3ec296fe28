package service

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestWriteInvoicesCSV(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	invoices := NewInvoiceService(store, NewSyncService(store))
	reports := NewReportService(store)

	if _, err := invoices.Save(ctx, accountID, newValidDraft()); err != nil {
		t.Fatalf("save: %v", err)
	}

	var buf bytes.Buffer
	if err := reports.WriteInvoicesCSV(ctx, &buf); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one invoice", len(rows))
	}
	if rows[0][0] != "Invoice Number" || rows[0][7] != "Grand Total" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "INV-0001" {
		t.Errorf("invoice number = %q", row[0])
	}
	if row[2] != "Sharma Traders" {
		t.Errorf("customer = %q", row[2])
	}
	if row[5] != "200.00" || row[6] != "36.00" || row[7] != "236.00" {
		t.Errorf("amounts = %v %v %v", row[5], row[6], row[7])
	}
	if row[8] != "true" {
		t.Errorf("tax enabled = %q", row[8])
	}
}

func TestWriteInvoicesCSVEmptyHistory(t *testing.T) {
	store, _, ctx := setupStore(t)
	reports := NewReportService(store)

	var buf bytes.Buffer
	if err := reports.WriteInvoicesCSV(ctx, &buf); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}
