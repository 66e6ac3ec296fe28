package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/format"
)

// ReportService renders flat exports of the invoice history
type ReportService struct {
	store repository.EntityStore
}

// NewReportService creates a new report service
func NewReportService(store repository.EntityStore) *ReportService {
	return &ReportService{store: store}
}

var invoiceCSVHeader = []string{
	"Invoice Number",
	"Date",
	"Customer Name",
	"GSTIN",
	"Phone",
	"Taxable Value",
	"Tax Amount",
	"Grand Total",
	"Tax Enabled",
	"Status",
}

// WriteInvoicesCSV streams the account's invoice history as CSV, one row per
// invoice, newest first. Money columns use fixed two-decimal formatting.
func (s *ReportService) WriteInvoicesCSV(ctx context.Context, w io.Writer) error {
	invoices, err := s.store.GetInvoices(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(invoiceCSVHeader); err != nil {
		return err
	}

	for _, inv := range invoices {
		gstin := ""
		if inv.CustomerGSTIN != nil {
			gstin = *inv.CustomerGSTIN
		}
		phone := ""
		if inv.CustomerPhone != nil {
			phone = *inv.CustomerPhone
		}
		row := []string{
			inv.InvoiceNumber,
			inv.IssueDate.Format("2006-01-02"),
			inv.CustomerName,
			gstin,
			phone,
			format.Amount(inv.SubTotal),
			format.Amount(inv.TotalTax),
			format.Amount(inv.GrandTotal),
			strconv.FormatBool(inv.TaxEnabled),
			inv.Status.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
