package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
)

func newValidDraft() *InvoiceDraft {
	draft := &InvoiceDraft{
		CustomerName:   "Sharma Traders",
		TaxEnabled:     true,
		IsTaxInclusive: false,
	}
	draft.AddCustomItem("Cement", "bags", 10000, 2, 18)
	return draft
}

func TestSaveAllocatesNumberAndCommits(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	svc := NewInvoiceService(store, NewSyncService(store))

	out, err := svc.Save(ctx, accountID, newValidDraft())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if out.SyncWarning != "" {
		t.Errorf("unexpected sync warning: %s", out.SyncWarning)
	}

	inv := out.Invoice
	if inv.InvoiceNumber != "INV-0001" {
		t.Errorf("InvoiceNumber = %q, want INV-0001", inv.InvoiceNumber)
	}
	if inv.SubTotal != 20000 || inv.TotalTax != 3600 || inv.GrandTotal != 23600 {
		t.Errorf("totals = %d/%d/%d, want 20000/3600/23600", inv.SubTotal, inv.TotalTax, inv.GrandTotal)
	}

	profile, err := store.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.NextNumber != 2 {
		t.Errorf("NextNumber = %d after save, want 2", profile.NextNumber)
	}

	// second save picks up the advanced counter
	out2, err := svc.Save(ctx, accountID, newValidDraft())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if out2.Invoice.InvoiceNumber != "INV-0002" {
		t.Errorf("second InvoiceNumber = %q, want INV-0002", out2.Invoice.InvoiceNumber)
	}
}

func TestSaveSyncsCatalogs(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	svc := NewInvoiceService(store, NewSyncService(store))

	if _, err := svc.Save(ctx, accountID, newValidDraft()); err != nil {
		t.Fatalf("save: %v", err)
	}

	customers, err := store.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("get customers: %v", err)
	}
	if len(customers) != 1 || customers[0].Name != "Sharma Traders" {
		t.Errorf("customers = %+v, want the invoice's customer", customers)
	}

	products, err := store.GetProducts(ctx)
	if err != nil {
		t.Fatalf("get products: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Cement" {
		t.Errorf("products = %+v, want the invoice's line item", products)
	}
}

func TestSaveRejectsInvalidDrafts(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	svc := NewInvoiceService(store, NewSyncService(store))

	cases := []struct {
		name  string
		draft *InvoiceDraft
		field string
	}{
		{
			name: "missing customer name",
			draft: func() *InvoiceDraft {
				d := newValidDraft()
				d.CustomerName = ""
				return d
			}(),
			field: "customer_name",
		},
		{
			name:  "no items",
			draft: &InvoiceDraft{CustomerName: "Sharma Traders"},
			field: "items",
		},
		{
			name: "zero quantity",
			draft: func() *InvoiceDraft {
				d := &InvoiceDraft{CustomerName: "Sharma Traders", TaxEnabled: true}
				d.AddCustomItem("Cement", "bags", 10000, 0, 18)
				return d
			}(),
			field: "items",
		},
		{
			name: "malformed GSTIN",
			draft: func() *InvoiceDraft {
				d := newValidDraft()
				d.CustomerGSTIN = "NOT-A-GSTIN"
				return d
			}(),
			field: "customer_gstin",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(ctx, accountID, tc.draft)
			if !apperror.IsValidationError(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			appErr := apperror.GetAppError(err)
			found := false
			for _, fe := range appErr.Errors {
				if fe.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no field error for %q in %+v", tc.field, appErr.Errors)
			}
		})
	}

	// nothing must have been persisted by any rejected draft
	invoices, err := store.GetInvoices(ctx)
	if err != nil {
		t.Fatalf("get invoices: %v", err)
	}
	if len(invoices) != 0 {
		t.Errorf("got %d invoices after failed validations, want 0", len(invoices))
	}
	profile, err := store.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.NextNumber != 1 {
		t.Errorf("NextNumber = %d after failed validations, want 1", profile.NextNumber)
	}
}

// failingStore wraps a real store and fails every append
type failingStore struct {
	repository.EntityStore
}

func (f *failingStore) AppendInvoice(ctx context.Context, invoice *entity.Invoice) error {
	return errors.New("disk full")
}

func TestFailedAppendLeavesCounterIntact(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	svc := NewInvoiceService(&failingStore{EntityStore: store}, NewSyncService(store))

	draft := newValidDraft()
	_, err := svc.Save(ctx, accountID, draft)
	if !apperror.IsPersistenceError(err) {
		t.Fatalf("err = %v, want persistence error", err)
	}

	// the draft is untouched and the same save can be retried
	if draft.CustomerName != "Sharma Traders" || len(draft.Items) != 1 {
		t.Error("draft mutated by a failed save")
	}

	profile, err := store.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.NextNumber != 1 {
		t.Errorf("NextNumber = %d after failed save, want 1", profile.NextNumber)
	}
}

func TestSyncFailureIsWarningNotError(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	// sync reads through a store whose catalog writes fail
	svc := NewInvoiceService(store, NewSyncService(&catalogFailingStore{EntityStore: store}))

	out, err := svc.Save(ctx, accountID, newValidDraft())
	if err != nil {
		t.Fatalf("save must succeed despite sync failure, got %v", err)
	}
	if out.SyncWarning == "" {
		t.Error("expected a sync warning")
	}

	// the invoice is committed regardless
	invoices, err := store.GetInvoices(ctx)
	if err != nil {
		t.Fatalf("get invoices: %v", err)
	}
	if len(invoices) != 1 {
		t.Errorf("got %d invoices, want 1", len(invoices))
	}
}

type catalogFailingStore struct {
	repository.EntityStore
}

func (f *catalogFailingStore) SaveCustomers(ctx context.Context, customers []entity.Customer) error {
	return errors.New("write refused")
}

func (f *catalogFailingStore) SaveProducts(ctx context.Context, products []entity.Product) error {
	return errors.New("write refused")
}

func TestResetHistoryRestartsNumbering(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	svc := NewInvoiceService(store, NewSyncService(store))

	if _, err := svc.Save(ctx, accountID, newValidDraft()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.ResetHistory(ctx, accountID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	out, err := svc.Save(ctx, accountID, newValidDraft())
	if err != nil {
		t.Fatalf("save after reset: %v", err)
	}
	if out.Invoice.InvoiceNumber != "INV-0001" {
		t.Errorf("InvoiceNumber = %q after reset, want INV-0001", out.Invoice.InvoiceNumber)
	}
}

func TestGetReturnsStoredSnapshot(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	svc := NewInvoiceService(store, NewSyncService(store))

	out, err := svc.Save(ctx, accountID, newValidDraft())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.Get(ctx, out.Invoice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.GrandTotal != out.Invoice.GrandTotal || got.InvoiceNumber != out.Invoice.InvoiceNumber {
		t.Errorf("stored invoice differs from committed one")
	}

	if _, err := svc.Get(ctx, uuid.New()); !apperror.IsAppError(err) {
		t.Errorf("unknown id: err = %v, want not-found", err)
	}
}
