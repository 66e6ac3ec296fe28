package service

import (
	"testing"

	"github.com/quickbill/billing-api/pkg/apperror"
)

func TestProfileUpdatePreservesInvoiceCounter(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	invoices := NewInvoiceService(store, NewSyncService(store))
	profiles := NewProfileService(store)

	draft := newValidDraft()
	if _, err := invoices.Save(ctx, accountID, draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := profiles.Update(ctx, &ProfileInput{
		BusinessName: "Sharma Hardware",
		GSTIN:        "29ABCDE1234F1Z5",
		TaxEnabled:   true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.BusinessName != "Sharma Hardware" {
		t.Errorf("BusinessName = %q", updated.BusinessName)
	}
	if updated.NextNumber != 2 {
		t.Errorf("NextNumber = %d, want 2", updated.NextNumber)
	}
}

func TestProfileUpdateValidation(t *testing.T) {
	store, _, ctx := setupStore(t)
	profiles := NewProfileService(store)

	if _, err := profiles.Update(ctx, &ProfileInput{}); err == nil {
		t.Error("update without business name accepted")
	}

	_, err := profiles.Update(ctx, &ProfileInput{BusinessName: "Sharma Hardware", GSTIN: "NOPE"})
	if !apperror.IsValidationError(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestProfileUpdateKeepsDefaultsWhenOmitted(t *testing.T) {
	store, _, ctx := setupStore(t)
	profiles := NewProfileService(store)

	updated, err := profiles.Update(ctx, &ProfileInput{BusinessName: "Sharma Hardware"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.InvoicePrefix != "INV" {
		t.Errorf("InvoicePrefix = %q, want INV", updated.InvoicePrefix)
	}
	if updated.CurrencySymbol == "" {
		t.Error("currency symbol blanked")
	}
}
