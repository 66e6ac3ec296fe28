package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
)

func testProfile() *entity.Profile {
	return entity.DefaultProfile(uuid.New(), "Test Traders", "owner@example.com")
}

func TestNewDraftUsesProfileTaxMode(t *testing.T) {
	profile := testProfile()
	profile.IsTaxInclusive = true

	draft := NewDraft(profile, nil)
	if !draft.TaxEnabled || !draft.IsTaxInclusive {
		t.Errorf("draft tax mode = %v/%v, want profile's true/true", draft.TaxEnabled, draft.IsTaxInclusive)
	}
	if len(draft.Items) != 0 {
		t.Errorf("fresh draft has %d items, want 0", len(draft.Items))
	}
}

func TestNewDraftPrefillsFromLastInvoice(t *testing.T) {
	last := &entity.Invoice{
		CustomerName:    "Sharma Traders",
		CustomerAddress: "12 MG Road",
		CustomerPhone:   strptr("9876543210"),
		Items: []entity.InvoiceItem{
			{ID: uuid.New(), ProductID: uuid.New().String(), Name: "Cement", Unit: "bags", Quantity: 2, Price: 10000, TaxRate: 18},
		},
	}

	draft := NewDraft(testProfile(), last)
	if draft.CustomerName != "Sharma Traders" || draft.CustomerPhone != "9876543210" {
		t.Errorf("customer not prefilled: %+v", draft)
	}
	if len(draft.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(draft.Items))
	}
	// prefilled lines must not alias the committed record
	if draft.Items[0].ID == last.Items[0].ID.String() {
		t.Error("prefilled item reuses the committed item's id")
	}
	if draft.Items[0].ProductID != last.Items[0].ProductID {
		t.Error("prefilled item lost its product reference")
	}
	// totals are live immediately after prefill
	if draft.GrandTotal != 23600 {
		t.Errorf("GrandTotal = %d after prefill, want 23600", draft.GrandTotal)
	}
}

func TestDraftRecomputesOnEveryMutation(t *testing.T) {
	draft := NewDraft(testProfile(), nil)

	item := draft.AddCustomItem("Cement", "bags", 10000, 2, 18)
	if draft.GrandTotal != 23600 {
		t.Errorf("GrandTotal = %d after add, want 23600", draft.GrandTotal)
	}
	if item.Total != 23600 {
		t.Errorf("line total = %d, want 23600", item.Total)
	}

	if !draft.UpdateItem(item.ID, 1, 10000, 18) {
		t.Fatal("UpdateItem did not find the line")
	}
	if draft.GrandTotal != 11800 {
		t.Errorf("GrandTotal = %d after quantity change, want 11800", draft.GrandTotal)
	}

	draft.SetTaxMode(false, false)
	if draft.GrandTotal != 10000 || draft.TotalTax != 0 {
		t.Errorf("totals = %d/%d after disabling tax, want 10000/0", draft.GrandTotal, draft.TotalTax)
	}

	if !draft.RemoveItem(draft.Items[0].ID) {
		t.Fatal("RemoveItem did not find the line")
	}
	if draft.GrandTotal != 0 || len(draft.Items) != 0 {
		t.Errorf("draft not empty after removing the only line: %+v", draft)
	}
}

func TestDraftAddItemFromCatalog(t *testing.T) {
	draft := NewDraft(testProfile(), nil)
	product := &entity.Product{ID: uuid.New(), Name: "Cement", Unit: "bags", Price: 35000, TaxRate: 28}

	item := draft.AddItem(product, 3)
	if item.ProductID != product.ID.String() {
		t.Errorf("ProductID = %q, want the catalog id", item.ProductID)
	}
	if item.Price != 35000 || item.TaxRate != 28 {
		t.Errorf("line did not copy the catalog price and rate: %+v", item)
	}
	// 3 * 350.00 = 1050.00 base, 28% = 294.00 tax
	if draft.GrandTotal != 134400 {
		t.Errorf("GrandTotal = %d, want 134400", draft.GrandTotal)
	}
}
