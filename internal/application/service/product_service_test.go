package service

import (
	"testing"

	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/pkg/apperror"
)

func TestProductCreateRejectsDuplicateNames(t *testing.T) {
	store, _, ctx := setupStore(t)
	svc := NewProductService(store)

	if _, err := svc.Create(ctx, &ProductInput{Name: "Cement", Price: 35000}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, &ProductInput{Name: "  CEMENT ", Price: 1})
	if err == nil {
		t.Fatal("duplicate name accepted")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 409 {
		t.Errorf("code = %d, want 409", appErr.Code)
	}
}

func TestProductSearchRanking(t *testing.T) {
	store, _, ctx := setupStore(t)
	seedProducts(t, store, ctx, []entity.Product{
		{Name: "Cement"},
		{Name: "White Cement"},
		{Name: "Cement Sheets"},
		{Name: "Ce ramic me nt tiles"},
		{Name: "Sand"},
	})
	svc := NewProductService(store)

	results, err := svc.Search(ctx, "cement")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) < 3 {
		t.Fatalf("got %d results, want at least 3", len(results))
	}
	if results[0].Name != "Cement" {
		t.Errorf("top result = %q, exact match must rank first", results[0].Name)
	}
	if results[1].Name != "Cement Sheets" {
		t.Errorf("second result = %q, prefix match must outrank substring", results[1].Name)
	}
	for _, r := range results {
		if r.Name == "Sand" {
			t.Error("non-matching product returned")
		}
	}
}

func TestProductSearchFuzzySubsequence(t *testing.T) {
	store, _, ctx := setupStore(t)
	seedProducts(t, store, ctx, []entity.Product{
		{Name: "Portland Cement"},
		{Name: "Iron Rods"},
	})
	svc := NewProductService(store)

	// "ptc" appears in order in "portland cement" but not contiguously
	results, err := svc.Search(ctx, "ptc")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Portland Cement" {
		t.Errorf("results = %+v, want the fuzzy match only", results)
	}
}

func TestProductSearchLimit(t *testing.T) {
	store, _, ctx := setupStore(t)
	var products []entity.Product
	names := []string{"Nail 1in", "Nail 2in", "Nail 3in", "Nail 4in", "Nail 5in", "Nail 6in", "Nail 7in", "Nail 8in"}
	for _, n := range names {
		products = append(products, entity.Product{Name: n})
	}
	seedProducts(t, store, ctx, products)
	svc := NewProductService(store)

	results, err := svc.Search(ctx, "nail")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != maxProductSearchResults {
		t.Errorf("got %d results, want %d", len(results), maxProductSearchResults)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	store, _, ctx := setupStore(t)
	svc := NewProductService(store)

	created, err := svc.Create(ctx, &ProductInput{Name: "Cement", Unit: "bags", Price: 35000, TaxRate: 28})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, &ProductInput{Name: "Cement OPC", Unit: "bags", Price: 36000, TaxRate: 28})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Cement OPC" || updated.Price != 36000 {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	products, err := store.GetProducts(ctx)
	if err != nil {
		t.Fatalf("get products: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products after delete, want 0", len(products))
	}
}
