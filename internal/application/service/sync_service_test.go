package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/pkg/utils"
)

func TestSyncInsertsNewCustomer(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	sync := NewSyncService(store)

	invoice := &entity.Invoice{
		AccountID:       accountID,
		CustomerName:    "Sharma Traders",
		CustomerAddress: "12 MG Road",
		CustomerGSTIN:   strptr("29ABCDE1234F1Z5"),
	}
	if err := sync.SyncFromInvoice(ctx, invoice); err != nil {
		t.Fatalf("sync: %v", err)
	}

	customers, err := store.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("get customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("got %d customers, want exactly 1", len(customers))
	}
	c := customers[0]
	if c.Name != "Sharma Traders" || c.Address != "12 MG Road" {
		t.Errorf("customer = %+v, want invoice snapshot fields", c)
	}
	if c.GSTIN == nil || *c.GSTIN != "29ABCDE1234F1Z5" {
		t.Errorf("GSTIN not copied from snapshot")
	}
}

func TestSyncMatchesCustomerCaseInsensitively(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	seedCustomers(t, store, ctx, []entity.Customer{{Name: "sharma traders"}})
	sync := NewSyncService(store)

	invoice := &entity.Invoice{
		AccountID:    accountID,
		CustomerName: "  SHARMA TRADERS ",
	}
	if err := sync.SyncFromInvoice(ctx, invoice); err != nil {
		t.Fatalf("sync: %v", err)
	}

	customers, err := store.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("get customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("got %d customers, want 1 (matched, not duplicated)", len(customers))
	}
}

func TestSyncNeverBlanksExistingFields(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	seedCustomers(t, store, ctx, []entity.Customer{
		{Name: "Sharma Traders", Phone: strptr("9876543210")},
	})
	sync := NewSyncService(store)

	// invoice supplies a tax id but no phone
	invoice := &entity.Invoice{
		AccountID:     accountID,
		CustomerName:  "Sharma Traders",
		CustomerGSTIN: strptr("29ABCDE1234F1Z5"),
	}
	if err := sync.SyncFromInvoice(ctx, invoice); err != nil {
		t.Fatalf("sync: %v", err)
	}

	customers, err := store.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("get customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("got %d customers, want 1", len(customers))
	}
	c := customers[0]
	if c.Phone == nil || *c.Phone != "9876543210" {
		t.Error("existing phone was blanked by an invoice without one")
	}
	if c.GSTIN == nil || *c.GSTIN != "29ABCDE1234F1Z5" {
		t.Error("new GSTIN from the invoice was not applied")
	}
}

func TestSyncInsertsUnknownProductsOnly(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	existingID := uuid.New()
	seedProducts(t, store, ctx, []entity.Product{
		{ID: existingID, Name: "Cement", Unit: "bags", Price: 35000, TaxRate: 28},
	})
	sync := NewSyncService(store)

	newProductID := uuid.New()
	invoice := &entity.Invoice{
		AccountID:    accountID,
		CustomerName: "Sharma Traders",
		Items: []entity.InvoiceItem{
			{ProductID: existingID.String(), Name: "CEMENT", Unit: "bags", Price: 36000, TaxRate: 28},
			{ProductID: newProductID.String(), Name: "Sand", Unit: "ton", Price: 120000, TaxRate: 5},
		},
	}
	if err := sync.SyncFromInvoice(ctx, invoice); err != nil {
		t.Fatalf("sync: %v", err)
	}

	products, err := store.GetProducts(ctx)
	if err != nil {
		t.Fatalf("get products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	byName := make(map[string]entity.Product)
	for _, p := range products {
		byName[p.Name] = p
	}
	// matched name keeps the existing catalog entry untouched
	if byName["Cement"].Price != 35000 {
		t.Errorf("existing product price changed to %d", byName["Cement"].Price)
	}
	// new line keeps its uuid product id
	if byName["Sand"].ID != newProductID {
		t.Errorf("new product id = %s, want the line's id %s", byName["Sand"].ID, newProductID)
	}
}

func TestSyncMintsIDForCustomItems(t *testing.T) {
	store, accountID, ctx := setupStore(t)
	sync := NewSyncService(store)

	invoice := &entity.Invoice{
		AccountID:    accountID,
		CustomerName: "Sharma Traders",
		Items: []entity.InvoiceItem{
			{ProductID: utils.NewCustomItemID(), Name: "Labour Charges", Unit: "unit", Price: 50000, TaxRate: 18},
		},
	}
	if err := sync.SyncFromInvoice(ctx, invoice); err != nil {
		t.Fatalf("sync: %v", err)
	}

	products, err := store.GetProducts(ctx)
	if err != nil {
		t.Fatalf("get products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].ID == uuid.Nil {
		t.Error("custom item product got no id")
	}
	if utils.IsCustomItemID(products[0].ID.String()) {
		t.Error("custom placeholder id leaked into the catalog")
	}
}
