package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	infraRepo "github.com/quickbill/billing-api/internal/infrastructure/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupStore opens an in-memory database with a seeded account and returns
// the entity store plus a context scoped to that account.
func setupStore(t *testing.T) (repository.EntityStore, uuid.UUID, context.Context) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:svc_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Account{},
		&entity.Profile{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	account := &entity.Account{Email: "owner@example.com", Password: "hash", BusinessName: "Test Traders"}
	if err := infraRepo.NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	store := infraRepo.NewEntityStore(db)
	ctx := infraRepo.WithAccount(context.Background(), account.ID)
	return store, account.ID, ctx
}

func seedProducts(t *testing.T, store repository.EntityStore, ctx context.Context, products []entity.Product) {
	t.Helper()
	for i := range products {
		if products[i].ID == uuid.Nil {
			products[i].ID = uuid.New()
		}
	}
	if err := store.SaveProducts(ctx, products); err != nil {
		t.Fatalf("seed products: %v", err)
	}
}

func seedCustomers(t *testing.T, store repository.EntityStore, ctx context.Context, customers []entity.Customer) {
	t.Helper()
	for i := range customers {
		if customers[i].ID == uuid.Nil {
			customers[i].ID = uuid.New()
		}
	}
	if err := store.SaveCustomers(ctx, customers); err != nil {
		t.Fatalf("seed customers: %v", err)
	}
}

func strptr(s string) *string { return &s }
