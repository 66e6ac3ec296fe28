package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
)

// EntityStore defines account-scoped persistence for billing data. Every
// method resolves the account from the context; callers must attach one
// before invoking a method or the call fails.
//
// SaveProducts and SaveCustomers replace the account's full collection
// atomically. AppendInvoice commits an invoice, marks it as the account's
// most recent and advances the profile's next invoice number in a single
// transaction.
type EntityStore interface {
	GetProfile(ctx context.Context) (*entity.Profile, error)
	SaveProfile(ctx context.Context, profile *entity.Profile) error

	GetProducts(ctx context.Context) ([]entity.Product, error)
	SaveProducts(ctx context.Context, products []entity.Product) error

	GetCustomers(ctx context.Context) ([]entity.Customer, error)
	SaveCustomers(ctx context.Context, customers []entity.Customer) error

	GetInvoices(ctx context.Context) ([]entity.Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetLastInvoice(ctx context.Context) (*entity.Invoice, error)
	AppendInvoice(ctx context.Context, invoice *entity.Invoice) error
	// ResetInvoiceHistory deletes all invoices for the account and resets
	// the profile's invoice counter back to 1.
	ResetInvoiceHistory(ctx context.Context) error
}
