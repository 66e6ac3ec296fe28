package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/utils"
)

// SyncService reconciles the customer and product catalogs with a freshly
// committed invoice. Matching is by normalized name only, through the same
// utils.NormalizeKey used everywhere, so customer and product matching can
// never diverge.
type SyncService struct {
	store repository.EntityStore
}

// NewSyncService creates a new sync service
func NewSyncService(store repository.EntityStore) *SyncService {
	return &SyncService{store: store}
}

// SyncFromInvoice updates the catalogs from the invoice's snapshots. The
// invoice is already committed when this runs; errors here are warnings for
// the caller to surface and never undo the invoice.
func (s *SyncService) SyncFromInvoice(ctx context.Context, invoice *entity.Invoice) error {
	if err := s.syncCustomer(ctx, invoice); err != nil {
		return fmt.Errorf("customer sync: %w", err)
	}
	if err := s.syncProducts(ctx, invoice); err != nil {
		return fmt.Errorf("product sync: %w", err)
	}
	return nil
}

// syncCustomer updates a matched customer from non-empty snapshot fields, or
// inserts a new one. Existing values are never blanked by an invoice that
// omits them.
func (s *SyncService) syncCustomer(ctx context.Context, invoice *entity.Invoice) error {
	customers, err := s.store.GetCustomers(ctx)
	if err != nil {
		return err
	}

	key := utils.NormalizeKey(invoice.CustomerName)
	matched := false
	for i := range customers {
		if utils.NormalizeKey(customers[i].Name) != key {
			continue
		}
		matched = true
		if invoice.CustomerAddress != "" {
			customers[i].Address = invoice.CustomerAddress
		}
		if invoice.CustomerGSTIN != nil && *invoice.CustomerGSTIN != "" {
			gstin := *invoice.CustomerGSTIN
			customers[i].GSTIN = &gstin
		}
		if invoice.CustomerPhone != nil && *invoice.CustomerPhone != "" {
			phone := *invoice.CustomerPhone
			customers[i].Phone = &phone
		}
		break
	}

	if !matched {
		customer := entity.Customer{
			ID:        utils.NewUUID(),
			AccountID: invoice.AccountID,
			Name:      invoice.CustomerName,
			Address:   invoice.CustomerAddress,
		}
		if invoice.CustomerGSTIN != nil && *invoice.CustomerGSTIN != "" {
			gstin := *invoice.CustomerGSTIN
			customer.GSTIN = &gstin
		}
		if invoice.CustomerPhone != nil && *invoice.CustomerPhone != "" {
			phone := *invoice.CustomerPhone
			customer.Phone = &phone
		}
		customers = append(customers, customer)
	}

	return s.store.SaveCustomers(ctx, customers)
}

// syncProducts inserts a catalog product for every line whose name is not
// already present. Lines referencing an existing catalog product keep their
// id; ad-hoc lines get a fresh one, their placeholder ids never reach the
// catalog.
func (s *SyncService) syncProducts(ctx context.Context, invoice *entity.Invoice) error {
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(products))
	for _, p := range products {
		known[utils.NormalizeKey(p.Name)] = true
	}

	inserted := false
	for _, item := range invoice.Items {
		key := utils.NormalizeKey(item.Name)
		if key == "" || known[key] {
			continue
		}

		id := utils.NewUUID()
		if !utils.IsCustomItemID(item.ProductID) {
			if parsed, err := uuid.Parse(item.ProductID); err == nil {
				id = parsed
			}
		}

		products = append(products, entity.Product{
			ID:        id,
			AccountID: invoice.AccountID,
			Name:      item.Name,
			Unit:      item.Unit,
			Price:     item.Price,
			TaxRate:   item.TaxRate,
		})
		known[key] = true
		inserted = true
	}

	if !inserted {
		return nil
	}
	return s.store.SaveProducts(ctx, products)
}
