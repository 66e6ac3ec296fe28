package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

// ErrNoAccountContext is returned by write operations when no account ID
// has been attached to the context. Read operations fail safe through
// AccountScope instead.
var ErrNoAccountContext = errors.New("no account ID in context")

type entityStore struct {
	db *gorm.DB
}

// NewEntityStore creates the GORM-backed entity store
func NewEntityStore(db *gorm.DB) repository.EntityStore {
	return &entityStore{db: db}
}

func (s *entityStore) GetProfile(ctx context.Context) (*entity.Profile, error) {
	var profile entity.Profile
	err := s.db.WithContext(ctx).Scopes(AccountScope(ctx)).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *entityStore) SaveProfile(ctx context.Context, profile *entity.Profile) error {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return ErrNoAccountContext
	}
	profile.AccountID = accountID
	return s.db.WithContext(ctx).Save(profile).Error
}

func (s *entityStore) GetProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := s.db.WithContext(ctx).
		Scopes(AccountScope(ctx)).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// SaveProducts replaces the account's product collection. The delete is
// unscoped so re-saved names do not collide with soft-deleted rows.
func (s *entityStore) SaveProducts(ctx context.Context, products []entity.Product) error {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return ErrNoAccountContext
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("account_id = ?", accountID).Delete(&entity.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		for i := range products {
			products[i].AccountID = accountID
		}
		return tx.Create(&products).Error
	})
}

func (s *entityStore) GetCustomers(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := s.db.WithContext(ctx).
		Scopes(AccountScope(ctx)).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (s *entityStore) SaveCustomers(ctx context.Context, customers []entity.Customer) error {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return ErrNoAccountContext
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("account_id = ?", accountID).Delete(&entity.Customer{}).Error; err != nil {
			return err
		}
		if len(customers) == 0 {
			return nil
		}
		for i := range customers {
			customers[i].AccountID = accountID
		}
		return tx.Create(&customers).Error
	})
}

func (s *entityStore) GetInvoices(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := s.db.WithContext(ctx).
		Scopes(AccountScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.position ASC")
		}).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (s *entityStore) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := s.db.WithContext(ctx).
		Scopes(AccountScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.position ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *entityStore) GetLastInvoice(ctx context.Context) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := s.db.WithContext(ctx).
		Scopes(AccountScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.position ASC")
		}).
		Where("is_last = ?", true).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// AppendInvoice commits the invoice, moves the is_last marker to it and
// advances the profile's invoice counter. All three writes succeed or
// fail together so a failed save leaves no partial state behind.
func (s *entityStore) AppendInvoice(ctx context.Context, invoice *entity.Invoice) error {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return ErrNoAccountContext
	}
	invoice.AccountID = accountID
	invoice.IsLast = true
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Invoice{}).
			Where("account_id = ? AND is_last = ?", accountID, true).
			Update("is_last", false).Error; err != nil {
			return err
		}
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Profile{}).
			Where("account_id = ?", accountID).
			Update("next_number", gorm.Expr("next_number + 1")).Error
	})
}

func (s *entityStore) ResetInvoiceHistory(ctx context.Context) error {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return ErrNoAccountContext
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id IN (?)",
			tx.Model(&entity.Invoice{}).Select("id").Where("account_id = ?", accountID),
		).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", accountID).Delete(&entity.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Profile{}).
			Where("account_id = ?", accountID).
			Update("next_number", 1).Error
	})
}
