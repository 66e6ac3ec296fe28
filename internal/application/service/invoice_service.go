package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/billing"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/enum"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
	"github.com/quickbill/billing-api/pkg/pagination"
	"github.com/quickbill/billing-api/pkg/utils"
)

// InvoiceService orchestrates the invoice lifecycle: validate the draft,
// recompute totals, allocate the number, freeze the snapshot, commit, then
// reconcile the catalogs.
type InvoiceService struct {
	store repository.EntityStore
	sync  *SyncService

	// mu guards saveLocks; each account's saves are serialized so two
	// concurrent saves cannot allocate the same invoice number.
	mu        sync.Mutex
	saveLocks map[uuid.UUID]*sync.Mutex
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(store repository.EntityStore, syncService *SyncService) *InvoiceService {
	return &InvoiceService{
		store:     store,
		sync:      syncService,
		saveLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// SaveOutput is the result of a successful save
type SaveOutput struct {
	Invoice *entity.Invoice
	// SyncWarning is set when the invoice committed but catalog
	// reconciliation failed. It never blocks the save.
	SyncWarning string
}

// NewDraft builds a fresh draft prefilled from the account's last invoice
func (s *InvoiceService) NewDraft(ctx context.Context) (*InvoiceDraft, error) {
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	last, err := s.store.GetLastInvoice(ctx)
	if err != nil {
		return nil, err
	}
	return NewDraft(profile, last), nil
}

// Save validates and commits a draft. On validation failure nothing is
// persisted. On persistence failure the invoice number is not consumed and
// the draft is untouched, so the caller can retry the same save.
func (s *InvoiceService) Save(ctx context.Context, accountID uuid.UUID, draft *InvoiceDraft) (*SaveOutput, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to load profile")
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}

	invoice := freeze(draft, profile)
	if err := s.store.AppendInvoice(ctx, invoice); err != nil {
		log.Printf("invoice append failed for account %s: %v", accountID, err)
		return nil, apperror.NewPersistenceError("Failed to save invoice, please retry")
	}

	out := &SaveOutput{Invoice: invoice}
	if err := s.sync.SyncFromInvoice(ctx, invoice); err != nil {
		log.Printf("catalog sync failed for invoice %s: %v", invoice.InvoiceNumber, err)
		out.SyncWarning = "Invoice saved, but catalog update failed: " + err.Error()
	}
	return out, nil
}

// List returns the account's invoices newest first, paginated in memory
// over the already account-scoped result
func (s *InvoiceService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, err := s.store.GetInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(invoices, params), nil
}

// Get returns a committed invoice for viewing or reprint. The stored
// snapshot is returned as-is, never recomputed.
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetLast returns the most recently committed invoice, or nil when the
// account has none
func (s *InvoiceService) GetLast(ctx context.Context) (*entity.Invoice, error) {
	return s.store.GetLastInvoice(ctx)
}

// ResetHistory deletes every invoice and restarts numbering at 1
func (s *InvoiceService) ResetHistory(ctx context.Context, accountID uuid.UUID) error {
	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.ResetInvoiceHistory(ctx); err != nil {
		return apperror.NewPersistenceError("Failed to reset invoice history")
	}
	return nil
}

func (s *InvoiceService) accountLock(accountID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.saveLocks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.saveLocks[accountID] = lock
	}
	return lock
}

// validateDraft checks the save invariants and collects every violation
// into one field-scoped validation error
func validateDraft(draft *InvoiceDraft) error {
	var fieldErrors []apperror.FieldError

	if draft.CustomerName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "required"})
	}
	if len(draft.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for _, item := range draft.Items {
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "items",
				Message: "quantity must be positive for " + item.Name,
			})
		}
	}
	if draft.CustomerGSTIN != "" && !utils.IsValidGSTIN(draft.CustomerGSTIN) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_gstin", Message: "invalid GSTIN format"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// freeze recomputes the draft's totals from scratch and produces the
// immutable invoice record, numbered from the profile's counter
func freeze(draft *InvoiceDraft, profile *entity.Profile) *entity.Invoice {
	issueDate := draft.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	invoice := &entity.Invoice{
		InvoiceNumber:   utils.FormatInvoiceNumber(profile.InvoicePrefix, profile.NextNumber),
		IssueDate:       issueDate,
		CustomerName:    draft.CustomerName,
		CustomerAddress: draft.CustomerAddress,
		TaxEnabled:      draft.TaxEnabled,
		IsTaxInclusive:  draft.IsTaxInclusive,
		CurrencySymbol:  profile.CurrencySymbol,
		Status:          enum.InvoiceStatusPaid,
	}
	if draft.CustomerGSTIN != "" {
		gstin := draft.CustomerGSTIN
		invoice.CustomerGSTIN = &gstin
	}
	if draft.CustomerPhone != "" {
		phone := draft.CustomerPhone
		invoice.CustomerPhone = &phone
	}

	inputs := make([]billing.LineInput, len(draft.Items))
	for i, item := range draft.Items {
		line := billing.ComputeLine(item.Price, item.Quantity, item.TaxRate, draft.TaxEnabled, draft.IsTaxInclusive)
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			Price:     item.Price,
			TaxRate:   item.TaxRate,
			Total:     line.Total,
			Position:  i,
		})
		inputs[i] = billing.LineInput{Price: item.Price, Quantity: item.Quantity, TaxRate: item.TaxRate}
	}

	totals := billing.ComputeAggregate(inputs, draft.TaxEnabled, draft.IsTaxInclusive)
	invoice.SubTotal = totals.SubTotal
	invoice.TotalTax = totals.TotalTax
	invoice.GrandTotal = totals.GrandTotal
	return invoice
}
