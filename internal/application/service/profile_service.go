package service

import (
	"context"

	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
	"github.com/quickbill/billing-api/pkg/utils"
)

// ProfileService manages the account's business profile
type ProfileService struct {
	store repository.EntityStore
}

// NewProfileService creates a new profile service
func NewProfileService(store repository.EntityStore) *ProfileService {
	return &ProfileService{store: store}
}

// ProfileInput carries the editable fields of the profile. The invoice
// counter is deliberately absent; it only moves through saves and resets.
type ProfileInput struct {
	BusinessName   string
	Address        string
	GSTIN          string
	Phone          string
	Email          string
	State          string
	Currency       string
	CurrencySymbol string

	TaxEnabled     bool
	DefaultTaxRate float64
	IsTaxInclusive bool

	InvoicePrefix  string
	AvailableUnits []string

	SignatureTitle     string
	TermsAndConditions string

	BankName          string
	BankAccountNumber string
	BankIFSC          string
}

// Get returns the account's profile
func (s *ProfileService) Get(ctx context.Context) (*entity.Profile, error) {
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	return profile, nil
}

// Update replaces the editable profile fields, preserving the invoice counter
func (s *ProfileService) Update(ctx context.Context, input *ProfileInput) (*entity.Profile, error) {
	if input.BusinessName == "" {
		return nil, apperror.NewBadRequestError("Business name is required")
	}
	if input.GSTIN != "" && !utils.IsValidGSTIN(input.GSTIN) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "gstin", Message: "invalid GSTIN format"},
		})
	}

	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}

	profile.BusinessName = input.BusinessName
	profile.Address = input.Address
	profile.GSTIN = input.GSTIN
	profile.Phone = input.Phone
	profile.Email = input.Email
	profile.State = input.State
	profile.TaxEnabled = input.TaxEnabled
	profile.DefaultTaxRate = input.DefaultTaxRate
	profile.IsTaxInclusive = input.IsTaxInclusive
	profile.SignatureTitle = input.SignatureTitle
	profile.TermsAndConditions = input.TermsAndConditions
	profile.BankName = input.BankName
	profile.BankAccountNumber = input.BankAccountNumber
	profile.BankIFSC = input.BankIFSC

	if input.Currency != "" {
		profile.Currency = input.Currency
	}
	if input.CurrencySymbol != "" {
		profile.CurrencySymbol = input.CurrencySymbol
	}
	if input.InvoicePrefix != "" {
		profile.InvoicePrefix = input.InvoicePrefix
	}
	if len(input.AvailableUnits) > 0 {
		profile.AvailableUnits = entity.StringSlice(input.AvailableUnits)
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, apperror.NewPersistenceError("Failed to save profile")
	}
	return profile, nil
}
