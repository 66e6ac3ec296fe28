package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
	"github.com/quickbill/billing-api/pkg/pagination"
	"github.com/quickbill/billing-api/pkg/utils"
)

// maxCustomerSearchResults caps the customer suggestion dropdown
const maxCustomerSearchResults = 5

// CustomerService manages the account's customer catalog
type CustomerService struct {
	store repository.EntityStore
}

// NewCustomerService creates a new customer service
func NewCustomerService(store repository.EntityStore) *CustomerService {
	return &CustomerService{store: store}
}

// CustomerInput carries the editable fields of a customer
type CustomerInput struct {
	Name    string
	Address string
	GSTIN   string
	Phone   string
}

// List returns the catalog paginated, ordered by name
func (s *CustomerService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, err := s.store.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(customers, params), nil
}

// Create adds a customer; names are unique case-insensitively within the account
func (s *CustomerService) Create(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if input.GSTIN != "" && !utils.IsValidGSTIN(input.GSTIN) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "gstin", Message: "invalid GSTIN format"},
		})
	}

	customers, err := s.store.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}

	key := utils.NormalizeKey(input.Name)
	for _, c := range customers {
		if utils.NormalizeKey(c.Name) == key {
			return nil, apperror.NewConflictError("Customer already exists")
		}
	}

	customer := entity.Customer{
		ID:      utils.NewUUID(),
		Name:    input.Name,
		Address: input.Address,
	}
	if input.GSTIN != "" {
		gstin := input.GSTIN
		customer.GSTIN = &gstin
	}
	if input.Phone != "" {
		phone := input.Phone
		customer.Phone = &phone
	}

	customers = append(customers, customer)
	if err := s.store.SaveCustomers(ctx, customers); err != nil {
		return nil, apperror.NewPersistenceError("Failed to save customers")
	}
	return &customer, nil
}

// Update replaces the editable fields of the customer with the given id
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if input.GSTIN != "" && !utils.IsValidGSTIN(input.GSTIN) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "gstin", Message: "invalid GSTIN format"},
		})
	}

	customers, err := s.store.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}

	key := utils.NormalizeKey(input.Name)
	idx := -1
	for i, c := range customers {
		if c.ID == id {
			idx = i
			continue
		}
		if utils.NormalizeKey(c.Name) == key {
			return nil, apperror.NewConflictError("Another customer already uses this name")
		}
	}
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Customer")
	}

	customers[idx].Name = input.Name
	customers[idx].Address = input.Address
	customers[idx].GSTIN = nil
	customers[idx].Phone = nil
	if input.GSTIN != "" {
		gstin := input.GSTIN
		customers[idx].GSTIN = &gstin
	}
	if input.Phone != "" {
		phone := input.Phone
		customers[idx].Phone = &phone
	}

	if err := s.store.SaveCustomers(ctx, customers); err != nil {
		return nil, apperror.NewPersistenceError("Failed to save customers")
	}
	return &customers[idx], nil
}

// Delete removes the customer with the given id from the catalog
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	customers, err := s.store.GetCustomers(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range customers {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.NewNotFoundError("Customer")
	}

	customers = append(customers[:idx], customers[idx+1:]...)
	if err := s.store.SaveCustomers(ctx, customers); err != nil {
		return apperror.NewPersistenceError("Failed to save customers")
	}
	return nil
}

// Search returns customers whose name contains the query, case-insensitively
func (s *CustomerService) Search(ctx context.Context, query string) ([]entity.Customer, error) {
	customers, err := s.store.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}

	q := utils.NormalizeKey(query)
	if q == "" {
		if len(customers) > maxCustomerSearchResults {
			customers = customers[:maxCustomerSearchResults]
		}
		return customers, nil
	}

	results := make([]entity.Customer, 0, maxCustomerSearchResults)
	for _, c := range customers {
		if strings.Contains(utils.NormalizeKey(c.Name), q) {
			results = append(results, c)
			if len(results) == maxCustomerSearchResults {
				break
			}
		}
	}
	return results, nil
}
