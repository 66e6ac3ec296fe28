package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
	"github.com/quickbill/billing-api/pkg/pagination"
	"github.com/quickbill/billing-api/pkg/utils"
)

// maxProductSearchResults caps the suggestion dropdown on the invoice form
const maxProductSearchResults = 6

// ProductService manages the account's product catalog
type ProductService struct {
	store repository.EntityStore
}

// NewProductService creates a new product service
func NewProductService(store repository.EntityStore) *ProductService {
	return &ProductService{store: store}
}

// ProductInput carries the editable fields of a product
type ProductInput struct {
	Name    string
	Unit    string
	Price   int64 // Paise
	TaxRate float64
	HSNCode string
}

// List returns the catalog paginated, ordered by name
func (s *ProductService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(products, params), nil
}

// Create adds a product; names are unique case-insensitively within the account
func (s *ProductService) Create(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	key := utils.NormalizeKey(input.Name)
	for _, p := range products {
		if utils.NormalizeKey(p.Name) == key {
			return nil, apperror.NewConflictError("Product already exists")
		}
	}

	product := entity.Product{
		ID:      utils.NewUUID(),
		Name:    input.Name,
		Unit:    input.Unit,
		Price:   input.Price,
		TaxRate: input.TaxRate,
	}
	if product.Unit == "" {
		product.Unit = "unit"
	}
	if input.HSNCode != "" {
		hsn := input.HSNCode
		product.HSNCode = &hsn
	}

	products = append(products, product)
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return nil, apperror.NewPersistenceError("Failed to save products")
	}
	return &product, nil
}

// Update replaces the editable fields of the product with the given id
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	key := utils.NormalizeKey(input.Name)
	idx := -1
	for i, p := range products {
		if p.ID == id {
			idx = i
			continue
		}
		if utils.NormalizeKey(p.Name) == key {
			return nil, apperror.NewConflictError("Another product already uses this name")
		}
	}
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Product")
	}

	products[idx].Name = input.Name
	products[idx].Unit = input.Unit
	products[idx].Price = input.Price
	products[idx].TaxRate = input.TaxRate
	products[idx].HSNCode = nil
	if input.HSNCode != "" {
		hsn := input.HSNCode
		products[idx].HSNCode = &hsn
	}

	if err := s.store.SaveProducts(ctx, products); err != nil {
		return nil, apperror.NewPersistenceError("Failed to save products")
	}
	return &products[idx], nil
}

// Delete removes the product with the given id from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.NewNotFoundError("Product")
	}

	products = append(products[:idx], products[idx+1:]...)
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return apperror.NewPersistenceError("Failed to save products")
	}
	return nil
}

// Search ranks catalog products against the query for the invoice form's
// suggestion list. Exact and prefix name matches rank first, then substring
// matches, then in-order character matches with a gap penalty.
func (s *ProductService) Search(ctx context.Context, query string) ([]entity.Product, error) {
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	q := utils.NormalizeKey(query)
	if q == "" {
		if len(products) > maxProductSearchResults {
			products = products[:maxProductSearchResults]
		}
		return products, nil
	}

	type scored struct {
		product entity.Product
		score   int
	}
	var matches []scored
	for _, p := range products {
		if sc := matchScore(q, utils.NormalizeKey(p.Name)); sc > 0 {
			matches = append(matches, scored{product: p, score: sc})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	results := make([]entity.Product, 0, maxProductSearchResults)
	for _, m := range matches {
		results = append(results, m.product)
		if len(results) == maxProductSearchResults {
			break
		}
	}
	return results, nil
}

// matchScore rates how well the normalized query matches the normalized
// name; 0 means no match
func matchScore(query, name string) int {
	switch {
	case name == query:
		return 100
	case strings.HasPrefix(name, query):
		return 80
	case strings.Contains(name, query):
		return 60
	}
	return fuzzyScore(query, name)
}

// fuzzyScore accepts the query as an in-order subsequence of the name,
// charging one point per gap between consecutive matched characters
func fuzzyScore(query, name string) int {
	score := 40
	pos := 0
	for _, qc := range query {
		found := -1
		for i, nc := range name[pos:] {
			if nc == qc {
				found = pos + i
				break
			}
		}
		if found < 0 {
			return 0
		}
		if found > pos {
			score -= found - pos
		}
		pos = found + 1
	}
	if score < 1 {
		return 1
	}
	return score
}
