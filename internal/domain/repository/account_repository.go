package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	// Create persists the account together with its default profile.
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
}
