package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// AccountIDKey is the context key for the account ID
const AccountIDKey ctxKey = "account_id"

// AccountScope returns a GORM scope that filters by account
// This should be applied to all queries for account-scoped entities
func AccountScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		accountID, ok := ctx.Value(AccountIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if account context missing
			// This prevents accidental cross-account data access
			return db.Where("1 = 0")
		}
		return db.Where("account_id = ?", accountID)
	}
}

// WithAccount adds account ID to context
func WithAccount(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, AccountIDKey, accountID)
}

// GetAccountID extracts account ID from context
func GetAccountID(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(uuid.UUID)
	return accountID, ok
}
