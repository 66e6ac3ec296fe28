package repository

import (
	"context"

	"github.com/quickbill/billing-api/internal/domain/entity"
)

// PasswordResetTokenRepository stores single-use password reset tokens.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error

	// GetByToken returns the token or nil when it does not exist.
	GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)

	MarkAsUsed(ctx context.Context, token string) error

	// DeleteByEmail removes every token issued for an email address.
	DeleteByEmail(ctx context.Context, email string) error

	// DeleteExpired removes tokens past their expiry.
	DeleteExpired(ctx context.Context) error
}
