package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/quickbill/billing-api/internal/domain/entity"
	"github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
	"github.com/quickbill/billing-api/pkg/email"
	"github.com/quickbill/billing-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	accountRepo repository.AccountRepository
	resetRepo   repository.PasswordResetTokenRepository
	mailer      *email.Sender
	jwtManager  *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo repository.AccountRepository,
	resetRepo repository.PasswordResetTokenRepository,
	mailer *email.Sender,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		resetRepo:   resetRepo,
		mailer:      mailer,
		jwtManager:  jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Account      *entity.Account
	AccessToken  string
	RefreshToken string
}

// Login authenticates an account and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, account.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RegisterInput represents the registration input
type RegisterInput struct {
	BusinessName string
	Email        string
	Password     string
}

// Register creates a new account with its default business profile
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.Account, error) {
	existing, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		Email:        input.Email,
		Password:     hashedPassword,
		BusinessName: input.BusinessName,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// RefreshToken validates a refresh token and issues a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	accountID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrInvalidToken
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ForgotPassword mints a reset token and mails it to the account owner.
// It always reports success so callers cannot probe which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	account, err := s.accountRepo.GetByEmail(ctx, emailAddr)
	if err != nil || account == nil {
		return nil
	}

	_ = s.resetRepo.DeleteByEmail(ctx, emailAddr)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := &entity.PasswordResetToken{
		Email:     emailAddr,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := s.resetRepo.Create(ctx, resetToken); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(emailAddr, token); err != nil {
		log.Printf("Warning: failed to send reset email to %s: %v", emailAddr, err)
	}
	return nil
}

// ResetPassword sets a new password when the token is valid and unused
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.resetRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if resetToken == nil || !resetToken.IsValid() {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	account, err := s.accountRepo.GetByEmail(ctx, resetToken.Email)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	account.Password = hashedPassword
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}

	if err := s.resetRepo.MarkAsUsed(ctx, token); err != nil {
		return nil
	}
	_ = s.resetRepo.DeleteByEmail(ctx, resetToken.Email)
	return nil
}

// Me returns the authenticated account
func (s *AuthService) Me(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrNotFound
	}
	return account, nil
}
