package service

import (
	"context"
	"testing"
	"time"

	"github.com/quickbill/billing-api/internal/domain/entity"
	infraRepo "github.com/quickbill/billing-api/internal/infrastructure/repository"
	"github.com/quickbill/billing-api/pkg/apperror"
	"github.com/quickbill/billing-api/pkg/email"
	"github.com/quickbill/billing-api/pkg/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:auth_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Account{},
		&entity.Profile{},
		&entity.PasswordResetToken{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mailer := email.NewSender(email.Config{
		SMTPHost:    "127.0.0.1",
		SMTPPort:    0,
		FrontendURL: "http://localhost:5173",
		AppName:     "billing-api",
	})
	svc := NewAuthService(
		infraRepo.NewAccountRepository(db),
		infraRepo.NewPasswordResetTokenRepository(db),
		mailer,
		utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour),
	)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, &RegisterInput{
		BusinessName: "Sharma Hardware",
		Email:        "owner@example.com",
		Password:     "sekret-123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Password == "sekret-123" {
		t.Error("password stored in plain text")
	}

	if _, err := svc.Register(ctx, &RegisterInput{
		BusinessName: "Other",
		Email:        "owner@example.com",
		Password:     "whatever1",
	}); err == nil {
		t.Error("duplicate email accepted")
	}

	if _, err := svc.Login(ctx, &LoginInput{Email: "owner@example.com", Password: "wrong"}); err != apperror.ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	out, err := svc.Login(ctx, &LoginInput{Email: "owner@example.com", Password: "sekret-123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("token pair not issued")
	}
}

func TestResetPasswordWithValidToken(t *testing.T) {
	svc, db := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		BusinessName: "Sharma Hardware",
		Email:        "owner@example.com",
		Password:     "old-password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token := &entity.PasswordResetToken{
		Email:     "owner@example.com",
		Token:     "valid-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := infraRepo.NewPasswordResetTokenRepository(db).Create(ctx, token); err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := svc.ResetPassword(ctx, "valid-token", "new-password"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginInput{Email: "owner@example.com", Password: "old-password"}); err == nil {
		t.Error("old password still works")
	}
	if _, err := svc.Login(ctx, &LoginInput{Email: "owner@example.com", Password: "new-password"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	if err := svc.ResetPassword(ctx, "valid-token", "another-password"); err == nil {
		t.Error("token reuse accepted")
	}
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	svc, db := setupAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		BusinessName: "Sharma Hardware",
		Email:        "owner@example.com",
		Password:     "old-password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token := &entity.PasswordResetToken{
		Email:     "owner@example.com",
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := infraRepo.NewPasswordResetTokenRepository(db).Create(ctx, token); err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := svc.ResetPassword(ctx, "stale-token", "new-password"); err == nil {
		t.Error("expired token accepted")
	}
	if err := svc.ResetPassword(ctx, "no-such-token", "new-password"); err == nil {
		t.Error("unknown token accepted")
	}
}

func TestForgotPasswordNeverRevealsAccounts(t *testing.T) {
	svc, _ := setupAuthService(t)

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Errorf("unknown email should not error: %v", err)
	}
}
