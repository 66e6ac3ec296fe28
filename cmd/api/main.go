package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/quickbill/billing-api/internal/application/service"
	"github.com/quickbill/billing-api/internal/config"
	"github.com/quickbill/billing-api/internal/infrastructure/database"
	"github.com/quickbill/billing-api/internal/infrastructure/repository"
	"github.com/quickbill/billing-api/internal/presentation/http/handler"
	"github.com/quickbill/billing-api/internal/presentation/http/routes"
	"github.com/quickbill/billing-api/pkg/email"
	"github.com/quickbill/billing-api/pkg/printer"
	"github.com/quickbill/billing-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	entityStore := repository.NewEntityStore(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	resetTokenRepo := repository.NewPasswordResetTokenRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// Transactional mail for password resets
	mailer := email.NewSender(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
		AppName:      cfg.App.Name,
	})

	// Thermal printer (no-op when PRINTER_TYPE=none)
	receiptPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.Device, cfg.Printer.Address)
	if err != nil {
		log.Fatalf("Failed to configure printer: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(accountRepo, resetTokenRepo, mailer, jwtManager)
	syncService := service.NewSyncService(entityStore)
	invoiceService := service.NewInvoiceService(entityStore, syncService)
	productService := service.NewProductService(entityStore)
	customerService := service.NewCustomerService(entityStore)
	profileService := service.NewProfileService(entityStore)
	reportService := service.NewReportService(entityStore)
	summaryService := service.NewSummaryService(summaryRepo)
	printerService := service.NewPrinterService(receiptPrinter, entityStore, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Profile:  handler.NewProfileHandler(profileService),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Invoice:  handler.NewInvoiceHandler(invoiceService, profileService),
		Report:   handler.NewReportHandler(reportService, summaryService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup router
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	addr := ":" + cfg.App.Port
	log.Printf("Starting %s on %s (env: %s, db: %s)", cfg.App.Name, addr, cfg.App.Env, cfg.Database.Driver)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
