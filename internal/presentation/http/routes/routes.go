package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickbill/billing-api/internal/config"
	domainRepo "github.com/quickbill/billing-api/internal/domain/repository"
	"github.com/quickbill/billing-api/internal/presentation/http/handler"
	"github.com/quickbill/billing-api/internal/presentation/http/middleware"
	"github.com/quickbill/billing-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Invoice  *handler.InvoiceHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/forgot-password", h.Auth.ForgotPassword)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-account rate limiter
		rateLimiter := middleware.NewAccountRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		// Replay cached responses for retried mutating requests
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/auth/me", h.Auth.Me)

	// Business profile
	protected.GET("/profile", h.Profile.Get)
	protected.PUT("/profile", h.Profile.Update)

	// Product catalog
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/search", h.Product.Search)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	// Customer catalog
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/search", h.Customer.Search)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Invoices
	invoices := protected.Group("/invoices")
	{
		invoices.POST("", h.Invoice.Save)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/last", h.Invoice.GetLast)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/print", h.Printer.PrintInvoice)
		invoices.DELETE("", h.Invoice.Reset)
	}

	// Thermal printer
	protected.GET("/printer/status", h.Printer.Status)
	protected.POST("/printer/test", h.Printer.TestPrint)

	// Reports
	protected.GET("/reports/invoices.csv", h.Report.InvoicesCSV)
	protected.GET("/reports/summary", h.Report.Summary)
}
