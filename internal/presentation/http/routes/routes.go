package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voltify/evdealer-api/internal/config"
	domainRepo "github.com/voltify/evdealer-api/internal/domain/repository"
	"github.com/voltify/evdealer-api/internal/presentation/http/handler"
	"github.com/voltify/evdealer-api/internal/presentation/http/middleware"
	"github.com/voltify/evdealer-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Receipt *handler.ReceiptHandler
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
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/verify", h.Auth.Verify)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Catalog
	registerCatalogRoutes(protected, h)

	// Cart
	registerCartRoutes(protected, h)

	// Receipts
	registerReceiptRoutes(protected, h, deps)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	catalog := protected.Group("")
	catalog.Use(middleware.RequirePermission("manage-catalog"))
	{
		models := catalog.Group("/models")
		{
			models.GET("", h.Catalog.ListModels)
			models.POST("", h.Catalog.CreateModel)
			models.GET("/:id", h.Catalog.GetModel)
			models.PUT("/:id", h.Catalog.UpdateModel)
			models.DELETE("/:id", h.Catalog.DeleteModel)
		}

		batteries := catalog.Group("/batteries")
		{
			batteries.GET("", h.Catalog.ListBatteries)
			batteries.POST("", h.Catalog.CreateBattery)
			batteries.GET("/:id", h.Catalog.GetBattery)
			batteries.PUT("/:id", h.Catalog.UpdateBattery)
			batteries.DELETE("/:id", h.Catalog.DeleteBattery)
		}

		products := catalog.Group("/products")
		{
			products.GET("", h.Catalog.ListProducts)
			products.POST("", h.Catalog.CreateProduct)
			products.POST("/import", h.Catalog.ImportProducts)
			products.GET("/:id", h.Catalog.GetProduct)
			products.PUT("/:id", h.Catalog.UpdateProduct)
			products.PUT("/:id/quantity", h.Catalog.UpdateQuantity)
			products.DELETE("/:id", h.Catalog.DeleteProduct)
		}
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	cart.Use(middleware.RequirePermission("manage-orders"))
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items", h.Cart.UpdateItem)
		cart.DELETE("/items", h.Cart.RemoveItem)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/receipts")
	receipts.Use(middleware.RequirePermission("manage-receipts"))
	{
		receipts.GET("", h.Receipt.List)
		// Receipt generation uses idempotency middleware to prevent duplicates
		receipts.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Receipt.Generate)
		receipts.POST("/search", h.Receipt.Search)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.PUT("/:id", h.Receipt.Update)
		receipts.DELETE("/:id", h.Receipt.Delete)
	}
}
