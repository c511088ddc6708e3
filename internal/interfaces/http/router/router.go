package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockbook/backend/internal/infrastructure/auth"
	"github.com/stockbook/backend/internal/infrastructure/logger"
	"github.com/stockbook/backend/internal/interfaces/http/handler"
	"github.com/stockbook/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	System          *handler.SystemHandler
	Auth            *handler.AuthHandler
	Products        *handler.ProductHandler
	Categories      *handler.CategoryHandler
	Customers       *handler.CustomerHandler
	Suppliers       *handler.SupplierHandler
	SalesOrders     *handler.SalesOrderHandler
	PurchaseOrders  *handler.PurchaseOrderHandler
	SalesReturns    *handler.SalesReturnHandler
	PurchaseReturns *handler.PurchaseReturnHandler
	Inventory       *handler.InventoryHandler
	Notifications   *handler.NotificationHandler
}

// Config holds router dependencies
type Config struct {
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Handlers   Handlers
}

// New builds the gin engine with middleware and all API routes. The health
// endpoint is public; everything under /api/v1 requires a valid token.
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
	)

	engine.GET("/health", cfg.Handlers.System.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(middleware.AuthConfig{
		JWTService: cfg.JWTService,
		Blacklist:  cfg.Blacklist,
		Logger:     cfg.Logger,
	}))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/logout", cfg.Handlers.Auth.Logout)
	}

	catalog := api.Group("/catalog")
	{
		products := catalog.Group("/products")
		{
			products.POST("", cfg.Handlers.Products.Create)
			products.GET("", cfg.Handlers.Products.List)
			products.GET("/:id", cfg.Handlers.Products.Get)
			products.PUT("/:id", cfg.Handlers.Products.Update)
			products.DELETE("/:id", cfg.Handlers.Products.Delete)
		}

		categories := catalog.Group("/categories")
		{
			categories.POST("", cfg.Handlers.Categories.Create)
			categories.GET("", cfg.Handlers.Categories.List)
			categories.GET("/:id", cfg.Handlers.Categories.Get)
			categories.PUT("/:id", cfg.Handlers.Categories.Update)
			categories.DELETE("/:id", cfg.Handlers.Categories.Delete)
		}
	}

	partner := api.Group("/partner")
	{
		customers := partner.Group("/customers")
		{
			customers.POST("", cfg.Handlers.Customers.Create)
			customers.GET("", cfg.Handlers.Customers.List)
			customers.GET("/:id", cfg.Handlers.Customers.Get)
			customers.PUT("/:id", cfg.Handlers.Customers.Update)
			customers.DELETE("/:id", cfg.Handlers.Customers.Delete)
		}

		suppliers := partner.Group("/suppliers")
		{
			suppliers.POST("", cfg.Handlers.Suppliers.Create)
			suppliers.GET("", cfg.Handlers.Suppliers.List)
			suppliers.GET("/:id", cfg.Handlers.Suppliers.Get)
			suppliers.PUT("/:id", cfg.Handlers.Suppliers.Update)
			suppliers.DELETE("/:id", cfg.Handlers.Suppliers.Delete)
		}
	}

	trade := api.Group("/trade")
	{
		salesOrders := trade.Group("/sales-orders")
		{
			salesOrders.POST("", cfg.Handlers.SalesOrders.Create)
			salesOrders.GET("", cfg.Handlers.SalesOrders.List)
			salesOrders.GET("/:id", cfg.Handlers.SalesOrders.Get)
			salesOrders.PUT("/:id", cfg.Handlers.SalesOrders.Update)
			salesOrders.DELETE("/:id", cfg.Handlers.SalesOrders.Delete)
		}

		purchaseOrders := trade.Group("/purchase-orders")
		{
			purchaseOrders.POST("", cfg.Handlers.PurchaseOrders.Create)
			purchaseOrders.GET("", cfg.Handlers.PurchaseOrders.List)
			purchaseOrders.GET("/:id", cfg.Handlers.PurchaseOrders.Get)
			purchaseOrders.PUT("/:id", cfg.Handlers.PurchaseOrders.Update)
			purchaseOrders.DELETE("/:id", cfg.Handlers.PurchaseOrders.Delete)
		}

		salesReturns := trade.Group("/sales-returns")
		{
			salesReturns.POST("", cfg.Handlers.SalesReturns.Create)
			salesReturns.GET("", cfg.Handlers.SalesReturns.List)
			salesReturns.GET("/:id", cfg.Handlers.SalesReturns.Get)
			salesReturns.PUT("/:id", cfg.Handlers.SalesReturns.Update)
			salesReturns.DELETE("/:id", cfg.Handlers.SalesReturns.Delete)
		}

		purchaseReturns := trade.Group("/purchase-returns")
		{
			purchaseReturns.POST("", cfg.Handlers.PurchaseReturns.Create)
			purchaseReturns.GET("", cfg.Handlers.PurchaseReturns.List)
			purchaseReturns.GET("/:id", cfg.Handlers.PurchaseReturns.Get)
			purchaseReturns.PUT("/:id", cfg.Handlers.PurchaseReturns.Update)
			purchaseReturns.DELETE("/:id", cfg.Handlers.PurchaseReturns.Delete)
		}
	}

	inventory := api.Group("/inventory")
	{
		inventory.POST("/adjustments", cfg.Handlers.Inventory.AdjustStock)
		inventory.POST("/losses", cfg.Handlers.Inventory.RecordLoss)
		inventory.GET("/transactions", cfg.Handlers.Inventory.ListTransactions)
		inventory.GET("/transactions/:id", cfg.Handlers.Inventory.GetTransaction)
		inventory.GET("/products/:id/history", cfg.Handlers.Inventory.ProductHistory)
		inventory.GET("/products/:id/summary", cfg.Handlers.Inventory.StockSummary)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", cfg.Handlers.Notifications.List)
		notifications.POST("/:id/read", cfg.Handlers.Notifications.MarkRead)
	}

	return engine
}
