package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/stockbook/backend/internal/application/catalog"
	inventoryapp "github.com/stockbook/backend/internal/application/inventory"
	partnerapp "github.com/stockbook/backend/internal/application/partner"
	tradeapp "github.com/stockbook/backend/internal/application/trade"
	"github.com/stockbook/backend/internal/infrastructure/auth"
	"github.com/stockbook/backend/internal/infrastructure/config"
	"github.com/stockbook/backend/internal/infrastructure/logger"
	"github.com/stockbook/backend/internal/infrastructure/notification"
	"github.com/stockbook/backend/internal/infrastructure/persistence"
	"github.com/stockbook/backend/internal/interfaces/http/handler"
	"github.com/stockbook/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stockbook backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist backed by redis when available, in-memory otherwise
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Transaction scopes
	tradeScope := persistence.NewGormTransactionScope(db)
	inventoryScope := tradeScope.InventoryScope()

	// Low-stock alerting
	var notifier inventoryapp.Notifier
	if cfg.Alert.Enabled() {
		notifier = notification.NewEmailNotifier(cfg.Alert)
		log.Info("Email alerts enabled", zap.String("to", cfg.Alert.To))
	}
	alerter := inventoryapp.NewStockAlerter(inventoryScope, notificationRepo, notifier, log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	notificationService := inventoryapp.NewNotificationService(notificationRepo)

	inventoryService := inventoryapp.NewInventoryService(inventoryScope)
	inventoryService.SetStockAlerter(alerter)

	salesOrderService := tradeapp.NewSalesOrderService(tradeScope)
	salesOrderService.SetStockAlerter(alerter)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(tradeScope)
	purchaseOrderService.SetStockAlerter(alerter)
	salesReturnService := tradeapp.NewSalesReturnService(tradeScope)
	salesReturnService.SetStockAlerter(alerter)
	purchaseReturnService := tradeapp.NewPurchaseReturnService(tradeScope)
	purchaseReturnService.SetStockAlerter(alerter)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		Logger:     log,
		JWTService: jwtService,
		Blacklist:  blacklist,
		Handlers: router.Handlers{
			System:          handler.NewSystemHandler(db),
			Auth:            handler.NewAuthHandler(blacklist),
			Products:        handler.NewProductHandler(productService),
			Categories:      handler.NewCategoryHandler(categoryService),
			Customers:       handler.NewCustomerHandler(customerService),
			Suppliers:       handler.NewSupplierHandler(supplierService),
			SalesOrders:     handler.NewSalesOrderHandler(salesOrderService),
			PurchaseOrders:  handler.NewPurchaseOrderHandler(purchaseOrderService),
			SalesReturns:    handler.NewSalesReturnHandler(salesReturnService),
			PurchaseReturns: handler.NewPurchaseReturnHandler(purchaseReturnService),
			Inventory:       handler.NewInventoryHandler(inventoryService),
			Notifications:   handler.NewNotificationHandler(notificationService),
		},
	})
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
