// Package router wires repositories, services and handlers into the
// gin engine. This is the only place that knows the whole graph.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"bizpos/internal/config"
	"bizpos/internal/handler"
	"bizpos/internal/infra"
	"bizpos/internal/middleware"
	"bizpos/internal/model"
	"bizpos/internal/repository"
	"bizpos/internal/service"
	"bizpos/internal/worker"
)

// New builds the fully wired engine. The returned dispatcher is shared
// with the worker pool started by the caller.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log zerolog.Logger) (*gin.Engine, *worker.Dispatcher) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)
	adjustmentRepo := repository.NewAdjustmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Async email dispatch
	dispatcher := worker.NewDispatcher(rdb, log)

	// Services
	authSvc := service.NewAuthService(
		userRepo,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
		time.Duration(cfg.JWTRefreshHours)*time.Hour,
		log,
	)
	productSvc := service.NewProductService(productRepo, categoryRepo, log)
	adjustmentSvc := service.NewAdjustmentService(adjustmentRepo, productRepo, log)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, log)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo, log)
	supplierSvc := service.NewSupplierService(supplierRepo, log)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo, log)
	expenseSvc := service.NewExpenseService(expenseRepo, log)
	reportSvc := service.NewReportService(reportRepo, saleRepo, productRepo, userRepo, dispatcher, cfg.BusinessName, log)

	// Handlers
	receipt := infra.NewReceiptPDF(cfg.BusinessName)
	healthH := handler.NewHealthHandler(db, rdb)
	authH := handler.NewAuthHandler(authSvc, log)
	productH := handler.NewProductHandler(productSvc, adjustmentSvc, rdb, log)
	categoryH := handler.NewCategoryHandler(productSvc, log)
	customerH := handler.NewCustomerHandler(customerSvc, log)
	saleH := handler.NewSaleHandler(saleSvc, saleRepo, receipt, log)
	supplierH := handler.NewSupplierHandler(supplierSvc, log)
	purchaseH := handler.NewPurchaseOrderHandler(purchaseSvc, log)
	adjustmentH := handler.NewAdjustmentHandler(adjustmentSvc, log)
	expenseH := handler.NewExpenseHandler(expenseSvc, log)
	reportH := handler.NewReportHandler(reportSvc, log)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.Env),
		middleware.RateLimit(rate.Limit(50), 100),
	)

	r.GET("/health", healthH.Check)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", middleware.LoginRateLimit(), authH.Login)
	auth.POST("/refresh", middleware.LoginRateLimit(), authH.Refresh)

	// Everything below requires a valid access token.
	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(authSvc))

	authed.GET("/auth/me", authH.Me)

	// Catalog reads are open to any authenticated employee.
	authed.GET("/products", productH.List)
	authed.GET("/products/:id", productH.Get)
	authed.GET("/categories", categoryH.List)

	// POS surface — cashiers and owners.
	selling := authed.Group("")
	selling.Use(middleware.Require(model.CanSell))
	selling.GET("/products/barcode/:code", productH.LookupBarcode)
	selling.POST("/sales", saleH.Record)
	selling.GET("/sales/mine", saleH.ListMine)
	selling.GET("/sales/:id", saleH.Get)
	selling.GET("/sales/:id/receipt", saleH.Receipt)
	selling.GET("/sales/:id/receipt.pdf", saleH.ReceiptPDF)
	selling.POST("/customers", customerH.Create)
	selling.GET("/customers", customerH.List)
	selling.GET("/customers/:id", customerH.Get)
	selling.PUT("/customers/:id", customerH.Update)

	// Stock surface — stock managers and owners.
	stock := authed.Group("")
	stock.Use(middleware.Require(model.CanManageStock))
	stock.POST("/products", productH.Create)
	stock.PUT("/products/:id", productH.Update)
	stock.DELETE("/products/:id", productH.Deactivate)
	stock.POST("/products/:id/reactivate", productH.Reactivate)
	stock.POST("/products/:id/add-stock", productH.AddStock)
	stock.POST("/categories", categoryH.Create)
	stock.PUT("/categories/:id", categoryH.Update)
	stock.DELETE("/categories/:id", categoryH.Delete)
	stock.POST("/suppliers", supplierH.Create)
	stock.GET("/suppliers", supplierH.List)
	stock.GET("/suppliers/:id", supplierH.Get)
	stock.PUT("/suppliers/:id", supplierH.Update)
	stock.DELETE("/suppliers/:id", supplierH.Delete)
	stock.POST("/purchase-orders", purchaseH.Create)
	stock.GET("/purchase-orders", purchaseH.List)
	stock.GET("/purchase-orders/:id", purchaseH.Get)
	stock.PATCH("/purchase-orders/:id/status", purchaseH.UpdateStatus)
	stock.POST("/purchase-orders/:id/receive", purchaseH.Receive)
	stock.POST("/stock-adjustments", adjustmentH.Create)
	stock.GET("/stock-adjustments", adjustmentH.List)
	stock.GET("/reports/low-stock", reportH.LowStock)

	// Owner surface — reports, expenses, accounts, voiding sales.
	owner := authed.Group("")
	owner.Use(middleware.Require(model.IsOwner))
	owner.GET("/sales", saleH.List)
	owner.DELETE("/sales/:id", saleH.Void)
	owner.GET("/reports/sales", reportH.Sales)
	owner.GET("/reports/sales/export", reportH.ExportSales)
	owner.GET("/reports/expenses", reportH.Expenses)
	owner.GET("/reports/performance", reportH.Performance)
	owner.POST("/expense-categories", expenseH.CreateCategory)
	owner.GET("/expense-categories", expenseH.ListCategories)
	owner.DELETE("/expense-categories/:id", expenseH.DeleteCategory)
	owner.POST("/expenses", expenseH.Create)
	owner.GET("/expenses", expenseH.List)
	owner.POST("/users", authH.CreateUser)
	owner.GET("/users", authH.ListUsers)
	owner.GET("/users/:id", authH.GetUser)
	owner.PUT("/users/:id", authH.UpdateUser)
	owner.DELETE("/users/:id", authH.DeactivateUser)
	owner.POST("/users/:id/reactivate", authH.ReactivateUser)

	return r, dispatcher
}
