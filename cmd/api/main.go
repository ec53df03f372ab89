package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/shoplite/shoplite/internal/config"
	"github.com/shoplite/shoplite/internal/handler"
	"github.com/shoplite/shoplite/internal/middleware"
	"github.com/shoplite/shoplite/internal/repository"
	"github.com/shoplite/shoplite/internal/service"
	"github.com/shoplite/shoplite/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	// SQLite store
	db, err := store.Open(cfg.DB.Path)
	if err != nil {
		log.Error("open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("ping store", "error", err)
		os.Exit(1)
	}
	log.Info("store ready", "path", cfg.DB.Path)

	// Repositories
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Services
	authSvc := service.NewAuthService(customerRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	catalogSvc := service.NewCatalogService(categoryRepo, productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)
	queryGateway := service.NewQueryGateway(db, cfg.Query.Timeout)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	queryH := handler.NewQueryHandler(queryGateway)
	healthH := handler.NewHealthHandler(db)

	// Router
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)

		v1.GET("/stats", catalogH.Stats)

		categories := v1.Group("/categories")
		categories.GET("", catalogH.ListCategories)
		categories.POST("", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.AdminOnly(), catalogH.CreateCategory)

		products := v1.Group("/products")
		products.GET("", catalogH.ListProducts)
		products.GET("/:id", catalogH.GetProduct)

		adminProducts := products.Group("", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.AdminOnly())
		adminProducts.POST("", catalogH.CreateProduct)
		adminProducts.PUT("/:id", catalogH.UpdateProduct)

		cart := v1.Group("/cart", middleware.AuthMiddleware(cfg.JWT.Secret))
		cart.GET("", cartH.GetCart)
		cart.POST("/items", cartH.AddItem)
		cart.DELETE("", cartH.Clear)

		orders := v1.Group("/orders", middleware.AuthMiddleware(cfg.JWT.Secret))
		orders.POST("", orderH.Checkout)
		orders.GET("", orderH.ListOrders)
		orders.GET("/:id", orderH.GetOrder)

		admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.AdminOnly())
		admin.GET("/orders", orderH.ListAllOrders)
		admin.GET("/analytics/daily-sales", analyticsH.DailySales)
		admin.GET("/analytics/top-products", analyticsH.TopProducts)
		admin.GET("/analytics/category-sales", analyticsH.CategorySales)
		admin.GET("/analytics/summary", analyticsH.Summary)
		admin.POST("/query", queryH.Execute)
		admin.GET("/tables", queryH.Tables)
		admin.GET("/tables/:name", queryH.DumpTable)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("server stopped")
}
