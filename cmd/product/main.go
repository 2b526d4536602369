package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/cache"
	"github.com/Sethuso/product-management-system/internal/config"
	"github.com/Sethuso/product-management-system/internal/database"
	"github.com/Sethuso/product-management-system/internal/handler"
	"github.com/Sethuso/product-management-system/internal/middleware"
	"github.com/Sethuso/product-management-system/internal/repository"
	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/internal/worker"
	"github.com/Sethuso/product-management-system/pkg/lookup"
)

const serviceName = "PRODUCT-SERVICE"

// main is the entrypoint for the product service. It owns the product and
// category catalog and builds composite views by fanning out to the pricing
// and inventory services.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting product service")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB, cfg.MigrationsPath); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis. The view cache is best-effort so a failed
	// connection only disables caching instead of aborting startup.
	var viewCache *cache.ViewCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed - view caching disabled")
	} else {
		defer redisClient.Close()
		viewCache = cache.NewViewCache(redisClient, cfg.Worker.ViewCacheTTL)
		log.Info().Msg("redis connected successfully")
	}

	// 4. Initialize peer clients
	priceClient := lookup.NewPriceClient(lookup.Config{
		BaseURL:     cfg.Peers.PricingURL,
		ServiceName: cfg.ServiceName,
		Timeout:     cfg.Lookup.Timeout,
		MaxAttempts: cfg.Lookup.MaxAttempts,
		Backoff:     cfg.Lookup.Backoff,
	})
	inventoryClient := lookup.NewInventoryClient(lookup.Config{
		BaseURL:     cfg.Peers.InventoryURL,
		ServiceName: cfg.ServiceName,
		Timeout:     cfg.Lookup.Timeout,
		MaxAttempts: cfg.Lookup.MaxAttempts,
		Backoff:     cfg.Lookup.Backoff,
	})

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// 6. Initialize services
	productSvc := service.NewProductService(productRepo, categoryRepo, priceClient, inventoryClient, viewCache, cfg.Worker.FanOutLimit)
	categorySvc := service.NewCategoryService(categoryRepo)

	// 7. Initialize handlers
	productHandler := handler.NewProductHandler(productSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	healthHandler := handler.NewHealthHandler(cfg.ServiceName)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	products := router.Group("/com/api/products")
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("", productHandler.GetAllProducts)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
		products.GET("/getByProductId", productHandler.GetProductByID)
		products.GET("/get_products_by_category", productHandler.GetProductsByCategory)
	}

	categories := router.Group("/com/api/categories")
	{
		categories.POST("", categoryHandler.CreateCategory)
		categories.GET("", categoryHandler.GetCategory)
		categories.GET("/all", categoryHandler.GetAllCategories)
	}

	// Alias kept for callers still using the old category-service prefix.
	categoryService := router.Group("/com/api/category-service")
	{
		categoryService.POST("/categories", categoryHandler.CreateCategory)
		categoryService.GET("/categories", categoryHandler.GetCategory)
		categoryService.GET("/categories/all", categoryHandler.GetAllCategories)
	}

	router.GET("/health", healthHandler.GetHealth)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	if viewCache != nil {
		go worker.NewCacheWarmWorker(productSvc, cfg.Worker.CacheWarmCategories, cfg.Worker.CacheWarmInterval).Start(ctx)
	}

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

func runMigrations(db *sql.DB, path string) error {
	if path == "" {
		path = "file://migrations/product"
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
