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

	"github.com/Sethuso/product-management-system/internal/config"
	"github.com/Sethuso/product-management-system/internal/database"
	"github.com/Sethuso/product-management-system/internal/handler"
	"github.com/Sethuso/product-management-system/internal/middleware"
	"github.com/Sethuso/product-management-system/internal/repository"
	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/pkg/lookup"
)

const serviceName = "INVENTORY-SERVICE"

// main is the entrypoint for the inventory service. It stores one stock
// quantity per product and confirms product existence with the product
// service before accepting a write.
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
	log.Info().Str("env", cfg.Env).Msg("starting inventory service")

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

	// 4. Initialize peer client for product existence checks
	productClient := lookup.NewProductClient(lookup.Config{
		BaseURL:     cfg.Peers.ProductURL,
		ServiceName: cfg.ServiceName,
		Timeout:     cfg.Lookup.Timeout,
		MaxAttempts: cfg.Lookup.MaxAttempts,
		Backoff:     cfg.Lookup.Backoff,
	})

	// 5. Initialize repositories and services
	inventoryRepo := repository.NewInventoryRepository(db)
	inventorySvc := service.NewInventoryService(inventoryRepo, productClient)

	// 6. Initialize handlers
	inventoryHandler := handler.NewInventoryHandler(inventorySvc)
	healthHandler := handler.NewHealthHandler(cfg.ServiceName)

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	inventories := router.Group("/com/api/inventory-service")
	{
		inventories.POST("/inventory", inventoryHandler.UpsertInventory)
		inventories.GET("/getByProductId", inventoryHandler.GetInventoryByProductID)
	}

	router.GET("/health", healthHandler.GetHealth)

	// 8. Start HTTP server
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

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

func runMigrations(db *sql.DB, path string) error {
	if path == "" {
		path = "file://migrations/inventory"
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
