package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/config"
	"github.com/Sethuso/product-management-system/internal/gateway"
	"github.com/Sethuso/product-management-system/internal/handler"
	"github.com/Sethuso/product-management-system/internal/middleware"
	"github.com/Sethuso/product-management-system/internal/service"
)

const serviceName = "API-GATEWAY"

// main is the entrypoint for the API gateway. It authenticates inbound
// requests, enforces role rules and reverse-proxies everything that passes
// to the owning backend service.
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
	log.Info().Str("env", cfg.Env).Msg("starting api gateway")

	// 3. Build the authorization gate and the proxy table
	rules := gateway.NewRules(cfg.Gateway.TrustedServices)
	tokenSvc := service.NewTokenService(cfg.JWTSecret)
	gate := gateway.NewGate(rules, tokenSvc)

	proxy, err := gateway.NewProxy(cfg.Peers)
	if err != nil {
		log.Error().Err(err).Msg("proxy initialization failed")
		fmt.Fprintf(os.Stderr, "proxy initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 4. Setup router. Health is the gateway's only local endpoint;
	// every other path funnels through the gate and then the proxy.
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	healthHandler := handler.NewHealthHandler(cfg.ServiceName)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gate.Handle())
	router.GET("/health", healthHandler.GetHealth)
	router.NoRoute(proxy.Handler)

	// 5. Start HTTP server
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

	// 6. Wait for interrupt signal
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

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
