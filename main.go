package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/ammu2244/chatgpt-gateway/api"
	"github.com/ammu2244/chatgpt-gateway/backend"
	"github.com/ammu2244/chatgpt-gateway/chat"
	"github.com/ammu2244/chatgpt-gateway/config"
	"github.com/ammu2244/chatgpt-gateway/responder"
	"github.com/ammu2244/chatgpt-gateway/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting chat gateway...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Backend URL: %s", cfg.BackendURL)
	log.Printf("Store driver: %s", cfg.StoreDriver)

	// Initialize session storage
	kv, err := newKV(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	sessions := store.NewSessionStore(kv)
	defer sessions.Close()

	// Initialize backend client and local responder
	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	localResponder := responder.New()

	// Initialize handler; controllers are created per user on first request
	h := api.NewHandler(func(userID string) *chat.Controller {
		return chat.New(userID, sessions, backendClient, localResponder,
			chat.WithFallbackDelay(cfg.FallbackDelay))
	})

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Gateway started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gateway...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Gateway stopped")
}

func newKV(cfg *config.Config) (store.KV, error) {
	switch store.Driver(cfg.StoreDriver) {
	case store.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewKV(store.DriverRedis, store.WithRedisClient(client))
	case store.DriverMemory:
		return store.NewKV(store.DriverMemory)
	default:
		return store.NewKV(store.DriverSQLite, store.WithSQLiteDSN(cfg.DatabaseURL))
	}
}
