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

	"github.com/joho/godotenv"

	"github.com/cloudnine-labs/account-service/internal/config"
	"github.com/cloudnine-labs/account-service/internal/database"
	"github.com/cloudnine-labs/account-service/internal/handlers"
	"github.com/cloudnine-labs/account-service/internal/repositories"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the account store
	var repo repositories.AccountRepository
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create postgres pool: %v", err)
		}
		defer pool.Close()

		if err := database.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		repo = repositories.NewPostgresAccountRepository(pool)

	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to create redis client: %v", err)
		}
		defer client.Close()
		repo = repositories.NewRedisAccountRepository(client)
	}

	// Initialize HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handlers.NewRouter(repo),
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("Starting %s on port %s", handlers.ServiceName, cfg.ServerPort)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped gracefully")
}
