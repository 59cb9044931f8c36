package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/forkcast/backend/config"
	"github.com/pageza/forkcast/backend/internal/api"
	"github.com/pageza/forkcast/backend/internal/database"
	"github.com/pageza/forkcast/backend/internal/middleware"
	"github.com/pageza/forkcast/backend/internal/router"
	"github.com/pageza/forkcast/backend/internal/server"
	"github.com/pageza/forkcast/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs the intent cache and rate limiting; the service still
	// works without it, just slower and unthrottled.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache and rate limiting: %v", err)
		redisClient = nil
	}

	retriever, err := service.NewSpoonacularClient()
	if err != nil {
		log.Fatalf("Failed to create retrieval client: %v", err)
	}
	extractor, err := service.NewIntentService(redisClient)
	if err != nil {
		log.Fatalf("Failed to create intent service: %v", err)
	}

	store := service.NewRecipeStore(db)
	costs, err := store.LoadCostModel(context.Background())
	if err != nil {
		log.Printf("Failed to load cost model, using built-in table: %v", err)
		costs = service.DefaultCostModel()
	}

	searchService := service.NewSearchService(retriever, extractor, costs, db)

	var searchLimiter *middleware.RateLimiter
	if redisClient != nil {
		searchLimiter = middleware.NewSearchRateLimiter(redisClient)
	}

	engine := router.SetupRouter(
		api.NewSearchHandler(searchService, store),
		api.NewRecipeHandler(store),
		api.NewHealthHandler(db),
		searchLimiter,
	)

	srv := server.New(cfg, engine, db)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
