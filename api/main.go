package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloomnext/pos-inventory/internal/auth"
	"github.com/bloomnext/pos-inventory/internal/cache"
	"github.com/bloomnext/pos-inventory/internal/config"
	"github.com/bloomnext/pos-inventory/internal/db"
	api "github.com/bloomnext/pos-inventory/internal/http"
	"github.com/bloomnext/pos-inventory/internal/http/handlers"
	rl "github.com/bloomnext/pos-inventory/internal/http/rate_limiter"
	"github.com/bloomnext/pos-inventory/internal/repo"

	_ "github.com/bloomnext/pos-inventory/docs"
)

// @title BloomNext POS - Product & Inventory API
// @version 1.0
// @description REST API for the point-of-sale product catalog and stock ledger.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("could not migrate database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("could not connect to redis: %v", err)
	}
	cancel()

	products := repo.NewPostgresProductRepository(database)
	movements := repo.NewPostgresMovementRepository(database)

	h := handlers.New(handlers.Deps{
		Products:  products,
		Movements: movements,
		Stock:     repo.NewPostgresStockRepository(database),
		Users:     repo.NewPostgresUserRepository(database),
		Metrics:   repo.NewPostgresMetricsRepository(database),
		Tokens:    auth.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL),
		Refresh:   auth.NewRedisRefreshStore(rdb, cfg.RefreshTokenTTL),
		Lookup:    cache.NewLookupCache(rdb, cfg.LookupCacheTTL),
	})

	limiter := rl.NewRegistry(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartCleanupLoop()

	router := api.NewRouter(h, limiter)
	log.Printf("server running on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Fatal(err)
	}
}
