package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eaglebank/account-service/internal/adapter"
	accountcmd "github.com/eaglebank/account-service/internal/command"
	"github.com/eaglebank/account-service/internal/config"
	"github.com/eaglebank/account-service/internal/eligibility"
	"github.com/eaglebank/account-service/internal/factory"
	"github.com/eaglebank/account-service/internal/handler"
	accountqry "github.com/eaglebank/account-service/internal/query"
	"github.com/eaglebank/account-service/internal/repository"
	"github.com/eaglebank/account-service/shared/events"
	"github.com/eaglebank/account-service/shared/middleware"
	redisClient "github.com/eaglebank/account-service/shared/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection (write store)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	// Redis connection (read model store + event streaming)
	redis, err := redisClient.NewClient(ctx, redisClient.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// --- downstream services ---
	httpClient := adapter.NewHTTPClient()
	customers := adapter.NewCustomerClient(cfg.CustomerServiceURL, httpClient, adapter.NewGuard("Customer", cfg.Breaker))
	credits := adapter.NewCreditClient(cfg.CreditServiceURL, httpClient, adapter.NewGuard("Credit", cfg.Breaker))

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	writeRepo := repository.NewAccountWriteRepository(db)
	readRepo := repository.NewAccountReadRepository(writeRepo, redis.Client, cfg.CacheTTL)
	cardRepo := repository.NewDebitCardRepository(db, redis.Client, cfg.CacheTTL)

	pipeline := eligibility.NewPipeline(customers, credits, writeRepo)
	accountFactory := factory.NewFactory(cfg.AccountRules)

	accountCommands := accountcmd.NewAccountCommandService(pipeline, accountFactory, writeRepo, readRepo, publisher)
	accountQueries := accountqry.NewAccountQueryService(readRepo)
	cardCommands := accountcmd.NewDebitCardCommandService(readRepo, cardRepo, credits, publisher)
	cardQueries := accountqry.NewDebitCardQueryService(cardRepo, readRepo)

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())
	handler.RegisterRoutes(router,
		handler.NewAccountHandler(accountCommands, accountQueries),
		handler.NewDebitCardHandler(cardCommands, cardQueries),
	)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Account service starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
