package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"gadict/internal/auth"
	"gadict/internal/config"
	"gadict/internal/handler"
	"gadict/internal/middleware"
	"gadict/internal/repository/postgres"
	"gadict/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier backed by the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	wordRepo := postgres.NewWordRepository(repoConfig)
	contributionRepo := postgres.NewContributionRepository(repoConfig)
	flagRepo := postgres.NewFlagRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	statsRepo := postgres.NewStatsRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	wordService := service.NewWordService(wordRepo, logger)
	contributionService := service.NewContributionService(wordRepo, contributionRepo, userRepo, txManager, logger)
	flagService := service.NewFlagService(wordRepo, flagRepo, txManager, logger)
	statsService := service.NewStatsService(wordRepo, contributionRepo, flagRepo, userRepo, statsRepo, cfg.StatsFreshness, logger)

	// Create handlers
	wordHandler := handler.NewWordHandler(wordService, logger)
	contributionHandler := handler.NewContributionHandler(contributionService, logger)
	flagHandler := handler.NewFlagHandler(flagService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", wordHandler.HealthCheck)

	// Word routes (public reads; all mutation goes through contributions)
	mux.HandleFunc("GET /api/words", wordHandler.ListWords)
	mux.HandleFunc("GET /api/words/{id}", wordHandler.GetWord)
	mux.HandleFunc("POST /api/words/{id}/flags", flagHandler.Report)

	// Contribution routes
	mux.HandleFunc("POST /api/contributions", contributionHandler.Submit)
	mux.HandleFunc("GET /api/contributions", contributionHandler.List)
	mux.HandleFunc("GET /api/contributions/{id}", contributionHandler.Get)

	// Moderation routes (role checks live in the services)
	mux.HandleFunc("GET /api/admin/contributions", contributionHandler.ListQueue)
	mux.HandleFunc("POST /api/admin/contributions/{id}/review", contributionHandler.Review)
	mux.HandleFunc("POST /api/admin/contributions/{id}/needs-review", contributionHandler.MarkNeedsReview)
	mux.HandleFunc("POST /api/admin/contributions/{id}/reopen", contributionHandler.Reopen)
	mux.HandleFunc("GET /api/admin/flags", flagHandler.List)
	mux.HandleFunc("GET /api/admin/flags/{id}", flagHandler.Get)
	mux.HandleFunc("POST /api/admin/flags/{id}/resolve", flagHandler.Resolve)
	mux.HandleFunc("POST /api/admin/flags/{id}/review", flagHandler.MarkReviewed)

	// Stats route
	mux.HandleFunc("GET /api/stats", statsHandler.GetStats)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	h = middleware.Auth(jwtVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
