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

	"github.com/advocacy-resources/advo-sub001/internal/adapters/cache"
	"github.com/advocacy-resources/advo-sub001/internal/adapters/database"
	"github.com/advocacy-resources/advo-sub001/internal/adapters/providers/geocoding"
	"github.com/advocacy-resources/advo-sub001/internal/adapters/search"
	"github.com/advocacy-resources/advo-sub001/internal/api/handlers"
	"github.com/advocacy-resources/advo-sub001/internal/api/middleware"
	"github.com/advocacy-resources/advo-sub001/internal/api/routes"
	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/providers"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/redis"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/typesense"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/observability"
	"github.com/advocacy-resources/advo-sub001/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Sessions require Redis; the response cache degrades gracefully
	// without it but login does not, so a missing Redis is fatal.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis client initialized successfully")

	cacheProvider := cache.NewRedisAdapter(redisClient)

	// Initialize Typesense client. Search falls back to SQL filtering when
	// the cluster is unreachable.
	var searchRepo repositories.ResourceSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
		log.Println("Typesense client initialized successfully")
	}

	// Initialize adapters
	resourceAdapter := database.NewResourceAdapter(pgClient)
	ratingAdapter := database.NewRatingAdapter(pgClient)
	favoriteAdapter := database.NewFavoriteAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	recommendationAdapter := database.NewRecommendationAdapter(pgClient)

	var geocodingProvider providers.GeocodingProvider
	switch cfg.Geocoding.Provider {
	case "google":
		if cfg.Geocoding.APIKey == "" {
			log.Println("Warning: GEOCODING_API_KEY is not set; using mock geocoding provider")
			geocodingProvider = geocoding.NewMockProvider()
		} else {
			geocodingProvider = geocoding.NewGoogleProvider(cfg.Geocoding.APIKey, cacheProvider)
		}
	default:
		geocodingProvider = geocoding.NewMockProvider()
	}

	// Initialize services
	geocodingService := services.NewGeocodingService(
		geocodingProvider,
		cfg.Geocoding.Provider,
		cfg.Geocoding.BatchSize,
		cfg.Geocoding.BatchDelay,
		metrics,
	)
	resourceService := services.NewResourceService(resourceAdapter, searchRepo, geocodingService)
	engagementService := services.NewEngagementService(ratingAdapter, favoriteAdapter, resourceAdapter)
	reviewService := services.NewReviewService(reviewAdapter, resourceAdapter)
	recommendationService := services.NewRecommendationService(recommendationAdapter)
	analyticsService := services.NewAnalyticsService(userAdapter)
	authService := services.NewAuthService(userAdapter)
	userService := services.NewUserService(userAdapter, resourceAdapter)
	sessionService := services.NewSessionService(
		cacheProvider,
		[]byte(cfg.Session.HashKey),
		[]byte(cfg.Session.BlockKey),
		cfg.Session.CookieName,
		int(cfg.Session.TTL.Seconds()),
	)

	// Initialize handlers
	resourceHandler := handlers.NewResourceHandler(resourceService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	adminHandler := handlers.NewAdminHandler(geocodingService, analyticsService, userService)
	secureCookies := cfg.Env != "development"
	authHandler := handlers.NewAuthHandler(authService, sessionService, userService, secureCookies)

	cacheMiddleware := middleware.NewCacheMiddleware(cacheProvider)
	sessionMiddleware := middleware.SessionMiddleware(sessionService, userService)

	// Set up router
	router := routes.NewRouter(
		resourceHandler,
		engagementHandler,
		reviewHandler,
		recommendationHandler,
		adminHandler,
		authHandler,
		sessionMiddleware,
		cacheMiddleware,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
