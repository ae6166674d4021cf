package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"freight-quote-service/internal/config"
	"freight-quote-service/internal/events"
	"freight-quote-service/internal/geo"
	"freight-quote-service/internal/handlers"
	"freight-quote-service/internal/middleware"
	"freight-quote-service/internal/models"
	"freight-quote-service/internal/repository"
	"freight-quote-service/internal/services"
)

func main() {
	log.Println("Starting Freight Quote Service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully")

	// Structured logger shared by services and middleware
	appLogger := logrus.New()
	appLogger.SetFormatter(&logrus.JSONFormatter{})
	appLogger.SetLevel(logrus.InfoLevel)

	// Connect to database
	db, err := connectDatabase(cfg.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connected successfully")

	// Run migrations
	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seed reference data
	if err := repository.SeedReferenceData(db); err != nil {
		log.Printf("Warning: Failed to seed reference data: %v", err)
	}

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without geocode caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without geocode caching...")
				redisClient = nil
			} else {
				log.Println("Connected to Redis for geocode caching")
			}
		}
	} else {
		log.Println("REDIS_URL not configured, geocode caching disabled")
	}

	// Initialize NATS events publisher (optional)
	var eventsPublisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(cfg.NATSURL, appLogger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
		} else {
			defer eventsPublisher.Close()
			log.Println("NATS events publisher initialized")
		}
	} else {
		log.Println("NATS_URL not configured, events disabled")
	}

	// Initialize geocoder and distance estimator
	geocoder := geo.NewNominatimClient(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.UserAgent,
		time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second,
		redisClient,
		time.Duration(cfg.Geocoder.CacheTTLMinutes)*time.Minute,
		appLogger,
	)
	distanceEstimator := geo.NewDistanceEstimator(geocoder)
	log.Println("Geocoder initialized")

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(db)
	rateCardRepo := repository.NewRateCardRepository(db)
	portRepo := repository.NewPortRepository(db)
	commodityRepo := repository.NewCommodityRepository(db)
	log.Println("Repositories initialized")

	// Initialize services
	quoteService := services.NewQuoteService(quoteRepo, rateCardRepo, distanceEstimator, eventsPublisher, appLogger)
	portService := services.NewPortService(portRepo, geocoder, appLogger)
	log.Println("Services initialized")

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	rateCardHandler := handlers.NewRateCardHandler(rateCardRepo, eventsPublisher, appLogger)
	portHandler := handlers.NewPortHandler(portService)
	commodityHandler := handlers.NewCommodityHandler(commodityRepo)
	log.Println("Handlers initialized")

	// Setup router
	router := setupRouter(quoteHandler, rateCardHandler, portHandler, commodityHandler, cfg, appLogger)
	log.Println("Router configured")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting server on %s (environment: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// connectDatabase establishes a connection to the PostgreSQL database
func connectDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Quote{},
		&models.RateCard{},
		&models.Port{},
		&models.Commodity{},
	); err != nil {
		return err
	}

	// At most one active rate card per (country, mode, service). Partial so
	// deactivated history rows never collide with a replacement card.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rate_cards_active_triple
		 ON rate_cards (country, mode, service) WHERE active`,
	).Error
}

// setupRouter configures the Gin router with routes and middleware
func setupRouter(
	quoteHandler *handlers.QuoteHandler,
	rateCardHandler *handlers.RateCardHandler,
	portHandler *handlers.PortHandler,
	commodityHandler *handlers.CommodityHandler,
	cfg *config.Config,
	appLogger *logrus.Logger,
) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(appLogger))

	// Health check
	router.GET("/health", quoteHandler.HealthCheck)

	// API routes
	api := router.Group("/api")
	{
		// Quotes
		api.POST("/quote", quoteHandler.CreateQuote)
		api.GET("/quote/:id", quoteHandler.GetQuote)
		api.PUT("/quote/:id", quoteHandler.UpdateQuote)
		api.GET("/quotes/history", quoteHandler.History)

		// Rate cards (admin)
		api.GET("/rate-cards", rateCardHandler.ListRateCards)
		api.POST("/rate-cards", rateCardHandler.CreateRateCard)
		api.PUT("/rate-cards/:id", rateCardHandler.UpdateRateCard)
		api.DELETE("/rate-cards/:id", rateCardHandler.DeleteRateCard)

		// Port directory
		api.GET("/finder_port/search", portHandler.SearchPorts)
		api.GET("/finder_port", portHandler.ListPorts)
		api.POST("/finder_port", portHandler.CreatePort)
		api.GET("/finder_port/:id", portHandler.GetPort)
		api.PUT("/finder_port/:id", portHandler.UpdatePort)
		api.DELETE("/finder_port/:id", portHandler.DeletePort)

		// Commodities
		api.GET("/commodities", commodityHandler.ListCommodities)
		api.POST("/commodities", commodityHandler.CreateCommodities)
		api.GET("/commodities/:id", commodityHandler.GetCommodity)
		api.PUT("/commodities/:id", commodityHandler.UpdateCommodity)
		api.DELETE("/commodities/:id", commodityHandler.DeleteCommodity)
	}

	return router
}
