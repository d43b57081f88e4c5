package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/juvenstu/real-estate-marketplace/internal/broker"
	"github.com/juvenstu/real-estate-marketplace/internal/config"
	"github.com/juvenstu/real-estate-marketplace/internal/database"
	"github.com/juvenstu/real-estate-marketplace/internal/handler"
	"github.com/juvenstu/real-estate-marketplace/internal/journal"
	"github.com/juvenstu/real-estate-marketplace/internal/middleware"
	"github.com/juvenstu/real-estate-marketplace/internal/repository"
	"github.com/juvenstu/real-estate-marketplace/internal/service"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Mutation journal
	jrnl, err := journal.New(cfg.JournalPath)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	defer jrnl.Close()

	// One Redis client backs the cache, the rate limiter and the event broker
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()

	events := broker.NewRedisEventBroker(redisClient)
	defer events.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, listingRepo)
	listingService := service.NewListingService(listingRepo, redisClient, cfg.CacheTTL, jrnl, events)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService, cfg.IsProduction())
	listingHandler := handler.NewListingHandler(listingService)
	liveHandler, err := handler.NewLiveHandler(events)
	if err != nil {
		log.Fatalf("Failed to start live feed: %v", err)
	}

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = false
	router.Use(cors.New(corsConfig))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(cfg.IsProduction()))

	// Auth routes (rate limited, no session required)
	auth := router.Group("/api/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/google", authHandler.Google)
		auth.GET("/signout", authHandler.Signout)
	}

	// Public listing routes
	router.GET("/api/listing/get/:id", listingHandler.GetListing)
	router.GET("/api/listing/get", listingHandler.SearchListings)

	// Session-protected routes
	guard := middleware.AuthRequired(cfg.JWTSecret)

	listing := router.Group("/api/listing", guard)
	{
		listing.POST("/create", listingHandler.CreateListing)
		listing.PUT("/update/:id", listingHandler.UpdateListing)
		listing.DELETE("/delete/:id", listingHandler.DeleteListing)
		listing.GET("/live", liveHandler.HandleLive)
	}

	user := router.Group("/api/user", guard)
	{
		user.GET("/listings/:id", userHandler.GetUserListings)
		user.POST("/update/:id", userHandler.UpdateUser)
		user.DELETE("/delete/:id", userHandler.DeleteUser)
		user.GET("/:id", userHandler.GetUser)
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
