// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	_ "flick/docs" // swagger docs
	"flick/internal/cache"
	"flick/internal/config"
	"flick/internal/database"
	"flick/internal/middleware"
	"flick/internal/models"
	"flick/internal/repository"
	"flick/internal/service"
	"flick/internal/tmdb"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo   repository.UserRepository
	friendRepo repository.FriendshipRepository
	swipeRepo  repository.SwipeRepository
	watchRepo  repository.WatchRepository
	groupRepo  repository.GroupRepository
	movieRepo  repository.MovieRepository

	friendService *service.FriendService
	matchService  *service.MatchService
	swipeService  *service.SwipeService
	watchService  *service.WatchService
	groupService  *service.GroupService
	feedService   *service.FeedService
	movieService  *service.MovieService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with a sqlite database and a miniredis-backed client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("flick-api"),
		userRepo:       repository.NewUserRepository(db),
		friendRepo:     repository.NewFriendshipRepository(db),
		swipeRepo:      repository.NewSwipeRepository(db),
		watchRepo:      repository.NewWatchRepository(db),
		groupRepo:      repository.NewGroupRepository(db),
		movieRepo:      repository.NewMovieRepository(db),
	}

	middleware.InitMiddleware(cfg)
	middleware.SetRevocationStore(redisClient)

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL)
	cacheTTL := time.Duration(cfg.MovieCacheTTLDays) * 24 * time.Hour

	s.movieService = service.NewMovieService(s.movieRepo, tmdbClient, cacheTTL)
	s.friendService = service.NewFriendService(s.friendRepo, s.userRepo)
	s.matchService = service.NewMatchService(s.swipeRepo, s.friendRepo, s.groupRepo, s.userRepo, s.movieService, service.MatchPolicy{
		RequireFriendship:    cfg.MatchRequireFriendship,
		FetchMissingMetadata: cfg.MatchFetchMissingMetadata,
	})
	s.swipeService = service.NewSwipeService(s.swipeRepo, s.movieService)
	s.watchService = service.NewWatchService(s.watchRepo, s.movieService)
	s.groupService = service.NewGroupService(s.groupRepo, s.userRepo)
	s.feedService = service.NewFeedService(s.friendRepo, s.swipeRepo, s.watchRepo, s.userRepo, s.movieService)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Flick Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// Token lifecycle for an authenticated caller
	protected.Post("/auth/refresh", s.RefreshToken)
	protected.Post("/auth/logout", s.Logout)

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/search", s.SearchUsers)

	// Friend routes. Specific /:friendId/:resource routes before generic /:id.
	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Post("/", middleware.RateLimit(
		s.redis, 20, 5*time.Minute, "friend_request"), s.SendFriendRequest)
	friends.Get("/:friendId/matches", s.GetPairwiseMatches)
	friends.Post("/:id/accept", s.AcceptFriendRequest)
	friends.Post("/:id/decline", s.DeclineFriendRequest)

	// Group routes
	groups := protected.Group("/groups")
	groups.Post("/", s.CreateGroup)
	groups.Get("/", s.GetGroups)
	groups.Get("/:id/matches", s.GetGroupMatches)
	groups.Post("/:id/members", s.AddGroupMember)
	groups.Delete("/:id/members", s.LeaveGroup)
	groups.Get("/:id", s.GetGroup)
	groups.Delete("/:id", s.DeleteGroup)

	// Swipe routes
	swipes := protected.Group("/swipes")
	swipes.Post("/", s.RecordSwipe)
	swipes.Get("/", s.GetWantToWatch)

	// Watch routes
	watches := protected.Group("/watches")
	watches.Post("/", s.LogWatch)
	watches.Get("/", s.GetWatchHistory)

	// Feed route
	protected.Get("/feed", s.GetFeed)

	// Movie routes (metadata proxy + cache)
	movies := protected.Group("/movies")
	movies.Get("/discover", s.DiscoverMovies)
	movies.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "movie_search"), s.SearchMovies)
	movies.Get("/genres", s.GetMovieGenres)
	movies.Get("/:id", s.GetMovie)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is an optional accelerator, so it degrades readiness reporting
	// but never fails the probe on its own.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Flick API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithAppError(c, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
