// Package server contains the HTTP handlers for the request management API.
package server

import (
	"context"
	"fmt"
	"time"

	_ "eventdesk/docs" // swagger docs
	"eventdesk/internal/config"
	"eventdesk/internal/middleware"
	"eventdesk/internal/repository"
	"eventdesk/internal/service"
	"eventdesk/internal/storage"

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

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	store          storage.Store
	promMiddleware *fiberprometheus.FiberPrometheus

	requestRepo     repository.RequestRepository
	participantRepo repository.ParticipantRepository
	profileRepo     repository.ProfileRepository

	submissionService  *service.SubmissionService
	reviewService      *service.ReviewService
	participantService *service.ParticipantService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// The bootstrap layer establishes DB/Redis first; tests pass their own.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.Store) (*Server, error) {
	requestRepo := repository.NewRequestRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	prom := middleware.InitMetrics("eventdesk-api")

	server := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		store:           store,
		promMiddleware:  prom,
		requestRepo:     requestRepo,
		participantRepo: participantRepo,
		profileRepo:     profileRepo,
	}
	server.submissionService = service.NewSubmissionService(requestRepo, store)
	server.reviewService = service.NewReviewService(requestRepo, participantRepo)
	server.participantService = service.NewParticipantService(participantRepo, requestRepo)

	return server, nil
}

// NewStore builds the object storage client selected by config.
func NewStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "disk":
		return storage.NewDiskStore(cfg.StorageDir, cfg.StorageBaseURL), nil
	case "http":
		return storage.NewHTTPStore(cfg.StorageBaseURL, cfg.StorageBucket, cfg.StorageAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// SetupMiddleware configures middleware for the Fiber app.
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

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
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
		MaxAge:           86400, // 24 hours
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

// SetupRoutes configures all routes for the application.
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
		Title: "EventDesk Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Disk-backed uploads are served directly; the http backend exposes
	// public URLs on the remote storage host instead.
	if disk, ok := s.store.(*storage.DiskStore); ok {
		app.Static("/uploads", disk.Dir)
	}

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	requests := protected.Group("/requests")
	requests.Post("/", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "submit_request"), s.SubmitRequest)
	requests.Get("/mine", s.GetMyRequests)
	// Specific /:id/:resource routes before the generic /:id route
	requests.Post("/:id/participants", middleware.RateLimit(
		s.redis, 30, 10*time.Minute, "invite_participant"), s.InviteParticipant)
	requests.Get("/:id/participants", s.GetParticipants)
	requests.Get("/:id", s.GetRequest)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	adminRequests := admin.Group("/requests")
	adminRequests.Get("/", s.GetAdminRequests)
	adminRequests.Get("/stats", s.GetRequestStats)
	adminRequests.Patch("/:id/status", s.UpdateRequestStatus)
	adminRequests.Put("/:id", s.UpdateRequest)
	adminRequests.Delete("/:id", s.DeleteRequest)
	adminRequests.Get("/:id/participants", s.GetParticipants)
}

// Shutdown releases server-held resources after the HTTP listener stops.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// LivenessCheck handles liveness probe requests
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
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

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The cache degrades to no-ops without Redis, so readiness does not fail.
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
