// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"context"
	"log/slog"
	"time"

	"milaan/internal/cache"
	"milaan/internal/config"
	"milaan/internal/directory"
	"milaan/internal/middleware"
	"milaan/internal/notifications"
	"milaan/internal/seed"
	"milaan/internal/session"
	"milaan/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config    *config.Config
	log       *slog.Logger
	redis     *redis.Client
	directory *directory.Directory
	sessions  *session.Manager
	notifier  *notifications.Notifier
}

// NewServer wires the directory, seeded sandboxes, session manager and
// notifier. An empty RedisURL (or an unreachable Redis) leaves the server
// running without identity durability, rate limits or notifications.
func NewServer(cfg *config.Config) *Server {
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = cache.Connect(cfg.RedisURL)
	}

	latency := time.Duration(cfg.ReadLatencyMS) * time.Millisecond

	users := seed.Users()
	if cfg.SeedExtraUsers > 0 {
		users = append(users, seed.ExtraUsers(cfg.SeedExtraUsers)...)
	}
	dir := directory.New(directory.WithReadLatency(latency))
	dir.Load(users)

	problems := seed.Problems()
	if cfg.SeedExtraProblems > 0 {
		problems = append(problems, seed.ExtraProblems(cfg.SeedExtraProblems, users)...)
	}
	comments := seed.Comments()

	newStore := func() *store.Store {
		s := store.New(dir, store.WithReadLatency(latency))
		s.Load(problems, comments)
		return s
	}

	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute

	return &Server{
		config:    cfg,
		log:       middleware.NewLogger(),
		redis:     rdb,
		directory: dir,
		sessions:  session.NewManager(rdb, newStore, sessionTTL),
		notifier:  notifications.NewNotifier(rdb),
	}
}

// Sessions exposes the session manager, e.g. for running the janitor.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.RequestLogger(s.log))

	prometheus := fiberprometheus.New("milaan")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Global per-IP limit; stricter per-route limits are applied in
	// SetupRoutes.
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/", s.HealthCheck)
	api.Get("/categories", s.GetCategories)

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public browse/search; a presented token selects the caller's sandbox.
	public := api.Group("", s.OptionalAuth())
	public.Get("/problems", s.ListProblems)
	public.Get("/problems/search", middleware.RateLimit(s.redis, 10, time.Minute, "search"), s.SearchProblems)
	public.Get("/problems/:id/comments", s.ListComments)
	public.Get("/problems/:id", s.GetProblem)

	protected := api.Group("", s.AuthRequired())

	problems := protected.Group("/problems")
	problems.Post("/", middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_problem"), s.CreateProblem)
	problems.Post("/:id/upvote", s.UpvoteProblem)
	problems.Post("/:id/help", s.OfferHelp)
	problems.Post("/:id/comments", middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	problems.Delete("/:id/comments/:commentId", s.DeleteComment)
	problems.Post("/:id/comments/:commentId/solution", s.MarkSolution)
	problems.Put("/:id", s.UpdateProblem)
	problems.Delete("/:id", s.DeleteProblem)

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/search", s.SearchUsers)
	users.Get("/:id/problems", s.GetUserProblems)
	users.Get("/:id/helping", s.GetUserHelping)
	users.Get("/:id", s.GetUserProfile)
	users.Get("/", s.ListUsers)
}

// HealthCheck handles GET /api/.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	redisStatus := "unavailable"
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		} else {
			redisStatus = "healthy"
		}
	}

	return c.JSON(fiber.Map{
		"message": "milaan",
		"status":  "healthy",
		"checks": fiber.Map{
			"redis": redisStatus,
		},
		"time": time.Now().UTC(),
	})
}
