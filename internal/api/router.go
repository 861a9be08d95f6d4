package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/LeaEliezrov/ai-learning-platform/docs"
	"github.com/LeaEliezrov/ai-learning-platform/internal/api/handler"
	"github.com/LeaEliezrov/ai-learning-platform/internal/api/middleware"
	"github.com/LeaEliezrov/ai-learning-platform/internal/auth"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/service"
	"github.com/LeaEliezrov/ai-learning-platform/internal/infrastructure/config"
	mongorepo "github.com/LeaEliezrov/ai-learning-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/LeaEliezrov/ai-learning-platform/internal/infrastructure/db/redis"
)

// Fixed-window rate limits per route group. The prompt window is the
// tightest because each request spends provider tokens.
const (
	generalLimit  = 100
	generalWindow = 15 * time.Minute

	authLimit  = 5
	authWindow = 15 * time.Minute

	promptLimit  = 10
	promptWindow = time.Minute
)

// NewRouter builds the Echo instance with all routes, middleware, and
// handlers wired. The generator is injected rather than built here so tests
// can substitute a stub provider.
func NewRouter(db *mongo.Database, rdb *redis.Client, generator ports.LessonGenerator, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echoprometheus.NewMiddleware("learning"))

	// --- Wiring ---
	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := mongorepo.NewUserRepository(db)
	taxonomyRepo := mongorepo.NewTaxonomyRepository(db)
	promptRepo := mongorepo.NewPromptRepository(db)

	authService := service.NewAuthService(userRepo, codec, log)
	promptService := service.NewPromptService(promptRepo, taxonomyRepo, userRepo, generator, cfg.GenerationTimeout, log)
	userService := service.NewUserService(userRepo, promptRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	promptHandler := handler.NewPromptHandler(promptService)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyRepo)
	userHandler := handler.NewUserHandler(userService)

	requireAuth := middleware.Auth(codec)
	requireAdmin := middleware.RequireAdmin(userRepo)

	limiter := redisdb.NewFixedWindowLimiter(rdb)
	generalRate := middleware.RateLimit(limiter, "general", generalLimit, generalWindow, log)
	authRate := middleware.RateLimit(limiter, "auth", authLimit, authWindow, log)
	promptRate := middleware.RateLimit(limiter, "prompt", promptLimit, promptWindow, log)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API routes ---
	api := e.Group("/api", generalRate)

	users := api.Group("/users")
	users.POST("/register", authHandler.Register, authRate)
	users.POST("/login", authHandler.Login, authRate)
	users.GET("", userHandler.List, requireAuth, requireAdmin)
	users.GET("/:id", userHandler.Get, requireAuth, requireAdmin)
	users.PATCH("/:id", userHandler.Update, requireAuth, requireAdmin)
	users.DELETE("/:id", userHandler.Delete, requireAuth, requireAdmin)

	// Taxonomy reads are public; OptionalAuth still resolves the identity
	// so request logs can attribute browsing to a user when a token is sent.
	categories := api.Group("/categories", middleware.OptionalAuth(codec))
	categories.GET("", taxonomyHandler.ListCategories)
	categories.GET("/:id", taxonomyHandler.GetCategory)
	categories.GET("/:id/subcategories", taxonomyHandler.CategorySubcategories)

	subcategories := api.Group("/subcategories", middleware.OptionalAuth(codec))
	subcategories.GET("", taxonomyHandler.ListSubcategories)
	subcategories.GET("/:id", taxonomyHandler.GetSubcategory)

	prompts := api.Group("/prompts", requireAuth)
	prompts.POST("", promptHandler.Create, promptRate)
	prompts.GET("/my-prompts", promptHandler.MyPrompts)
	prompts.GET("/admin/all", promptHandler.AdminAll, requireAdmin)
	prompts.GET("/:id", promptHandler.Get)
	prompts.DELETE("/:id", promptHandler.Delete)

	return e
}
