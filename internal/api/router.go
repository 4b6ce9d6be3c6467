package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/portfolio/blog-api/docs"
	"github.com/portfolio/blog-api/internal/api/handler"
	"github.com/portfolio/blog-api/internal/api/middleware"
	"github.com/portfolio/blog-api/internal/core/service"
	mongodb "github.com/portfolio/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/portfolio/blog-api/internal/infrastructure/db/redis"
)

// Options carries the settings the router needs beyond its infrastructure handles.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	postCache := redisdb.NewPostCache(rdb)

	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL, log)
	postService := service.NewPostService(postRepo, userRepo, postCache, log)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	authMiddleware := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Post routes: reads are public, mutations require a bearer token ---
	e.GET("/api/posts", postHandler.List)
	e.GET("/api/posts/:id", postHandler.Get)
	e.POST("/api/posts", postHandler.Create, authMiddleware)
	e.PUT("/api/posts/:id", postHandler.Update, authMiddleware)
	e.DELETE("/api/posts/:id", postHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
