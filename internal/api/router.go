package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shopstack/marketplace-api/docs"
	"github.com/shopstack/marketplace-api/internal/api/handler"
	"github.com/shopstack/marketplace-api/internal/api/middleware"
	"github.com/shopstack/marketplace-api/internal/core/domain"
	"github.com/shopstack/marketplace-api/internal/core/service"
	"github.com/shopstack/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/shopstack/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopstack/marketplace-api/internal/infrastructure/db/redis"
	"github.com/shopstack/marketplace-api/pkg/logger"
)

const (
	tokenTTL = 24 * time.Hour

	loginLimit        = 5
	loginLimitWindow  = 15 * time.Minute
	loginLimitMessage = "Too many login attempts, please try again later."
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	blacklist := mongodb.NewBlacklistRepository(db)

	hasher := service.NewPasswordHasher()
	tokens := service.NewTokenService(cfg.JWTSecret, tokenTTL)
	authService := service.NewAuthService(userRepo, blacklist, hasher, tokens, log)
	userService := service.NewUserService(userRepo, hasher, log)
	productService := service.NewProductService(productRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	authMW := middleware.Auth(tokens, blacklist, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	loginLimiter := redisdb.NewFixedWindowLimiter(rdb, "ratelimit:login", loginLimit, loginLimitWindow)

	// --- Auth routes ---
	e.POST("/create-user", authHandler.Signup)
	e.POST("/login", authHandler.Login, middleware.RateLimit(loginLimiter, loginLimitMessage, log))
	e.POST("/logout", authHandler.Logout)

	// --- User routes ---
	e.GET("/users", userHandler.List, authMW, adminOnly)
	e.GET("/users/:id", userHandler.Get, authMW)
	e.PUT("/users/:id", userHandler.Update, authMW)
	e.DELETE("/users/:id", userHandler.Delete, authMW, adminOnly)

	// --- Product routes (reads are public) ---
	e.POST("/products", productHandler.Create, authMW)
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.PATCH("/products/:id", productHandler.Update, authMW)
	e.DELETE("/products/:id", productHandler.Delete, authMW)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
