package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/ratehub/store-rating-api/docs"
	"github.com/ratehub/store-rating-api/internal/api/handler"
	"github.com/ratehub/store-rating-api/internal/api/middleware"
	"github.com/ratehub/store-rating-api/internal/core/domain"
	"github.com/ratehub/store-rating-api/internal/core/service"
	"github.com/ratehub/store-rating-api/internal/infrastructure/db/postgres"
	redisdb "github.com/ratehub/store-rating-api/internal/infrastructure/db/redis"
	"github.com/ratehub/store-rating-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *postgres.DB, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("storerating"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)

	var cache service.AggregateCache
	if rdb != nil {
		cache = redisdb.NewRatingCache(rdb, cfg.Redis.CacheTTL)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	adminService := service.NewAdminService(userRepo, ratingRepo, log)
	ratingService := service.NewRatingService(userRepo, ratingRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	userHandler := handler.NewUserHandler(ratingService)
	storeHandler := handler.NewStoreHandler(ratingService)

	authRequired := middleware.Auth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	userOnly := middleware.RBAC(domain.RoleUser)
	storeOnly := middleware.RBAC(domain.RoleStore)

	// Brute-force protection on the unauthenticated credential endpoints.
	credentialLimiter := echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(5),
			Burst:     10,
			ExpiresIn: 3 * time.Minute,
		}))

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register, credentialLimiter)
	auth.POST("/login", authHandler.Login, credentialLimiter)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.PUT("/change-password", authHandler.ChangePassword, authRequired)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authRequired, adminOnly)
	admin.GET("/dashboard-stats", adminHandler.DashboardStats)
	admin.GET("/stores", adminHandler.ListStores)
	admin.POST("/stores", adminHandler.CreateStore)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)

	// --- Normal user routes ---
	user := e.Group("/api/user", authRequired, userOnly)
	user.GET("/stores", userHandler.ListStores)
	user.POST("/ratings", userHandler.SubmitRating)

	// --- Store owner routes ---
	store := e.Group("/api/store", authRequired, storeOnly)
	store.GET("/dashboard", storeHandler.Dashboard)
	store.GET("/users", storeHandler.Raters)

	// --- Health probes, metrics, docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
