package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/qbnb/marketplace-api/internal/api/handler"
	"github.com/qbnb/marketplace-api/internal/api/middleware"
	"github.com/qbnb/marketplace-api/internal/core/ports"
	"github.com/qbnb/marketplace-api/internal/core/service"
	mongorepo "github.com/qbnb/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/qbnb/marketplace-api/internal/infrastructure/db/redis"
	"github.com/qbnb/marketplace-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is shared with the caller, which owns its worker lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	listingRepo := mongorepo.NewListingRepository(db)
	bookingRepo := mongorepo.NewBookingRepository(db)
	reviewRepo := mongorepo.NewReviewRepository(db)

	sessions := redisstore.NewSessionStore(rdb, cfg.TokenTTL)

	// --- Services ---
	accountService := service.NewAccountService(userRepo, sessions, audit, cfg.JWTSecret, cfg.TokenTTL, log)
	listingService := service.NewListingService(listingRepo, userRepo, audit, log)
	bookingService := service.NewBookingService(bookingRepo, listingRepo, userRepo, audit, log)
	reviewService := service.NewReviewService(reviewRepo, listingRepo, userRepo, audit, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(accountService)
	userHandler := handler.NewUserHandler(accountService)
	listingHandler := handler.NewListingHandler(listingService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMiddleware := middleware.Auth(cfg.JWTSecret, sessions, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/users/me", userHandler.Me)
	v1.PUT("/users/me", userHandler.Update)

	v1.POST("/listings", listingHandler.Create)
	v1.GET("/listings", listingHandler.List)
	v1.GET("/listings/:id", listingHandler.Get)
	v1.PUT("/listings/:id", listingHandler.Update)

	v1.POST("/bookings", bookingHandler.Create)
	v1.GET("/bookings", bookingHandler.ListMine)
	v1.GET("/listings/:id/bookings", bookingHandler.ListForListing)

	v1.POST("/listings/:id/reviews", reviewHandler.Create)
	v1.GET("/listings/:id/reviews", reviewHandler.ListForListing)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
