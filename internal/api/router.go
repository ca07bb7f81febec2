package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cargotrack/cargo-api/internal/api/handler"
	"github.com/cargotrack/cargo-api/internal/api/middleware"
	"github.com/cargotrack/cargo-api/internal/core/service"
	mongodb "github.com/cargotrack/cargo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cargotrack/cargo-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("cargo"))

	// --- Dependencies ---
	shipmentRepo := mongodb.NewShipmentRepository(db)
	recentCache := redisdb.NewRecentCache(rdb)
	shipmentService := service.NewShipmentService(shipmentRepo, recentCache, log)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, jwtSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	// --- Root banner ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Cargo Management System backend")
	})

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/signup", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.GET("/api/register", authHandler.RegisterProbe)
	e.GET("/api/signup", authHandler.SignupProbe)
	e.GET("/api/profile", authHandler.Profile, middleware.Auth(jwtSecret))

	// --- Shipment routes ---
	// Static segments before the parameterised ones so /recent and /find
	// are never swallowed by /:identifier.
	e.POST("/api/shipments", shipmentHandler.Create)
	e.GET("/api/shipments", shipmentHandler.List)
	e.GET("/api/shipments/recent", shipmentHandler.Recent)
	e.GET("/api/shipments/find/:identifier", shipmentHandler.Find)
	e.PATCH("/api/shipments/:identifier", shipmentHandler.Update)
	e.DELETE("/api/shipments/:identifier", shipmentHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
