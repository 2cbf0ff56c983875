package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-api/internal/api/handler"
	"github.com/workpulse/attendance-api/internal/api/middleware"
	"github.com/workpulse/attendance-api/internal/core/service"
	"github.com/workpulse/attendance-api/internal/infrastructure/db/postgres"
	redisdb "github.com/workpulse/attendance-api/internal/infrastructure/db/redis"
	"github.com/workpulse/attendance-api/internal/infrastructure/http/handlers"
)

// Config carries the router's tunables.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *postgres.Database, rdb *redis.Client, cfg Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("attendance"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)

	var reportCache service.ReportCache
	if rdb != nil {
		reportCache = redisdb.NewReportCache(rdb)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	attendanceService := service.NewAttendanceService(attendanceRepo, reportCache, log)

	authHandler := handler.NewAuthHandler(authService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- API routes ---
	e.POST("/api/auth/login", authHandler.Login)

	attendance := e.Group("/api/attendance", authMiddleware)
	attendance.POST("/checkin", attendanceHandler.CheckIn)
	attendance.POST("/checkout", attendanceHandler.CheckOut)
	attendance.GET("/history", attendanceHandler.History)

	// Auth runs before the admin gate; AdminOnly never sees an
	// unauthenticated request.
	admin := e.Group("/api/admin", authMiddleware, middleware.AdminOnly())
	admin.GET("/attendance", attendanceHandler.AdminReport)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
