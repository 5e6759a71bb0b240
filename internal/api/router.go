package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/immoconnect/listing-api/docs"
	"github.com/immoconnect/listing-api/internal/api/handler"
	"github.com/immoconnect/listing-api/internal/api/middleware"
	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/service"
	"github.com/immoconnect/listing-api/internal/infrastructure/config"
	mongostore "github.com/immoconnect/listing-api/internal/infrastructure/db/mongo"
	redisstore "github.com/immoconnect/listing-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity recorder is constructed in main so its worker pool lifecycle
// is tied to the process context.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
	activity service.ActivityRecorder,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("immoconnect"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	profileRepo := mongostore.NewProfileRepository(db)
	propertyRepo := mongostore.NewPropertyRepository(db)
	eventRepo := mongostore.NewPropertyEventRepository(db)

	tokens := redisstore.NewTokenStore(rdb)
	guard := redisstore.NewMutationGuard(rdb)

	authService := service.NewAuthService(userRepo, profileRepo, tokens, cfg.JWTSecret, cfg.TokenTTL, log)
	catalogueService := service.NewCatalogueService(propertyRepo, log)
	propertyService := service.NewPropertyService(propertyRepo, eventRepo, guard, activity, log)
	reportService := service.NewReportService(propertyRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	catalogueHandler := handler.NewCatalogueHandler(catalogueService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	profileHandler := handler.NewProfileHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)

	requireAuth := middleware.Auth(cfg.JWTSecret, tokens)
	optionalAuth := middleware.AuthOptional(cfg.JWTSecret, tokens)
	agentOnly := middleware.RequireRole(domain.RoleAgent)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/verify", authHandler.Verify)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Public catalogue (anonymous allowed, restricted role gated inside) ---
	e.GET("/v1/properties", catalogueHandler.Browse, optionalAuth)

	// --- Profile ---
	e.GET("/v1/me", profileHandler.Me, requireAuth)

	// --- Owner management (agents only) ---
	mine := e.Group("/v1/my/properties", requireAuth, agentOnly)
	mine.GET("", propertyHandler.ListOwned)
	mine.POST("", propertyHandler.Create)
	mine.GET("/:id/activity", propertyHandler.Activity)
	mine.PATCH("/:id/publish", propertyHandler.SetPublished)
	mine.DELETE("/:id", propertyHandler.Delete)

	// --- Reports (agents only) ---
	e.GET("/v1/reports/cities", reportHandler.CityStatistics, requireAuth, agentOnly)
	e.GET("/v1/reports/quality", reportHandler.Quality, requireAuth, agentOnly)
	e.GET("/v1/exports/properties.csv", reportHandler.ExportCSV, requireAuth, agentOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
