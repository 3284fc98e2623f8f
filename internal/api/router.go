package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/aidtrack/dashboard-api/docs"
	"github.com/aidtrack/dashboard-api/internal/api/handler"
	"github.com/aidtrack/dashboard-api/internal/api/middleware"
	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
	"github.com/aidtrack/dashboard-api/internal/core/service"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/backend"
	mongodb "github.com/aidtrack/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/aidtrack/dashboard-api/internal/infrastructure/db/redis"
	"github.com/aidtrack/dashboard-api/internal/infrastructure/session"
	"github.com/aidtrack/dashboard-api/internal/pkg/config"
	"github.com/aidtrack/dashboard-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	mongoClient *mongo.Client,
	db *mongo.Database,
	rdb *redis.Client,
	audit ports.AuditRecorder,
) *echo.Echo {
	log := logger.Get()
	routes := cfg.RouteTable()
	secure := cfg.IsProduction()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("aidtrack"))

	// --- Dependencies ---
	client := backend.New(cfg.Backend.URL, cfg.Backend.Timeout, log)
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL, log)
	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
	cooldown := redisdb.NewCooldown(rdb, cfg.ScanCooldown)
	auditRepo := mongodb.NewAuditRepository(db)
	gate := handler.NewSessionGate(sessions, codec, routes, secure)

	authService := service.NewAuthService(client, sessions, routes, backend.Detail, audit, log)
	citizenService := service.NewCitizenService(client, log)
	distributorService := service.NewDistributorService(client, cooldown, audit, log)
	officialService := service.NewOfficialService(client, log)
	adminService := service.NewAdminService(client, auditRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService, codec, secure)
	citizenHandler := handler.NewCitizenHandler(citizenService, gate)
	distributorHandler := handler.NewDistributorHandler(distributorService, gate)
	officialHandler := handler.NewOfficialHandler(officialService, gate)
	adminHandler := handler.NewAdminHandler(adminService, gate)
	viewHandler := handler.NewViewHandler()
	healthHandler := handler.NewHealthHandler(mongoClient, rdb)

	// --- Session resolution runs on every page and API route ---
	resolve := middleware.ResolveSession(codec, sessions, log)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login, resolve)
	e.POST("/auth/logout", authHandler.Logout, resolve)
	e.GET(routes.Login(), viewHandler.LoginView, resolve)

	// --- Role landing pages, each behind its guard ---
	e.GET(routes.For(domain.RoleCitizen), viewHandler.Bootstrap("citizen"),
		resolve, middleware.Guard(domain.RoleCitizen, routes))
	e.GET(routes.For(domain.RoleDistributor), viewHandler.Bootstrap("distributor"),
		resolve, middleware.Guard(domain.RoleDistributor, routes))
	e.GET(routes.For(domain.RoleOfficial), viewHandler.Bootstrap("official"),
		resolve, middleware.Guard(domain.RoleOfficial, routes))
	e.GET(routes.For(domain.RoleAdmin), viewHandler.Bootstrap("admin"),
		resolve, middleware.Guard(domain.RoleAdmin, routes))

	// --- Role data APIs ---
	citizen := e.Group("/api/citizen", resolve, middleware.Guard(domain.RoleCitizen, routes))
	citizen.GET("/shipments", citizenHandler.Shipments)
	citizen.POST("/feedback", citizenHandler.SubmitFeedback)

	distributor := e.Group("/api/distributor", resolve, middleware.Guard(domain.RoleDistributor, routes))
	distributor.GET("/overview", distributorHandler.Overview)
	distributor.POST("/scan", distributorHandler.Scan)

	official := e.Group("/api/official", resolve, middleware.Guard(domain.RoleOfficial, routes))
	official.GET("/summary", officialHandler.Summary)

	admin := e.Group("/api/admin", resolve, middleware.Guard(domain.RoleAdmin, routes))
	admin.GET("/users", adminHandler.Users)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PATCH("/users/:id/active", adminHandler.SetUserActive)
	admin.GET("/shipments", adminHandler.Shipments)
	admin.POST("/shipments/assign", adminHandler.AssignShipment)
	admin.GET("/logs", adminHandler.Logs)
	admin.GET("/reports/shipments", adminHandler.Report)
	admin.GET("/settings", adminHandler.Settings)
	admin.PUT("/settings", adminHandler.SaveSettings)
	admin.GET("/activity", adminHandler.Activity)

	// --- Operational surface ---
	e.GET("/healthz", healthHandler.Live)
	e.GET("/readyz", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
