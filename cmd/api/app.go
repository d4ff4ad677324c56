package main

import (
	"log/slog"
	"net/http"

	_ "pobackend/api/swagger" // swagger docs
	"pobackend/internal/canonical"
	"pobackend/internal/config"
	"pobackend/internal/handler"
	"pobackend/internal/idgen"
	"pobackend/internal/middleware"
	"pobackend/internal/observability"
	"pobackend/internal/repository"
	"pobackend/internal/service"
	"pobackend/internal/sheets"
	"pobackend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type app struct {
	router  *gin.Engine
	hub     *websocket.Hub
	metrics *observability.Metrics
	orders  service.PurchaseOrderService
}

// newApp wires Repository -> Service -> Handler and builds the router.
// appender may be nil when spreadsheet credentials are not configured.
func newApp(cfg *config.Config, db *gorm.DB, log *slog.Logger, appender sheets.Appender) *app {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := observability.NewMetrics()
	hub := websocket.NewHub(log)
	secret := []byte(cfg.JWTSecret)
	canon := canonical.New(cfg.Collation())
	ids := idgen.NewRandom()

	txManager := repository.NewTransactionManager(db)
	orderRepo := repository.NewPurchaseOrderRepository(db, cfg.CandidateFetchConcurrency)
	auditRepo := repository.NewAuditRepository(db)

	sheetService := service.NewSheetService(service.SheetDeps{
		Appender:  appender,
		Range:     cfg.GoogleSheetRange,
		IDs:       ids,
		Canon:     canon,
		Audit:     auditRepo,
		Recorder:  metrics,
		Publisher: hub,
		Logger:    log,
	})
	var mirror service.SheetService
	if cfg.SheetsMirrorOnCreate && appender != nil {
		mirror = sheetService
	}
	orderService := service.NewPurchaseOrderService(service.PurchaseOrderDeps{
		Orders:        orderRepo,
		Audit:         auditRepo,
		TxManager:     txManager,
		IDs:           ids,
		Canon:         canon,
		Recorder:      metrics,
		Publisher:     hub,
		Mirror:        mirror,
		MirrorTimeout: cfg.RequestTimeout,
		Logger:        log,
	})
	auditService := service.NewAuditService(auditRepo)

	verbose := !cfg.IsProduction()
	orderHandler := handler.NewPurchaseOrderHandler(orderService, sheetService, secret, verbose)
	auditHandler := handler.NewAuditHandler(auditService, secret)
	var pinger handler.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	healthHandler := handler.NewHealthHandler(pinger)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "x-auth-token"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, c, secret)
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	healthHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	return &app{router: router, hub: hub, metrics: metrics, orders: orderService}
}
