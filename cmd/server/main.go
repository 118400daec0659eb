package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/hotelops/backend/internal/application/catalog"
	inventoryapp "github.com/hotelops/backend/internal/application/inventory"
	partnerapp "github.com/hotelops/backend/internal/application/partner"
	procurementapp "github.com/hotelops/backend/internal/application/procurement"
	reportingapp "github.com/hotelops/backend/internal/application/reporting"
	"github.com/hotelops/backend/internal/domain/shared/service"
	"github.com/hotelops/backend/internal/infrastructure/auth"
	"github.com/hotelops/backend/internal/infrastructure/cache"
	"github.com/hotelops/backend/internal/infrastructure/config"
	"github.com/hotelops/backend/internal/infrastructure/event"
	"github.com/hotelops/backend/internal/infrastructure/logger"
	"github.com/hotelops/backend/internal/infrastructure/persistence"
	"github.com/hotelops/backend/internal/infrastructure/scheduler"
	"github.com/hotelops/backend/internal/interfaces/http/handler"
	"github.com/hotelops/backend/internal/interfaces/http/middleware"
	"github.com/hotelops/backend/internal/interfaces/http/router"
)

//	@title			HotelOps Backend API
//	@version		1.0
//	@description	Hotel group inventory, procurement and leakage reconciliation API

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting HotelOps Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	hotelRepo := persistence.NewGormHotelRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	balanceRepo := persistence.NewGormStockBalanceRepository(db.DB)
	issuanceRepo := persistence.NewGormIssuanceRecordRepository(db.DB)
	stockRequestRepo := persistence.NewGormStockRequestRepository(db.DB)
	procurementRequestRepo := persistence.NewGormProcurementRequestRepository(db.DB)
	procurementOrderRepo := persistence.NewGormProcurementOrderRepository(db.DB)
	procurementBillRepo := persistence.NewGormProcurementBillRepository(db.DB)
	consumptionRepo := persistence.NewGormConsumptionRecordRepository(db.DB)
	expectedRepo := persistence.NewGormExpectedConsumptionRepository(db.DB)
	alertRepo := persistence.NewGormLeakageAlertRepository(db.DB)

	txScope := persistence.NewGormTransactionScope(db.DB)
	receiptScope := persistence.NewGormReceiptScope(db.DB)
	conversion := service.NewUnitConversionService()

	// Event bus and projector
	eventBus := event.NewInMemoryEventBus(log)
	projector := reportingapp.NewExpectedConsumptionProjector(expectedRepo, recipeRepo, itemRepo, log)
	eventBus.Subscribe(projector, projector.EventTypes()...)

	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	if err := eventBus.Start(busCtx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	itemService := catalogapp.NewItemService(itemRepo, log)
	recipeService := catalogapp.NewRecipeService(recipeRepo, itemRepo, log)
	hotelService := partnerapp.NewHotelService(hotelRepo, log)
	vendorService := partnerapp.NewVendorService(vendorRepo, log)
	ledgerService := inventoryapp.NewStockLedgerService(balanceRepo, conversion, log)
	issuanceService := inventoryapp.NewIssuanceService(txScope, itemRepo, hotelRepo, conversion, log)
	stockRequestService := inventoryapp.NewStockRequestService(stockRequestRepo, itemRepo, hotelRepo, log)
	procurementService := procurementapp.NewProcurementService(
		procurementRequestRepo, procurementOrderRepo, procurementBillRepo,
		itemRepo, vendorRepo, hotelRepo, receiptScope, conversion, log)
	consumptionService := reportingapp.NewConsumptionService(
		consumptionRepo, expectedRepo, issuanceRepo, itemRepo, hotelRepo, conversion, log)
	reconciliationService := reportingapp.NewReconciliationService(
		issuanceRepo, consumptionRepo, expectedRepo, alertRepo, itemRepo, hotelRepo, log)

	itemService.SetEventPublisher(eventBus)
	recipeService.SetEventPublisher(eventBus)
	ledgerService.SetEventPublisher(eventBus)
	issuanceService.SetEventPublisher(eventBus)
	stockRequestService.SetEventPublisher(eventBus)
	procurementService.SetEventPublisher(eventBus)
	consumptionService.SetEventPublisher(eventBus)
	reconciliationService.SetEventPublisher(eventBus)

	// Report cache
	var reportCache cache.ReportCache
	if cfg.Cache.Enabled {
		factory := cache.NewReportCacheFactory(cfg.Redis, cache.WithLogger(log))
		reportCache, err = factory.Create()
		if err != nil {
			log.Warn("Report cache disabled", zap.Error(err))
		} else {
			defer func() {
				if err := reportCache.Close(); err != nil {
					log.Error("Error closing report cache", zap.Error(err))
				}
			}()
		}
	}

	// Alert sweep scheduler
	var sweepScheduler *scheduler.AlertSweepScheduler
	if cfg.Scheduler.Enabled {
		sweepScheduler = scheduler.NewAlertSweepScheduler(scheduler.AlertSweepConfig{
			Enabled:     cfg.Scheduler.Enabled,
			SweepHour:   cfg.Scheduler.SweepHour,
			SweepMinute: cfg.Scheduler.SweepMinute,
			JobTimeout:  cfg.Scheduler.JobTimeout,
		}, reconciliationService, log)
		if err := sweepScheduler.Start(busCtx); err != nil {
			log.Fatal("Failed to start alert sweep scheduler", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/health", healthHandler(db))

	// Handlers
	itemHandler := handler.NewItemHandler(itemService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	hotelHandler := handler.NewHotelHandler(hotelService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	ledgerHandler := handler.NewStockLedgerHandler(ledgerService)
	issuanceHandler := handler.NewIssuanceHandler(issuanceService)
	stockRequestHandler := handler.NewStockRequestHandler(stockRequestService)
	procurementHandler := handler.NewProcurementHandler(procurementService)
	consumptionHandler := handler.NewConsumptionHandler(consumptionService)
	reportHandler := handler.NewReportHandler(reconciliationService, reportCache, cfg.Cache.ReportTTL, log)

	var sweepTrigger handler.SweepTrigger
	if sweepScheduler != nil {
		sweepTrigger = sweepScheduler
	}
	alertHandler := handler.NewAlertHandler(reconciliationService, sweepTrigger)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
	}))
	r.Register(
		itemHandler,
		recipeHandler,
		hotelHandler,
		vendorHandler,
		ledgerHandler,
		issuanceHandler,
		stockRequestHandler,
		procurementHandler,
		consumptionHandler,
		reportHandler,
		alertHandler,
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if sweepScheduler != nil {
		if err := sweepScheduler.Stop(ctx); err != nil {
			log.Error("Error stopping alert sweep scheduler", zap.Error(err))
		}
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database connectivity
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
