package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookingapp "github.com/agency/backend/internal/application/booking"
	financeapp "github.com/agency/backend/internal/application/finance"
	identityapp "github.com/agency/backend/internal/application/identity"
	partnerapp "github.com/agency/backend/internal/application/partner"
	"github.com/agency/backend/internal/domain/identity"
	"github.com/agency/backend/internal/infrastructure/auth"
	"github.com/agency/backend/internal/infrastructure/cache"
	"github.com/agency/backend/internal/infrastructure/config"
	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/agency/backend/internal/infrastructure/persistence"
	"github.com/agency/backend/internal/infrastructure/scheduler"
	"github.com/agency/backend/internal/interfaces/http/handler"
	"github.com/agency/backend/internal/interfaces/http/middleware"
	"github.com/agency/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting agency backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
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
	clientRepo := persistence.NewGormClientRepository(db.DB)
	operatorRepo := persistence.NewGormOperatorRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	travelServiceRepo := persistence.NewGormTravelServiceRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	investmentRepo := persistence.NewGormInvestmentRepository(db.DB)
	operatorDueRepo := persistence.NewGormOperatorDueRepository(db.DB)
	clientDueRepo := persistence.NewGormClientDueRepository(db.DB)
	accountRepo := persistence.NewGormFinanceAccountRepository(db.DB)
	creditRepo := persistence.NewGormCreditAccountRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Report cache (Redis when enabled, in-memory otherwise)
	reportCache, err := cache.NewReportCacheFactory(cfg.Redis, cache.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to create report cache", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	partnerService := partnerapp.NewService(clientRepo, operatorRepo)
	bookingService := bookingapp.NewService(bookingRepo, travelServiceRepo, clientRepo, receiptRepo, investmentRepo)
	receiptService := financeapp.NewReceiptService(receiptRepo)
	investmentService := financeapp.NewInvestmentService(investmentRepo, travelServiceRepo)
	scheduleService := financeapp.NewScheduleService(operatorDueRepo, clientDueRepo)
	accountService := financeapp.NewAccountService(accountRepo, creditRepo)
	cashboxService := financeapp.NewCashboxService(
		receiptRepo, investmentRepo, operatorDueRepo, clientDueRepo, accountRepo, creditRepo,
		financeapp.WithReportCache(reportCache),
	)
	insightsService := financeapp.NewOperatorInsightsService(
		operatorRepo, bookingRepo, travelServiceRepo, receiptRepo, investmentRepo, operatorDueRepo,
	)

	// Nightly cashbox pre-warm (if enabled)
	if cfg.Scheduler.Enabled {
		prewarm := scheduler.NewCashboxPrewarmScheduler(cfg.Scheduler, userRepo, cashboxService, log)
		if err := prewarm.Start(context.Background()); err != nil {
			log.Fatal("Failed to start cashbox pre-warm scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer stopCancel()
			if err := prewarm.Stop(stopCtx); err != nil {
				log.Error("Error stopping cashbox pre-warm scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(partnerService)
	operatorHandler := handler.NewOperatorHandler(partnerService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	investmentHandler := handler.NewInvestmentHandler(investmentService)
	dueHandler := handler.NewDueHandler(scheduleService)
	accountHandler := handler.NewFinanceAccountHandler(accountService)
	reportHandler := handler.NewReportHandler(cashboxService, insightsService)
	systemHandler := handler.NewSystemHandler(db, log)

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

	// Middleware order: request ID first so every later stage can log it.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Probes stay outside the versioned API
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	// Identity
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.GET("/me", authHandler.Me)

	// Partners (clients and tour operators)
	partnerRoutes := router.NewDomainGroup("partner", "")
	partnerRoutes.POST("/clients", clientHandler.Create)
	partnerRoutes.GET("/clients", clientHandler.List)
	partnerRoutes.GET("/clients/:id", clientHandler.GetByID)
	partnerRoutes.PUT("/clients/:id", clientHandler.Update)
	partnerRoutes.DELETE("/clients/:id", clientHandler.Delete)
	partnerRoutes.POST("/operators", operatorHandler.Create)
	partnerRoutes.GET("/operators", operatorHandler.List)
	partnerRoutes.GET("/operators/:id", operatorHandler.GetByID)
	partnerRoutes.PUT("/operators/:id", operatorHandler.Update)
	partnerRoutes.DELETE("/operators/:id", operatorHandler.Delete)

	// Bookings and travel services
	bookingRoutes := router.NewDomainGroup("booking", "/bookings")
	bookingRoutes.POST("", bookingHandler.Create)
	bookingRoutes.GET("", bookingHandler.List)
	bookingRoutes.GET("/:id", bookingHandler.GetByID)
	bookingRoutes.PUT("/:id", bookingHandler.Update)
	bookingRoutes.DELETE("/:id", bookingHandler.Delete)
	bookingRoutes.POST("/:id/convert", bookingHandler.ConvertQuote)
	bookingRoutes.GET("/:id/debt", bookingHandler.Debt)
	bookingRoutes.POST("/:id/services", bookingHandler.AddService)
	bookingRoutes.DELETE("/:id/services/:service_id", bookingHandler.DeleteService)

	// Finance: receipts, investments, dues, accounts, credits
	financeRoutes := router.NewDomainGroup("finance", "")
	financeRoutes.POST("/receipts", receiptHandler.Create)
	financeRoutes.GET("/receipts", receiptHandler.List)
	financeRoutes.GET("/receipts/:id", receiptHandler.GetByID)
	financeRoutes.PUT("/receipts/:id", receiptHandler.Update)
	financeRoutes.DELETE("/receipts/:id", receiptHandler.Delete)
	financeRoutes.POST("/investments", investmentHandler.Create)
	financeRoutes.GET("/investments", investmentHandler.List)
	financeRoutes.GET("/investments/:id", investmentHandler.GetByID)
	financeRoutes.PUT("/investments/:id", investmentHandler.Update)
	financeRoutes.DELETE("/investments/:id", investmentHandler.Delete)
	financeRoutes.POST("/operator-dues", dueHandler.CreateOperatorDue)
	financeRoutes.GET("/operator-dues", dueHandler.ListOperatorDues)
	financeRoutes.PUT("/operator-dues/:id/status", dueHandler.SetOperatorDueStatus)
	financeRoutes.DELETE("/operator-dues/:id", dueHandler.DeleteOperatorDue)
	financeRoutes.POST("/client-dues", dueHandler.CreateClientDue)
	financeRoutes.GET("/client-dues", dueHandler.ListClientDues)
	financeRoutes.PUT("/client-dues/:id/status", dueHandler.SetClientDueStatus)
	financeRoutes.DELETE("/client-dues/:id", dueHandler.DeleteClientDue)
	financeRoutes.POST("/finance-accounts", accountHandler.Create)
	financeRoutes.GET("/finance-accounts", accountHandler.List)
	financeRoutes.GET("/finance-accounts/:id", accountHandler.GetByID)
	financeRoutes.POST("/finance-accounts/:id/opening-balances", accountHandler.AddOpeningBalance)
	financeRoutes.GET("/finance-accounts/:id/opening-balances", accountHandler.ListOpeningBalances)
	financeRoutes.GET("/credit-accounts", accountHandler.ListCreditAccounts)

	// Reports, pro plan only
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.Use(middleware.RequirePlan(identity.PlanPro))
	reportRoutes.GET("/cashbox", reportHandler.Cashbox)
	reportRoutes.GET("/operators/:id", reportHandler.OperatorInsights)

	r.Register(authRoutes)
	r.Register(partnerRoutes)
	r.Register(bookingRoutes)
	r.Register(financeRoutes)
	r.Register(reportRoutes)
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
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
