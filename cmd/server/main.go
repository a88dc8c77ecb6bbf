package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	accountingapp "github.com/nexa-erp/backend/internal/application/accounting"
	insightsapp "github.com/nexa-erp/backend/internal/application/insights"
	inventoryapp "github.com/nexa-erp/backend/internal/application/inventory"
	taxfilingapp "github.com/nexa-erp/backend/internal/application/taxfiling"
	"github.com/nexa-erp/backend/internal/domain/accounting"
	"github.com/nexa-erp/backend/internal/domain/insights"
	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/infrastructure/cache"
	"github.com/nexa-erp/backend/internal/infrastructure/config"
	"github.com/nexa-erp/backend/internal/infrastructure/event"
	"github.com/nexa-erp/backend/internal/infrastructure/logger"
	"github.com/nexa-erp/backend/internal/infrastructure/persistence"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting consistency engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	journalEntryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRecordRepository(db.DB)

	chart := accounting.DefaultChartPolicy()
	financeAggregates := persistence.NewGormFinanceAggregates(db.DB, chart)

	// KPI snapshot cache: redis when configured, in-memory otherwise
	var snapshotCache insights.SnapshotCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		snapshotCache = cache.NewRedisSnapshotCache(redisClient, "")
		log.Info("Redis snapshot cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		snapshotCache = cache.NewInMemorySnapshotCache()
	}

	// Event bus and subscribers
	bus := event.NewBus(log)

	directory := accountingapp.NewAccountDirectory(accountRepo)
	poster := accountingapp.NewPostingService(journalEntryRepo, directory, log)
	costFraction := decimal.NewFromFloat(cfg.Ledger.CostFraction)

	stockLedger := inventoryapp.NewStockLedgerService(productRepo, movementRepo, bus, log)
	kpiService := insightsapp.NewKPIService(financeAggregates, snapshotCache, insightsapp.KPIServiceConfig{
		CacheTTL:        cfg.Insights.CacheTTL,
		ShortWindowDays: cfg.Insights.ShortWindowDays,
		LongWindowDays:  cfg.Insights.LongWindowDays,
	}, log)

	subscribers := []shared.EventHandler{
		accountingapp.NewSaleProcessedHandler(poster, chart, costFraction, log),
		accountingapp.NewStockMovementHandler(poster, chart, log),
		accountingapp.NewPayrollComputedHandler(poster, chart, log),
		accountingapp.NewPayrollPaidHandler(poster, chart, log),
		accountingapp.NewInvoiceCollectedHandler(poster, chart, log),
		accountingapp.NewExpenseRecordedHandler(poster, chart, log),
		inventoryapp.NewSaleProcessedHandler(stockLedger, log),
		inventoryapp.NewPurchaseReceivedHandler(stockLedger, log),
		taxfilingapp.NewDocumentIssuedHandler(periodRepo, log),
		insightsapp.NewInvalidationHandler(kpiService, log),
	}
	for _, subscriber := range subscribers {
		bus.Subscribe(subscriber)
	}
	log.Info("Event handlers registered", zap.Int("handler_count", len(subscribers)))

	// HTTP surface: health plus the read-only KPI view
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", healthHandler(db))
	engine.GET("/api/v1/insights/kpi", kpiHandler(kpiService, log))

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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

// kpiHandler serves the cached KPI snapshot for the tenant named in the
// X-Tenant-ID header.
func kpiHandler(service *insightsapp.KPIService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := uuid.Parse(c.GetHeader("X-Tenant-ID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid X-Tenant-ID header"})
			return
		}

		snapshot, err := service.Get(c.Request.Context(), tenantID)
		if err != nil {
			log.Error("kpi snapshot failed", zap.Error(err), zap.String("tenant_id", tenantID.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute indicators"})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}
