package router

import (
	"stockward/internal/admission"
	"stockward/internal/alert"
	"stockward/internal/config"
	"stockward/internal/handler"
	"stockward/internal/infra"
	"stockward/internal/middleware"
	"stockward/internal/repository"
	"stockward/internal/service"
	"stockward/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// sync service, which the caller also drives from the background drain loop.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	webhookCB *infra.CircuitBreaker,
	alerts *alert.Dispatcher,
	evaluator *alert.Evaluator,
	limiter *admission.Limiter,
) (*gin.Engine, service.SyncService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	monitor := middleware.NewMonitor(evaluator, alerts)

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(limiter))
	r.Use(monitor.Handler())

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	stockRepo := repository.NewStockRepository(db)
	inboundRepo := repository.NewInboundRepository(db)
	outboundRepo := repository.NewOutboundRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	logRepo := repository.NewOperationLogRepository(db)
	syncRepo := repository.NewSyncQueueRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ledgerSvc := service.NewStockLedger(
		stockRepo, inboundRepo, outboundRepo, transferRepo, logRepo, productRepo,
		evaluator, alerts, cache,
	)
	querySvc := service.NewStockQueryService(stockRepo, cache, cfg.CacheTTL())
	syncSvc := service.NewSyncService(syncRepo, ledgerSvc, worker.NewDLQ(rdb))

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(productRepo, warehouseRepo, supplierRepo)
	ledgerH := handler.NewLedgerHandler(ledgerSvc)
	stockH := handler.NewStockHandler(querySvc, cfg.ExpiryWarningDays)
	syncH := handler.NewSyncHandler(syncSvc, syncRepo)
	logsH := handler.NewLogsHandler(logRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, webhookCB))
	r.POST("/v1/auth/login", authH.Login)

	// Protected routes. Roles: admin, warehouse, finance — declared per-endpoint.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog — reads open to all roles, writes admin only
		v1.GET("/products", catalogH.ListProducts)
		v1.GET("/products/:id", catalogH.GetProduct)
		v1.POST("/products", middleware.RequireRole("admin"), catalogH.CreateProduct)
		v1.POST("/products/scan", middleware.RequireRole("admin", "warehouse"), catalogH.ScanBarcode)

		v1.GET("/warehouses", catalogH.ListWarehouses)
		v1.POST("/warehouses", middleware.RequireRole("admin"), catalogH.CreateWarehouse)

		v1.GET("/suppliers", catalogH.ListSuppliers)
		v1.POST("/suppliers", middleware.RequireRole("admin"), catalogH.CreateSupplier)

		// Ledger mutations — warehouse staff and admins
		ledger := v1.Group("/stock", middleware.RequireRole("admin", "warehouse"))
		{
			ledger.POST("/inbound", ledgerH.Inbound)
			ledger.POST("/outbound", ledgerH.Outbound)
			ledger.POST("/transfer", ledgerH.Transfer)
		}

		// Stock reads and warning reports
		v1.GET("/stock/product/:product_id", stockH.ProductStock)
		v1.GET("/stock/warnings", stockH.Warnings)
		v1.GET("/stock/expiry-warnings", stockH.ExpiryWarnings)

		// Offline sync queue
		sync := v1.Group("/sync", middleware.RequireRole("admin", "warehouse"))
		{
			sync.POST("/enqueue", syncH.Enqueue)
			sync.POST("/process", syncH.Process)
			sync.GET("/status", syncH.Status)
		}

		// Audit trail — admins and finance
		v1.GET("/logs", middleware.RequireRole("admin", "finance"), logsH.List)
	}

	return r, syncSvc
}
