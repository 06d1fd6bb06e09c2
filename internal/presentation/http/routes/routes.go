package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/config"
	domainRepo "github.com/sangkips/billbuddy-api/internal/domain/repository"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/handler"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbuddy-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Ledger  *handler.LedgerHandler
	Billing *handler.BillingHandler
	History *handler.HistoryHandler
	Catalog *handler.CatalogHandler
	Printer *handler.PrinterHandler
	Stream  *handler.LedgerStreamHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Log             *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.WaiterAuthMiddleware(deps.JWTManager))
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	{
		registerCatalogRoutes(v1, h)
		registerTableRoutes(v1, h, deps)
		registerHistoryRoutes(v1, h, deps)
		registerPrinterRoutes(v1, h)

		v1.GET("/ws/ledger", h.Stream.Stream)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/tables", h.Catalog.Tables)
		catalog.PUT("/tables/:id", h.Catalog.SaveTable)
		catalog.GET("/items", h.Catalog.Items)
		catalog.PUT("/items/:id", h.Catalog.SaveItem)
	}
}

func registerTableRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
	})

	tables := v1.Group("/tables")
	{
		tables.GET("/open", h.Ledger.ListOpen)

		tables.GET("/:table_id/order", h.Ledger.Get)
		tables.DELETE("/:table_id/order", h.Ledger.Clear)
		tables.POST("/:table_id/order/items", h.Ledger.AddLine)
		tables.PUT("/:table_id/order/items/:item_id", h.Ledger.SetQuantity)
		tables.DELETE("/:table_id/order/items/:item_id", h.Ledger.RemoveLine)
		tables.PUT("/:table_id/order/adjustments", h.Ledger.SetAdjustments)

		tables.POST("/:table_id/bill", idempotency, h.Billing.FinalizePaid)
		tables.POST("/:table_id/due", idempotency, h.Billing.FinalizeDue)
	}
}

func registerHistoryRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
	})

	v1.GET("/history", h.History.History)
	v1.GET("/analytics", h.History.Analytics)
	v1.GET("/orders/:id/items", h.History.OrderItems)
	v1.GET("/bills/:id", h.History.Bill)

	dues := v1.Group("/dues")
	{
		dues.GET("", h.History.Dues)
		dues.POST("/:id/settle", idempotency, h.Billing.SettleDue)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/printer/status", h.Printer.GetStatus)
	v1.POST("/bills/:id/print", h.Printer.PrintBill)
}
