package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LokeshN1/bill-master/internal/config"
	domainRepo "github.com/LokeshN1/bill-master/internal/domain/repository"
	"github.com/LokeshN1/bill-master/internal/presentation/http/handler"
	"github.com/LokeshN1/bill-master/internal/presentation/http/middleware"
	"github.com/LokeshN1/bill-master/pkg/logger"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Item    *handler.ItemHandler
	Table   *handler.TableHandler
	Bill    *handler.BillHandler
	Info    *handler.InfoHandler
	Session *handler.SessionHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(logger.GinLogger())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())
		v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

		registerMenuRoutes(v1, h)
		registerTableRoutes(v1, h)
		registerBillRoutes(v1, h)
		registerInfoRoutes(v1, h)
		registerSessionRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerMenuRoutes(v1 *gin.RouterGroup, h *Handlers) {
	items := v1.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
	}
}

func registerTableRoutes(v1 *gin.RouterGroup, h *Handlers) {
	tables := v1.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.POST("", h.Table.Create)
		tables.POST("/bulk", h.Table.BulkCreate)
		tables.GET("/next-number", h.Table.NextNumber)
		tables.GET("/:id", h.Table.Get)
		tables.PUT("/:id", h.Table.Update)
		tables.DELETE("/:id", h.Table.Delete)
	}
}

func registerBillRoutes(v1 *gin.RouterGroup, h *Handlers) {
	bills := v1.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/:id", h.Bill.Get)
		bills.DELETE("/:id", h.Bill.Delete)
	}
}

func registerInfoRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/info", h.Info.Get)
	v1.PUT("/info", h.Info.Update)
}

func registerSessionRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", h.Session.Open)
		sessions.GET("/:id", h.Session.Get)
		sessions.DELETE("/:id", h.Session.Close)
		sessions.GET("/:id/tables", h.Session.Tables)
		sessions.POST("/:id/table", h.Session.SelectTable)
		sessions.POST("/:id/items", h.Session.AddItem)
		sessions.DELETE("/:id/items/:itemId", h.Session.RemoveItem)
		sessions.POST("/:id/save", h.Session.Save)
		sessions.POST("/:id/clear", h.Session.Clear)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printers := v1.Group("/printer")
	{
		printers.GET("/status", h.Printer.GetStatus)
		printers.POST("/test", h.Printer.TestPrint)
		printers.POST("/print", h.Printer.PrintReceipt)
	}
}
