package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/residence/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted under /api/v1.
type Handlers struct {
	Linen        *handlers.LinenHandler
	Parking      *handlers.ParkingHandler
	Bakery       *handlers.BakeryHandler
	Housekeeping *handlers.HousekeepingHandler
	Apartments   *handlers.ApartmentHandler
	Reports      *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares. An
// allowedOrigins entry of "*" allows any origin.
func New(h Handlers, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(corsMiddleware(allowedOrigins))
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	linen := api.Group("/linen")
	linen.GET("/stock", h.Linen.Stock)
	linen.POST("/stock", h.Linen.UpdateStock)
	linen.GET("/kits", h.Linen.Kits)
	linen.GET("/max-kits", h.Linen.MaxKits)
	linen.POST("/kits/assemble", h.Linen.Assemble)
	linen.POST("/kits/issue", h.Linen.Issue)

	parking := api.Group("/parking")
	parking.GET("/stats", h.Parking.AllStats)
	parking.POST("/clients", h.Parking.AddClient)
	parking.PATCH("/clients/:id", h.Parking.UpdateClient)
	parking.DELETE("/clients/:id", h.Parking.RemoveClient)
	parking.POST("/clients/:id/confirm", h.Parking.Confirm)
	parking.GET("/:building/stats", h.Parking.Stats)
	parking.GET("/:building/clients", h.Parking.Clients)

	bakery := api.Group("/bakery")
	bakery.GET("/products", h.Bakery.Products)
	bakery.GET("/orders", h.Bakery.Orders)
	bakery.GET("/orders/today", h.Bakery.PendingToday)
	bakery.GET("/production", h.Bakery.Production)
	bakery.POST("/orders", h.Bakery.AddOrder)
	bakery.PATCH("/orders/:id", h.Bakery.UpdateOrder)
	bakery.DELETE("/orders/:id", h.Bakery.DeleteOrder)
	bakery.POST("/orders/:id/delivered", h.Bakery.MarkDelivered)
	bakery.POST("/orders/:id/payment", h.Bakery.MarkPaid)

	housekeeping := api.Group("/housekeeping")
	housekeeping.GET("", h.Housekeeping.List)
	housekeeping.GET("/stats", h.Housekeeping.Stats)
	housekeeping.GET("/:number", h.Housekeeping.Get)
	housekeeping.PUT("/:number", h.Housekeeping.Update)

	apartments := api.Group("/apartments")
	apartments.GET("", h.Apartments.List)
	apartments.POST("", h.Apartments.Add)
	apartments.GET("/:number/exists", h.Apartments.Exists)
	apartments.DELETE("/:id", h.Apartments.Delete)

	api.POST("/reports/daily", h.Reports.Daily)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", requestid.Get(c)))
	}
}
