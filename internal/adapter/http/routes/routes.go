package routes

import (
	"net/http"

	"cremacao_pet/internal/adapter/http/handlers"
	"cremacao_pet/internal/infrastructure/logger"
	"cremacao_pet/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers is every HTTP handler the router mounts.
type Handlers struct {
	Removals      *handlers.RemovalHandler
	Batches       *handlers.CremationBatchHandler
	Stock         *handlers.StockHandler
	Prices        *handlers.PriceTableHandler
	Lotes         *handlers.BillingLoteHandler
	Notifications *handlers.NotificationHandler
}

// NewRouter builds the gin engine. metrics may be nil.
func NewRouter(h Handlers, log *zap.Logger, m *metrics.Prometheus) *gin.Engine {
	router := gin.New()
	router.Use(logger.GinMiddleware(log), logger.Recovery(log))
	if m != nil {
		router.Use(m.GinMiddleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Everything below acts on behalf of a caller.
	api := v1.Group("", handlers.ActorMiddleware())
	addRemovalRoutes(api, h.Removals)
	addCremationRoutes(api, h.Batches, h.Stock)
	addPriceRoutes(api, h.Prices)
	addBillingRoutes(api, h.Lotes)
	addNotificationRoutes(api, h.Notifications)
	return router
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
