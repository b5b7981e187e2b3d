package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/MikeMC777/ordenes-storefront/docs"
	"github.com/MikeMC777/ordenes-storefront/internal/app"
	"github.com/MikeMC777/ordenes-storefront/internal/httpx"
	"github.com/MikeMC777/ordenes-storefront/internal/logging"
	"github.com/MikeMC777/ordenes-storefront/internal/metrics"
)

func newRouter(a *app.App, reg *prometheus.Registry, logger *zap.Logger) *gin.Engine {
	logger = logging.OrNop(logger)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestID())
	r.Use(httpx.Logger(logger))
	r.Use(httpx.Metrics(metrics.NewServerMetrics(reg, "gateway")))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(metrics.Handler(reg)))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	products := api.Group("/products", forwardToken())
	{
		products.GET("", listProductsHandler(a.Catalog, logger))
		products.GET("/categories", categoriesHandler(a.Catalog, logger))
		products.GET("/:id", productDetailHandler(a.Catalog, logger))
	}

	orders := api.Group("/orders", requireUser(a.API.Me, logger))
	{
		orders.POST("", placeOrderHandler(a.Catalog, a.Submitter, logger))
		orders.GET("", listOrdersHandler(a.API, a.Coordinator, logger))
		orders.GET("/:id", getOrderHandler(a.API, a.Coordinator, logger))
		orders.PUT("/:id/cancel", cancelOrderHandler(a.API, a.Coordinator, logger))
		orders.GET("/:id/events", orderEventsHandler(a.API, a.History, logger))
	}
	return r
}
