package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "supplychain-admin/docs"
	"supplychain-admin/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Service is what the handlers need from the core.
type Service interface {
	service.Orders
	service.Deliveries
	service.Integrity
}

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog())

	api := router.Group("/api")
	{
		orders := api.Group("/orders")
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)

		deliveries := api.Group("/deliveries")
		deliveries.GET("", h.ListDeliveries)
		deliveries.POST("", h.CreateDelivery)
		deliveries.GET("/:id", h.GetDelivery)
		deliveries.PUT("/:id", h.UpdateDelivery)
		deliveries.DELETE("/:id", h.DeleteDelivery)

		api.GET("/integrity/links", h.CheckLinks)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
