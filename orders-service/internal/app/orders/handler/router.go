package handler

import (
	"net/http"

	"makonmed/pkg/logger"
	"makonmed/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Orders Service с использованием Gin
// Корзина и оформление заказа публичные (витрина), управление заказами
// только для админки
func SetupRoutes(orderHandler *OrderHandler, cartHandler *CartHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("orders-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "orders-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cart := router.Group("/cart")
	{
		cart.GET("/:cart_id", cartHandler.GetCart)
		cart.POST("/:cart_id/items", cartHandler.AddItem)
		cart.PUT("/:cart_id/items", cartHandler.SetItem)
		cart.DELETE("/:cart_id/items/:product_id", cartHandler.RemoveItem)
		cart.DELETE("/:cart_id", cartHandler.ClearCart)
	}

	orders := router.Group("/orders")
	{
		// Оформление заказа с витрины без аутентификации
		orders.POST("", orderHandler.SubmitOrder)

		// Управление заказами только для админки
		protected := orders.Group("")
		protected.Use(authMiddleware.Authenticate())
		protected.Use(authMiddleware.RequireRole("staff", "admin"))
		{
			protected.GET("", orderHandler.GetAllOrders)
			protected.GET("/stats", orderHandler.GetOrderStats)
			protected.GET("/:id", orderHandler.GetOrder)
			protected.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
			protected.DELETE("/:id", authMiddleware.RequireRole("admin"), orderHandler.DeleteOrder)
		}
	}

	return router
}
