package handler

import (
	"net/http"

	"makonmed/pkg/logger"
	"makonmed/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Catalog Service с использованием Gin
// Чтение каталога публичное (витрина), мутации только для admin и staff
func SetupRoutes(catalogHandler *CatalogHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

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
			"service": "catalog-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	products := router.Group("/products")
	{
		// Витрина: список и карточка товара доступны без аутентификации
		products.GET("", catalogHandler.GetAllProducts)
		products.GET("/:id", catalogHandler.GetProduct)
		products.PATCH("/:id/like", catalogHandler.ToggleLike)

		// Мутации каталога только для админки
		protected := products.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("", authMiddleware.RequireRole("staff", "admin"), catalogHandler.CreateProduct)
			protected.POST("/import", authMiddleware.RequireRole("staff", "admin"), catalogHandler.ImportPriceList)
			protected.PUT("/:id", authMiddleware.RequireRole("staff", "admin"), catalogHandler.UpdateProduct)
			protected.DELETE("/:id", authMiddleware.RequireRole("admin"), catalogHandler.DeleteProduct)
		}
	}

	categories := router.Group("/categories")
	{
		categories.GET("", catalogHandler.GetAllCategories) // Список категорий (кеш Redis)
		categories.GET("/:id", catalogHandler.GetCategory)

		protected := categories.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("", authMiddleware.RequireRole("staff", "admin"), catalogHandler.CreateCategory)
			protected.PUT("/:id", authMiddleware.RequireRole("staff", "admin"), catalogHandler.UpdateCategory)
			protected.DELETE("/:id", authMiddleware.RequireRole("admin"), catalogHandler.DeleteCategory)
		}
	}

	return router
}
