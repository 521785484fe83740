package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kryptofolio/KryptoFolio_Api/internal/middleware"
)

func RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")

	// Rutas de autenticación
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.Register)
		auth.POST("/login", middleware.Login)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.Me)
		auth.POST("/logout", middleware.AuthMiddleware(), middleware.Logout)
	}

	// Rutas protegidas de transacciones
	transactions := api.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware())
	{
		transactions.GET("", middleware.GetTransactions)
		transactions.POST("", middleware.CreateTransaction)
		transactions.GET("/stats", middleware.GetTransactionStats)
		transactions.GET("/:id", middleware.GetTransaction)
		transactions.PUT("/:id", middleware.UpdateTransaction)
		transactions.DELETE("/:id", middleware.DeleteTransaction)
	}

	// Rutas protegidas del portafolio
	portfolio := api.Group("/portfolio")
	portfolio.Use(middleware.AuthMiddleware())
	{
		portfolio.GET("", middleware.GetPortfolio)
		portfolio.GET("/performance", middleware.GetPerformance)
		portfolio.GET("/top-performers", middleware.GetTopPerformers)
		portfolio.GET("/allocation", middleware.GetAllocation)
	}

	// Precios: lectura pública, refresco manual protegido
	prices := api.Group("/prices")
	{
		prices.GET("", middleware.GetPrices)
		prices.GET("/:symbol", middleware.GetPrice)
		prices.POST("/refresh", middleware.AuthMiddleware(), middleware.RefreshPrices)
	}

	// Datos de mercado públicos
	market := api.Group("/market")
	{
		market.GET("/top", middleware.GetTopCryptos)
		market.GET("/search", middleware.SearchCryptos)
		market.GET("/trending", middleware.GetTrendingCryptos)
		market.GET("/global", middleware.GetGlobalMarketData)
	}
}
