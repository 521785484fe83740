package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kryptofolio/KryptoFolio_Api/internal/database"
	"github.com/kryptofolio/KryptoFolio_Api/internal/middleware"
	"github.com/kryptofolio/KryptoFolio_Api/internal/repository"
	routes "github.com/kryptofolio/KryptoFolio_Api/internal/server"
	"github.com/kryptofolio/KryptoFolio_Api/internal/services"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	// Logger estructurado global
	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error al inicializar el logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)
	logger := zl.Sugar()

	// Los montos decimales se serializan como números JSON, no como strings
	decimal.MarshalJSONWithoutQuotes = true

	// Crear el router de Gin
	router := gin.Default()

	// Configurar CORS
	config := cors.DefaultConfig()
	origin := os.Getenv("ALLOWED_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	config.AllowOrigins = []string{origin}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	config.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(config))

	// Inicializar base de datos
	if err := database.InitDB(); err != nil {
		logger.Fatalf("Error al inicializar la base de datos: %v", err)
	}
	defer database.DB.Close()

	// Cliente de CoinGecko y dependencias de los handlers
	geckoClient := services.NewCoinGeckoClient(logger)
	middleware.Init(database.DB, geckoClient, logger)

	// Iniciar el servicio de actualización de precios (cada 5 minutos)
	priceRepo := repository.NewPriceRepository(database.DB)
	priceUpdater := services.NewPriceUpdater(geckoClient, priceRepo, logger)
	if err := priceUpdater.Start(); err != nil {
		logger.Fatalf("Error al iniciar el actualizador de precios: %v", err)
	}
	defer priceUpdater.Stop()

	// Hacer disponible el actualizador de precios para los handlers
	middleware.SetPriceUpdater(priceUpdater)

	// Configurar las rutas
	routes.RegisterRoutes(router)

	// Iniciar el servidor
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		logger.Fatalf("Error al iniciar el servidor: %v", err)
	}
}
