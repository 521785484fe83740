package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kryptofolio/KryptoFolio_Api/internal/repository"
	"github.com/kryptofolio/KryptoFolio_Api/internal/services"
	"github.com/pkg/errors"
)

// GetPrices obtiene todas las cotizaciones en caché
func GetPrices(c *gin.Context) {
	quotes, err := priceRepo.GetAll()
	if err != nil {
		logger.Errorf("Error al obtener las cotizaciones: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las cotizaciones"})
		return
	}

	response := gin.H{
		"count":  len(quotes),
		"prices": quotes,
	}
	if priceUpdaterInstance != nil {
		response["stale"] = priceUpdaterInstance.IsStale()
	}

	c.JSON(http.StatusOK, response)
}

// GetPrice obtiene la cotización de un símbolo. Si no está en caché, se pide a
// CoinGecko y se guarda antes de responder.
func GetPrice(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	quote, err := priceRepo.GetBySymbol(symbol)
	if err == nil {
		c.JSON(http.StatusOK, quote)
		return
	}

	if !errors.Is(err, repository.ErrQuoteNotFound) {
		logger.Errorf("Error al obtener la cotización de %s: %v", symbol, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la cotización"})
		return
	}

	// No está en caché: pedir a la API y cachear
	fresh, err := geckoClient.FetchSinglePrice(symbol)
	if err != nil {
		if errors.Is(err, services.ErrUnknownSymbol) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Criptomoneda no soportada: " + symbol})
			return
		}
		logger.Errorf("Error al pedir la cotización de %s a CoinGecko: %v", symbol, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo obtener la cotización"})
		return
	}

	if err := priceRepo.Upsert(fresh); err != nil {
		logger.Errorf("Error al guardar la cotización de %s: %v", symbol, err)
	}

	c.JSON(http.StatusOK, fresh)
}

// RefreshPrices fuerza una actualización de todas las cotizaciones
func RefreshPrices(c *gin.Context) {
	updater := priceUpdaterInstance
	if updater == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "El actualizador de precios no está disponible"})
		return
	}

	updated, err := updater.RefreshAll()
	if err != nil {
		logger.Errorf("Error al actualizar los precios: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudieron actualizar los precios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Precios actualizados exitosamente",
		"updated":  updated,
		"last_run": updater.LastRun(),
	})
}
