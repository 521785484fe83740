package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kryptofolio/KryptoFolio_Api/internal/portfolio"
	"github.com/pkg/errors"
)

// GetPortfolio obtiene el resumen del portafolio del usuario: tenencias
// valoradas con la cotización actual y totales de inversión y ganancia
func GetPortfolio(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	snapshot, err := portfolioService.GetPortfolio(userID)
	if err != nil {
		respondPortfolioError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetPerformance obtiene las transacciones en orden cronológico para la serie temporal
func GetPerformance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := portfolioService.GetPerformanceHistory(userID)
	if err != nil {
		respondPortfolioError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"performance": history})
}

// GetTopPerformers obtiene las tenencias con mejor rendimiento porcentual
func GetTopPerformers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limitStr := c.DefaultQuery("limit", "")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		limit = portfolio.DefaultTopPerformersLimit
	}

	performers, err := portfolioService.GetTopPerformers(userID, limit)
	if err != nil {
		respondPortfolioError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topPerformers": performers})
}

// GetAllocation obtiene la distribución porcentual del portafolio
func GetAllocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	allocation, err := portfolioService.GetAllocation(userID)
	if err != nil {
		respondPortfolioError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}

// respondPortfolioError traduce los errores del servicio de portafolio a HTTP.
// Una falla de almacenamiento se responde como indisponibilidad temporal, sin
// detalles internos.
func respondPortfolioError(c *gin.Context, err error) {
	logger.Errorf("Error en el servicio de portafolio: %v", err)

	if errors.Is(err, portfolio.ErrStorageUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Servicio temporalmente no disponible"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al calcular el portafolio"})
}
