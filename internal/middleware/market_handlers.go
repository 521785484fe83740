package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetTopCryptos obtiene las criptomonedas con mayor capitalización de mercado
func GetTopCryptos(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 || limit > 250 {
		limit = 100
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}

	coins, err := geckoClient.TopCryptos(limit, page)
	if err != nil {
		logger.Errorf("Error al obtener el top de criptomonedas: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudieron obtener los datos de mercado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(coins),
		"cryptos": coins,
	})
}

// SearchCryptos busca criptomonedas por nombre o símbolo
func SearchCryptos(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro query es obligatorio"})
		return
	}

	results, err := geckoClient.Search(query)
	if err != nil {
		logger.Errorf("Error al buscar criptomonedas: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo realizar la búsqueda"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

// GetTrendingCryptos obtiene las criptomonedas en tendencia
func GetTrendingCryptos(c *gin.Context) {
	coins, err := geckoClient.Trending()
	if err != nil {
		logger.Errorf("Error al obtener las tendencias: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudieron obtener las tendencias"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trending": coins})
}

// GetGlobalMarketData obtiene los datos globales del mercado
func GetGlobalMarketData(c *gin.Context) {
	data, err := geckoClient.GlobalMarketData()
	if err != nil {
		logger.Errorf("Error al obtener los datos globales: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudieron obtener los datos globales"})
		return
	}

	c.JSON(http.StatusOK, data)
}
