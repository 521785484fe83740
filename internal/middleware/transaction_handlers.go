package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/kryptofolio/KryptoFolio_Api/internal/repository"
	"github.com/pkg/errors"
)

// CreateTransaction crea una nueva transacción para el usuario autenticado
func CreateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction := models.NewTransaction(userID, input)
	if err := transactionRepo.Create(&transaction); err != nil {
		logger.Errorf("Error al crear la transacción: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear la transacción"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transacción creada exitosamente",
		"transaction": transaction,
	})
}

// GetTransactions obtiene todas las transacciones del usuario, más reciente primero
func GetTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	transactions, err := transactionRepo.ListTransactions(userID)
	if err != nil {
		logger.Errorf("Error al obtener las transacciones: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las transacciones"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":        len(transactions),
		"transactions": transactions,
	})
}

// GetTransaction obtiene una transacción específica del usuario
func GetTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	transaction, err := transactionRepo.GetByID(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
			return
		}
		logger.Errorf("Error al obtener la transacción: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la transacción"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction actualiza una transacción existente del usuario
func UpdateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Verificar que la transacción exista y pertenezca al usuario
	existing, err := transactionRepo.GetByID(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
			return
		}
		logger.Errorf("Error al obtener la transacción: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la transacción"})
		return
	}

	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// El total se recalcula siempre a partir de los datos nuevos
	updated := models.NewTransaction(userID, input)
	updated.ID = existing.ID

	if err := transactionRepo.Update(&updated); err != nil {
		logger.Errorf("Error al actualizar la transacción: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar la transacción"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transacción actualizada exitosamente",
		"transaction": updated,
	})
}

// DeleteTransaction elimina una transacción del usuario
func DeleteTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := transactionRepo.Delete(userID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
			return
		}
		logger.Errorf("Error al eliminar la transacción: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar la transacción"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transacción eliminada exitosamente"})
}

// GetTransactionStats obtiene las estadísticas de transacciones del usuario
func GetTransactionStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := transactionRepo.Stats(userID)
	if err != nil {
		logger.Errorf("Error al obtener las estadísticas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las estadísticas"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
