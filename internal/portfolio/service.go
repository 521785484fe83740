package portfolio

import (
	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/pkg/errors"
)

// ErrStorageUnavailable señala que la lectura del libro de transacciones o de la
// caché de precios falló. Es distinto de una cotización ausente, que es una
// condición normal y degrada la valoración a cero para ese activo.
var ErrStorageUnavailable = errors.New("almacenamiento temporalmente no disponible")

// Ledger son las operaciones de lectura que el servicio necesita del libro de
// transacciones. El servicio nunca escribe en él.
type Ledger interface {
	ListTransactions(userID string) ([]models.Transaction, error)
	ListChronological(userID string) ([]models.Transaction, error)
}

// PriceSource entrega las últimas cotizaciones conocidas por símbolo.
// Los símbolos sin cotización simplemente no aparecen en el mapa.
type PriceSource interface {
	GetQuotes(symbols []string) (map[string]models.PriceQuote, error)
}

// Service expone las operaciones de portafolio hacia los handlers.
// No guarda estado entre llamadas: cada lectura recalcula desde el
// libro de transacciones y la caché de precios.
type Service struct {
	ledger Ledger
	prices PriceSource
}

func NewService(ledger Ledger, prices PriceSource) *Service {
	return &Service{ledger: ledger, prices: prices}
}

// GetPortfolio calcula el resumen completo del portafolio de un usuario
func (s *Service) GetPortfolio(userID string) (models.PortfolioSnapshot, error) {
	transactions, err := s.ledger.ListTransactions(userID)
	if err != nil {
		return models.PortfolioSnapshot{}, errors.Wrap(ErrStorageUnavailable, err.Error())
	}

	holdings := AggregateHoldings(transactions)
	if len(holdings) == 0 {
		// Portafolio vacío: totales en cero, no es un error
		return Valuate(holdings, nil), nil
	}

	symbols := make([]string, len(holdings))
	for i, holding := range holdings {
		symbols[i] = holding.Symbol
	}

	quotes, err := s.prices.GetQuotes(symbols)
	if err != nil {
		return models.PortfolioSnapshot{}, errors.Wrap(ErrStorageUnavailable, err.Error())
	}

	return Valuate(holdings, quotes), nil
}

// GetTopPerformers devuelve las tenencias con mejor rendimiento porcentual
func (s *Service) GetTopPerformers(userID string, limit int) ([]models.EnrichedHolding, error) {
	snapshot, err := s.GetPortfolio(userID)
	if err != nil {
		return nil, err
	}
	return TopPerformers(snapshot, limit), nil
}

// GetAllocation devuelve la distribución porcentual del portafolio
func (s *Service) GetAllocation(userID string) ([]models.AllocationEntry, error) {
	snapshot, err := s.GetPortfolio(userID)
	if err != nil {
		return nil, err
	}
	return Allocation(snapshot), nil
}

// GetPerformanceHistory devuelve las transacciones en orden cronológico
// ascendente, sin transformar, para que la capa de presentación arme la
// serie temporal
func (s *Service) GetPerformanceHistory(userID string) ([]models.Transaction, error) {
	transactions, err := s.ledger.ListChronological(userID)
	if err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return transactions, nil
}
