package portfolio

import (
	"sort"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
)

// DefaultTopPerformersLimit es el límite aplicado cuando el caller no indica uno
const DefaultTopPerformersLimit = 5

// TopPerformers devuelve hasta limit tenencias ordenadas por porcentaje de
// ganancia descendente. El orden relativo original se conserva en caso de
// empate (orden estable). Un límite negativo se trata como 0.
func TopPerformers(snapshot models.PortfolioSnapshot, limit int) []models.EnrichedHolding {
	if limit < 0 {
		limit = 0
	}
	if len(snapshot.Holdings) == 0 {
		return []models.EnrichedHolding{}
	}

	ranked := make([]models.EnrichedHolding, len(snapshot.Holdings))
	copy(ranked, snapshot.Holdings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProfitLossPercent.GreaterThan(ranked[j].ProfitLossPercent)
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// Allocation devuelve el peso de cada tenencia dentro del portafolio.
// Si el valor total es 0, todos los porcentajes son 0 en vez de fallar la división.
func Allocation(snapshot models.PortfolioSnapshot) []models.AllocationEntry {
	entries := make([]models.AllocationEntry, 0, len(snapshot.Holdings))
	for _, holding := range snapshot.Holdings {
		entries = append(entries, models.AllocationEntry{
			Symbol:     holding.Symbol,
			Name:       holding.Name,
			Value:      holding.CurrentValue,
			Percentage: percentOf(holding.CurrentValue, snapshot.TotalValue),
		})
	}
	return entries
}
