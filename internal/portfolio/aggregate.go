package portfolio

import (
	"sort"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/shopspring/decimal"
)

// AggregateHoldings colapsa las transacciones de un usuario en sus tenencias netas.
// Agrupa por símbolo sumando con signo (compra suma, venta resta) la cantidad y el
// total invertido. Las posiciones con cantidad neta <= 0 (totalmente vendidas o
// sobrevendidas) se descartan en silencio: nunca aparecen como filas negativas.
// Es una función pura, sin efectos secundarios.
func AggregateHoldings(transactions []models.Transaction) []models.Holding {
	type position struct {
		name     string
		amount   decimal.Decimal
		invested decimal.Decimal
	}

	positions := make(map[string]*position)
	for _, tx := range transactions {
		pos, ok := positions[tx.Symbol]
		if !ok {
			pos = &position{name: tx.Name}
			positions[tx.Symbol] = pos
		}
		if pos.name == "" {
			pos.name = tx.Name
		}

		switch tx.Type {
		case models.TransactionTypeBuy:
			pos.amount = pos.amount.Add(tx.Amount)
			pos.invested = pos.invested.Add(tx.TotalEUR)
		case models.TransactionTypeSell:
			pos.amount = pos.amount.Sub(tx.Amount)
			pos.invested = pos.invested.Sub(tx.TotalEUR)
		}
	}

	holdings := make([]models.Holding, 0, len(positions))
	for symbol, pos := range positions {
		if pos.amount.Sign() <= 0 {
			continue
		}
		holdings = append(holdings, models.Holding{
			Symbol:   symbol,
			Name:     pos.name,
			Amount:   pos.amount,
			Invested: pos.invested,
		})
	}

	// Orden estable: invertido descendente, símbolo como desempate para que
	// dos lecturas consecutivas produzcan exactamente el mismo resultado
	sort.Slice(holdings, func(i, j int) bool {
		if !holdings[i].Invested.Equal(holdings[j].Invested) {
			return holdings[i].Invested.GreaterThan(holdings[j].Invested)
		}
		return holdings[i].Symbol < holdings[j].Symbol
	})

	return holdings
}
