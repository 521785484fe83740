package portfolio

import (
	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Valuate combina las tenencias con las cotizaciones actuales y produce el
// resumen del portafolio. Un símbolo sin cotización no es un error: se valora
// con precio 0 y cambio 0, lo que se lee como pérdida latente total de lo
// invertido en ese activo. Función pura, segura para llamadas concurrentes.
func Valuate(holdings []models.Holding, quotes map[string]models.PriceQuote) models.PortfolioSnapshot {
	snapshot := models.PortfolioSnapshot{
		Holdings: make([]models.EnrichedHolding, 0, len(holdings)),
	}

	for _, holding := range holdings {
		// El valor cero de PriceQuote ya degrada a precio 0 y cambio 0
		quote := quotes[holding.Symbol]

		currentValue := holding.Amount.Mul(quote.PriceEUR)
		profitLoss := currentValue.Sub(holding.Invested)

		snapshot.Holdings = append(snapshot.Holdings, models.EnrichedHolding{
			Symbol:            holding.Symbol,
			Name:              holding.Name,
			Amount:            holding.Amount,
			AverageBuyPrice:   safeDiv(holding.Invested, holding.Amount),
			CurrentPrice:      quote.PriceEUR,
			Invested:          holding.Invested,
			CurrentValue:      currentValue,
			ProfitLoss:        profitLoss,
			ProfitLossPercent: percentOf(profitLoss, holding.Invested),
			Change24h:         quote.Change24h,
		})

		snapshot.TotalValue = snapshot.TotalValue.Add(currentValue)
		snapshot.TotalInvested = snapshot.TotalInvested.Add(holding.Invested)
	}

	snapshot.TotalProfitLoss = snapshot.TotalValue.Sub(snapshot.TotalInvested)
	snapshot.TotalProfitLossPercent = percentOf(snapshot.TotalProfitLoss, snapshot.TotalInvested)

	return snapshot
}

// safeDiv divide numerador entre denominador, con 0 definido para denominador 0
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// percentOf calcula part/base*100 cuando base > 0; en cualquier otro caso es 0,
// nunca NaN ni división por cero
func percentOf(part, base decimal.Decimal) decimal.Decimal {
	if base.Sign() <= 0 {
		return decimal.Zero
	}
	return part.Div(base).Mul(oneHundred).Round(8)
}
