package models

import "github.com/shopspring/decimal"

// Holding es la posición neta de un usuario en una criptomoneda.
// Es un valor derivado: se recalcula en cada lectura y nunca se persiste.
type Holding struct {
	Symbol   string          `json:"crypto_symbol"`
	Name     string          `json:"crypto_name"`
	Amount   decimal.Decimal `json:"amount"`
	Invested decimal.Decimal `json:"invested"`
}

// EnrichedHolding es una posición valorada con la cotización actual
type EnrichedHolding struct {
	Symbol            string          `json:"crypto_symbol"`
	Name              string          `json:"crypto_name"`
	Amount            decimal.Decimal `json:"amount"`
	AverageBuyPrice   decimal.Decimal `json:"average_buy_price"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	Invested          decimal.Decimal `json:"invested"`
	CurrentValue      decimal.Decimal `json:"current_value"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
	Change24h         decimal.Decimal `json:"change_24h"`
}

// PortfolioSnapshot es el resumen completo del portafolio de un usuario
type PortfolioSnapshot struct {
	Holdings               []EnrichedHolding `json:"holdings"`
	TotalValue             decimal.Decimal   `json:"total_value"`
	TotalInvested          decimal.Decimal   `json:"total_invested"`
	TotalProfitLoss        decimal.Decimal   `json:"total_profit_loss"`
	TotalProfitLossPercent decimal.Decimal   `json:"total_profit_loss_percent"`
}

// AllocationEntry es el peso de una criptomoneda dentro del portafolio
type AllocationEntry struct {
	Symbol     string          `json:"crypto_symbol"`
	Name       string          `json:"crypto_name"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}
