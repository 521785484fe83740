package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote es la última cotización conocida de una criptomoneda.
// Hay como máximo una fila viva por símbolo (upsert).
type PriceQuote struct {
	Symbol      string          `json:"crypto_symbol"`
	Name        string          `json:"crypto_name"`
	PriceEUR    decimal.Decimal `json:"price_eur"`
	PriceUSD    decimal.Decimal `json:"price_usd"`
	MarketCap   decimal.Decimal `json:"market_cap"`
	Volume24h   decimal.Decimal `json:"volume_24h"`
	Change24h   decimal.Decimal `json:"change_24h"`
	LastUpdated time.Time       `json:"last_updated"`
}
