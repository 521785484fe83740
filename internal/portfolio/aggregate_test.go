package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
)

func mustDecimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func tx(symbol, name, txType, amount, price string) models.Transaction {
	in := models.TransactionInput{
		CryptoSymbol:    symbol,
		CryptoName:      name,
		Amount:          mustDecimal(amount),
		PriceEUR:        mustDecimal(price),
		TransactionType: txType,
		TransactionDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	return models.NewTransaction("user-1", in)
}

func TestAggregateHoldingsNetsBuysAndSells(t *testing.T) {
	transactions := []models.Transaction{
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "2", "20000"),
		tx("BTC", "Bitcoin", models.TransactionTypeSell, "0.5", "20000"),
	}

	holdings := AggregateHoldings(transactions)

	require.Len(t, holdings, 1)
	require.Equal(t, "BTC", holdings[0].Symbol)
	require.Equal(t, "Bitcoin", holdings[0].Name)
	require.True(t, holdings[0].Amount.Equal(mustDecimal("1.5")),
		"cantidad neta: %s", holdings[0].Amount)
	require.True(t, holdings[0].Invested.Equal(mustDecimal("30000")),
		"invertido neto: %s", holdings[0].Invested)
}

func TestAggregateHoldingsDropsClosedPositions(t *testing.T) {
	transactions := []models.Transaction{
		tx("ETH", "Ethereum", models.TransactionTypeBuy, "3", "1000"),
		tx("ETH", "Ethereum", models.TransactionTypeSell, "3", "1200"),
		tx("SOL", "Solana", models.TransactionTypeBuy, "10", "100"),
		// Sobreventa: tampoco debe producir una fila negativa
		tx("ADA", "Cardano", models.TransactionTypeBuy, "100", "0.5"),
		tx("ADA", "Cardano", models.TransactionTypeSell, "150", "0.5"),
	}

	holdings := AggregateHoldings(transactions)

	require.Len(t, holdings, 1)
	require.Equal(t, "SOL", holdings[0].Symbol)
}

func TestAggregateHoldingsEmptyInput(t *testing.T) {
	holdings := AggregateHoldings(nil)
	require.NotNil(t, holdings)
	require.Empty(t, holdings)
}

func TestAggregateHoldingsDeterministicOrder(t *testing.T) {
	transactions := []models.Transaction{
		tx("DOT", "Polkadot", models.TransactionTypeBuy, "10", "50"),
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "0.1", "30000"),
		tx("ETH", "Ethereum", models.TransactionTypeBuy, "1", "3000"),
		tx("AVAX", "Avalanche", models.TransactionTypeBuy, "100", "30"),
	}

	first := AggregateHoldings(transactions)
	second := AggregateHoldings(transactions)

	require.Equal(t, first, second)

	symbols := make([]string, len(first))
	for i, h := range first {
		symbols[i] = h.Symbol
	}
	// BTC, ETH y AVAX empatan con 3000 invertidos: desempata el símbolo ascendente
	require.Equal(t, []string{"AVAX", "BTC", "ETH", "DOT"}, symbols)
}
