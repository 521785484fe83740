package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
)

type fakeLedger struct {
	transactions []models.Transaction
	err          error
}

func (f *fakeLedger) ListTransactions(userID string) ([]models.Transaction, error) {
	return f.transactions, f.err
}

func (f *fakeLedger) ListChronological(userID string) ([]models.Transaction, error) {
	return f.transactions, f.err
}

type fakePrices struct {
	quotes map[string]models.PriceQuote
	err    error
	calls  int
}

func (f *fakePrices) GetQuotes(symbols []string) (map[string]models.PriceQuote, error) {
	f.calls++
	return f.quotes, f.err
}

func TestServiceGetPortfolio(t *testing.T) {
	ledger := &fakeLedger{transactions: []models.Transaction{
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "1", "20000"),
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "1", "40000"),
	}}
	prices := &fakePrices{quotes: map[string]models.PriceQuote{
		"BTC": {Symbol: "BTC", PriceEUR: mustDecimal("35000")},
	}}
	service := NewService(ledger, prices)

	snapshot, err := service.GetPortfolio("user-1")

	require.NoError(t, err)
	require.Len(t, snapshot.Holdings, 1)
	require.True(t, snapshot.Holdings[0].AverageBuyPrice.Equal(mustDecimal("30000")))
	require.True(t, snapshot.TotalValue.Equal(mustDecimal("70000")))
	require.True(t, snapshot.TotalInvested.Equal(mustDecimal("60000")))
}

func TestServiceGetPortfolioEmptySkipsQuotes(t *testing.T) {
	ledger := &fakeLedger{}
	prices := &fakePrices{}
	service := NewService(ledger, prices)

	snapshot, err := service.GetPortfolio("user-1")

	require.NoError(t, err)
	require.Empty(t, snapshot.Holdings)
	require.True(t, snapshot.TotalValue.IsZero())
	require.Zero(t, prices.calls, "no debe consultar precios sin tenencias")
}

func TestServiceGetPortfolioLedgerFailure(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("connection refused")}
	service := NewService(ledger, &fakePrices{})

	_, err := service.GetPortfolio("user-1")

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStorageUnavailable))
}

func TestServiceGetPortfolioPriceFailure(t *testing.T) {
	ledger := &fakeLedger{transactions: []models.Transaction{
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "1", "20000"),
	}}
	prices := &fakePrices{err: errors.New("timeout")}
	service := NewService(ledger, prices)

	_, err := service.GetPortfolio("user-1")

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStorageUnavailable))
}

func TestServiceGetPortfolioIdempotent(t *testing.T) {
	ledger := &fakeLedger{transactions: []models.Transaction{
		tx("ETH", "Ethereum", models.TransactionTypeBuy, "2", "1500"),
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "0.1", "30000"),
		tx("ETH", "Ethereum", models.TransactionTypeSell, "0.5", "1800"),
	}}
	prices := &fakePrices{quotes: map[string]models.PriceQuote{
		"BTC": {Symbol: "BTC", PriceEUR: mustDecimal("31000")},
		"ETH": {Symbol: "ETH", PriceEUR: mustDecimal("1700")},
	}}
	service := NewService(ledger, prices)

	first, err := service.GetPortfolio("user-1")
	require.NoError(t, err)
	second, err := service.GetPortfolio("user-1")
	require.NoError(t, err)

	// Dos lecturas sin escrituras intermedias producen exactamente el mismo JSON
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, string(firstJSON), string(secondJSON))
}

func TestServiceGetTopPerformers(t *testing.T) {
	ledger := &fakeLedger{transactions: []models.Transaction{
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "1", "100"),
		tx("ETH", "Ethereum", models.TransactionTypeBuy, "1", "100"),
	}}
	prices := &fakePrices{quotes: map[string]models.PriceQuote{
		"BTC": {Symbol: "BTC", PriceEUR: mustDecimal("120")},
		"ETH": {Symbol: "ETH", PriceEUR: mustDecimal("90")},
	}}
	service := NewService(ledger, prices)

	top, err := service.GetTopPerformers("user-1", 1)

	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, "BTC", top[0].Symbol)
}

func TestServiceGetAllocation(t *testing.T) {
	ledger := &fakeLedger{transactions: []models.Transaction{
		tx("BTC", "Bitcoin", models.TransactionTypeBuy, "1", "100"),
		tx("ETH", "Ethereum", models.TransactionTypeBuy, "1", "100"),
	}}
	prices := &fakePrices{quotes: map[string]models.PriceQuote{
		"BTC": {Symbol: "BTC", PriceEUR: mustDecimal("300")},
		"ETH": {Symbol: "ETH", PriceEUR: mustDecimal("100")},
	}}
	service := NewService(ledger, prices)

	allocation, err := service.GetAllocation("user-1")

	require.NoError(t, err)
	require.Len(t, allocation, 2)
	require.True(t, allocation[0].Percentage.Equal(mustDecimal("75")))
	require.True(t, allocation[1].Percentage.Equal(mustDecimal("25")))
}
