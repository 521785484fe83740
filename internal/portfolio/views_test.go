package portfolio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
)

func snapshotForViews() models.PortfolioSnapshot {
	holdings := []models.Holding{
		{Symbol: "BTC", Name: "Bitcoin", Amount: mustDecimal("1"), Invested: mustDecimal("100")},
		{Symbol: "ETH", Name: "Ethereum", Amount: mustDecimal("1"), Invested: mustDecimal("100")},
		{Symbol: "SOL", Name: "Solana", Amount: mustDecimal("1"), Invested: mustDecimal("100")},
	}
	quotes := map[string]models.PriceQuote{
		"BTC": {Symbol: "BTC", PriceEUR: mustDecimal("110")}, // +10%
		"ETH": {Symbol: "ETH", PriceEUR: mustDecimal("150")}, // +50%
		"SOL": {Symbol: "SOL", PriceEUR: mustDecimal("80")},  // -20%
	}
	return Valuate(holdings, quotes)
}

func TestTopPerformersOrdersByProfitPercent(t *testing.T) {
	snapshot := snapshotForViews()

	top := TopPerformers(snapshot, 2)

	require.Len(t, top, 2)
	require.Equal(t, "ETH", top[0].Symbol)
	require.Equal(t, "BTC", top[1].Symbol)
}

func TestTopPerformersLimitLargerThanHoldings(t *testing.T) {
	snapshot := snapshotForViews()

	top := TopPerformers(snapshot, 10)

	require.Len(t, top, 3)
	require.Equal(t, "SOL", top[2].Symbol)
}

func TestTopPerformersNegativeLimit(t *testing.T) {
	snapshot := snapshotForViews()

	top := TopPerformers(snapshot, -1)

	require.NotNil(t, top)
	require.Empty(t, top)
}

func TestTopPerformersEmptySnapshot(t *testing.T) {
	top := TopPerformers(models.PortfolioSnapshot{}, 5)

	require.NotNil(t, top)
	require.Empty(t, top)
}

func TestTopPerformersDoesNotMutateSnapshot(t *testing.T) {
	snapshot := snapshotForViews()
	originalFirst := snapshot.Holdings[0].Symbol

	TopPerformers(snapshot, 3)

	require.Equal(t, originalFirst, snapshot.Holdings[0].Symbol)
}

func TestAllocationSumsToOneHundred(t *testing.T) {
	snapshot := snapshotForViews()

	entries := Allocation(snapshot)

	require.Len(t, entries, 3)
	sum := mustDecimal("0")
	for _, entry := range entries {
		sum = sum.Add(entry.Percentage)
	}
	require.True(t, sum.Equal(mustDecimal("100")), "suma de porcentajes: %s", sum)
}

func TestAllocationZeroTotalValue(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "XYZ", Name: "Desconocida", Amount: mustDecimal("10"), Invested: mustDecimal("100")},
	}
	snapshot := Valuate(holdings, nil)

	entries := Allocation(snapshot)

	require.Len(t, entries, 1)
	require.True(t, entries[0].Percentage.IsZero())
	require.True(t, entries[0].Value.IsZero())
}
