package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.Handler) *CoinGeckoClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &CoinGeckoClient{
		baseURL: server.URL,
		client:  server.Client(),
		logger:  zap.NewNop().Sugar(),
	}
}

func TestFetchSinglePrice(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/simple/price", r.URL.Path)
		require.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		require.Equal(t, "eur,usd", r.URL.Query().Get("vs_currencies"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"bitcoin": {
				"eur": 58000.12,
				"usd": 63000.45,
				"eur_market_cap": 1140000000000.678,
				"eur_24h_vol": 25000000000.123,
				"eur_24h_change": -1.23456,
				"last_updated_at": 1709294400
			}
		}`))
	}))

	quote, err := client.FetchSinglePrice("BTC")

	require.NoError(t, err)
	require.Equal(t, "BTC", quote.Symbol)
	require.Equal(t, "bitcoin", quote.Name)
	require.Equal(t, "58000.12", quote.PriceEUR.String())
	require.Equal(t, "63000.45", quote.PriceUSD.String())
	require.Equal(t, "-1.2346", quote.Change24h.String())
	require.Equal(t, int64(1709294400), quote.LastUpdated.Unix())
}

func TestFetchSinglePriceUnknownSymbol(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debe llamar a la API para un símbolo desconocido")
	}))

	_, err := client.FetchSinglePrice("NOPE")

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownSymbol))
}

func TestFetchPricesSkipsMissingCoins(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Solo dos de las monedas soportadas
		w.Write([]byte(`{
			"bitcoin": {"eur": 58000, "usd": 63000, "last_updated_at": 1709294400},
			"ethereum": {"eur": 3200, "usd": 3500, "last_updated_at": 1709294400}
		}`))
	}))

	quotes, err := client.FetchPrices()

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	require.Equal(t, "BTC", quotes[0].Symbol)
	require.Equal(t, "ETH", quotes[1].Symbol)
}

func TestGetUpstreamError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.FetchPrices()

	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestSearchCapsResults(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "bit", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"coins": [` + repeatCoins(25) + `]}`))
	}))

	results, err := client.Search("bit")

	require.NoError(t, err)
	require.Len(t, results, 20)
}

func repeatCoins(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += `{"id": "bitcoin", "name": "Bitcoin", "symbol": "BTC"}`
	}
	return out
}

func TestSupportedSymbolsSorted(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	symbols := client.SupportedSymbols()

	require.NotEmpty(t, symbols)
	require.Contains(t, symbols, "BTC")
	for i := 1; i < len(symbols); i++ {
		require.Less(t, symbols[i-1], symbols[i])
	}
}
