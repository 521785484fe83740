package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// ErrUnknownSymbol indica que el símbolo no está en el mapa de monedas soportadas
var ErrUnknownSymbol = errors.New("criptomoneda no soportada")

// cryptoIDMap asocia nuestros símbolos con los IDs de CoinGecko
var cryptoIDMap = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"TRX":   "tron",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"LTC":   "litecoin",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"ATOM":  "cosmos",
	"UNI":   "uniswap",
	"XLM":   "stellar",
	"ALGO":  "algorand",
	"VET":   "vechain",
	"FIL":   "filecoin",
	"NEAR":  "near",
	"APT":   "aptos",
	"ARB":   "arbitrum",
	"OP":    "optimism",
	"ICP":   "internet-computer",
	"HBAR":  "hedera-hashgraph",
	"INJ":   "injective-protocol",
	"IMX":   "immutable-x",
	"GRT":   "the-graph",
	"AAVE":  "aave",
	"MKR":   "maker",
}

// CoinGeckoClient consulta la API pública de CoinGecko
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

func NewCoinGeckoClient(logger *zap.SugaredLogger) *CoinGeckoClient {
	baseURL := os.Getenv("COINGECKO_API_URL")
	if baseURL == "" {
		baseURL = defaultCoinGeckoURL
	}

	return &CoinGeckoClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// SupportedSymbols devuelve los símbolos soportados en orden alfabético
func (c *CoinGeckoClient) SupportedSymbols() []string {
	symbols := make([]string, 0, len(cryptoIDMap))
	for symbol := range cryptoIDMap {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// simplePrice es la forma de la respuesta de /simple/price: un mapa de
// coin-id a valores numéricos (precios, market cap, volumen, cambio, fecha)
type simplePrice map[string]map[string]float64

// FetchPrices obtiene las cotizaciones de todas las monedas soportadas en una sola llamada
func (c *CoinGeckoClient) FetchPrices() ([]models.PriceQuote, error) {
	ids := make([]string, 0, len(cryptoIDMap))
	for _, coinID := range cryptoIDMap {
		ids = append(ids, coinID)
	}
	sort.Strings(ids)

	payload, err := c.fetchSimplePrice(strings.Join(ids, ","))
	if err != nil {
		return nil, err
	}

	quotes := make([]models.PriceQuote, 0, len(cryptoIDMap))
	for _, symbol := range c.SupportedSymbols() {
		coinID := cryptoIDMap[symbol]
		data, ok := payload[coinID]
		if !ok {
			c.logger.Warnf("CoinGecko no devolvió datos para %s", symbol)
			continue
		}
		quotes = append(quotes, buildQuote(symbol, coinID, data))
	}

	return quotes, nil
}

// FetchSinglePrice obtiene la cotización de un solo símbolo
func (c *CoinGeckoClient) FetchSinglePrice(symbol string) (*models.PriceQuote, error) {
	coinID, ok := cryptoIDMap[symbol]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSymbol, "%s", symbol)
	}

	payload, err := c.fetchSimplePrice(coinID)
	if err != nil {
		return nil, err
	}

	data, ok := payload[coinID]
	if !ok {
		return nil, fmt.Errorf("no se encontraron datos para %s", symbol)
	}

	quote := buildQuote(symbol, coinID, data)
	return &quote, nil
}

func (c *CoinGeckoClient) fetchSimplePrice(ids string) (simplePrice, error) {
	params := url.Values{}
	params.Set("ids", ids)
	params.Set("vs_currencies", "eur,usd")
	params.Set("include_market_cap", "true")
	params.Set("include_24hr_vol", "true")
	params.Set("include_24hr_change", "true")
	params.Set("include_last_updated_at", "true")

	var payload simplePrice
	if err := c.get("/simple/price", params, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func buildQuote(symbol, coinID string, data map[string]float64) models.PriceQuote {
	lastUpdated := time.Now()
	if ts, ok := data["last_updated_at"]; ok && ts > 0 {
		lastUpdated = time.Unix(int64(ts), 0)
	}

	return models.PriceQuote{
		Symbol:      symbol,
		Name:        coinID,
		PriceEUR:    decimal.NewFromFloat(data["eur"]),
		PriceUSD:    decimal.NewFromFloat(data["usd"]),
		MarketCap:   decimal.NewFromFloat(data["eur_market_cap"]).Round(2),
		Volume24h:   decimal.NewFromFloat(data["eur_24h_vol"]).Round(2),
		Change24h:   decimal.NewFromFloat(data["eur_24h_change"]).Round(4),
		LastUpdated: lastUpdated,
	}
}

// TopCryptos obtiene las criptomonedas con mayor capitalización de mercado
func (c *CoinGeckoClient) TopCryptos(limit, page int) ([]models.MarketCoin, error) {
	params := url.Values{}
	params.Set("vs_currency", "eur")
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("page", strconv.Itoa(page))
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h,7d")

	var coins []models.MarketCoin
	if err := c.get("/coins/markets", params, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// Search busca criptomonedas por nombre o símbolo (máximo 20 resultados)
func (c *CoinGeckoClient) Search(query string) ([]models.CoinSearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var payload struct {
		Coins []models.CoinSearchResult `json:"coins"`
	}
	if err := c.get("/search", params, &payload); err != nil {
		return nil, err
	}

	if len(payload.Coins) > 20 {
		payload.Coins = payload.Coins[:20]
	}
	return payload.Coins, nil
}

// Trending obtiene las criptomonedas en tendencia
func (c *CoinGeckoClient) Trending() ([]models.TrendingCoin, error) {
	var payload struct {
		Coins []struct {
			Item models.TrendingCoin `json:"item"`
		} `json:"coins"`
	}
	if err := c.get("/search/trending", nil, &payload); err != nil {
		return nil, err
	}

	coins := make([]models.TrendingCoin, 0, len(payload.Coins))
	for _, entry := range payload.Coins {
		coins = append(coins, entry.Item)
	}
	return coins, nil
}

// GlobalMarketData obtiene los datos globales del mercado
func (c *CoinGeckoClient) GlobalMarketData() (*models.GlobalMarketData, error) {
	var payload struct {
		Data struct {
			TotalMarketCap         map[string]float64 `json:"total_market_cap"`
			TotalVolume            map[string]float64 `json:"total_volume"`
			MarketCapPercentage    map[string]float64 `json:"market_cap_percentage"`
			MarketCapChange24h     float64            `json:"market_cap_change_percentage_24h_usd"`
			ActiveCryptocurrencies int                `json:"active_cryptocurrencies"`
			Markets                int                `json:"markets"`
			UpdatedAt              int64              `json:"updated_at"`
		} `json:"data"`
	}
	if err := c.get("/global", nil, &payload); err != nil {
		return nil, err
	}

	return &models.GlobalMarketData{
		TotalMarketCapEUR:      payload.Data.TotalMarketCap["eur"],
		TotalVolumeEUR:         payload.Data.TotalVolume["eur"],
		MarketCapPercentage:    payload.Data.MarketCapPercentage,
		MarketCapChange24h:     payload.Data.MarketCapChange24h,
		ActiveCryptocurrencies: payload.Data.ActiveCryptocurrencies,
		Markets:                payload.Data.Markets,
		UpdatedAt:              payload.Data.UpdatedAt,
	}, nil
}

func (c *CoinGeckoClient) get(path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	resp, err := c.client.Get(endpoint)
	if err != nil {
		c.logger.Errorf("Error en la petición a CoinGecko %s: %v", path, err)
		return errors.Wrap(err, "error en la petición a CoinGecko")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("CoinGecko respondió %d para %s", resp.StatusCode, path)
		return fmt.Errorf("CoinGecko respondió con estado %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "error decodificando la respuesta de CoinGecko")
	}
	return nil
}
