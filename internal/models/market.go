package models

// Tipos para los datos de mercado de CoinGecko. Son datos de presentación:
// nunca entran al cálculo del portafolio, por eso se quedan en float64.

type MarketCoin struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Image             string  `json:"image"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	MarketCapRank     int     `json:"market_cap_rank"`
	TotalVolume       float64 `json:"total_volume"`
	PriceChange24h    float64 `json:"price_change_percentage_24h"`
	PriceChange7d     float64 `json:"price_change_percentage_7d_in_currency"`
	CirculatingSupply float64 `json:"circulating_supply"`
	TotalSupply       float64 `json:"total_supply"`
	MaxSupply         float64 `json:"max_supply"`
	ATH               float64 `json:"ath"`
	ATHDate           string  `json:"ath_date"`
	ATL               float64 `json:"atl"`
	ATLDate           string  `json:"atl_date"`
	LastUpdated       string  `json:"last_updated"`
}

type CoinSearchResult struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}

type TrendingCoin struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Score         int    `json:"score"`
}

type GlobalMarketData struct {
	TotalMarketCapEUR      float64            `json:"total_market_cap_eur"`
	TotalVolumeEUR         float64            `json:"total_volume_eur"`
	MarketCapPercentage    map[string]float64 `json:"market_cap_percentage"`
	MarketCapChange24h     float64            `json:"market_cap_change_percentage_24h"`
	ActiveCryptocurrencies int                `json:"active_cryptocurrencies"`
	Markets                int                `json:"markets"`
	UpdatedAt              int64              `json:"updated_at"`
}
