package repository

import (
	"database/sql"
	"time"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// ErrQuoteNotFound indica que no hay cotización en caché para el símbolo
var ErrQuoteNotFound = errors.New("cotización no encontrada")

// PriceRepository es la caché de cotizaciones: una fila viva por símbolo.
// El actualizador de precios la escribe y el servicio de portafolio la lee.
type PriceRepository struct {
	db *sql.DB
}

func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Upsert inserta o actualiza la cotización de un símbolo
func (r *PriceRepository) Upsert(quote *models.PriceQuote) error {
	query := `
		INSERT INTO price_cache (crypto_symbol, crypto_name, price_eur, price_usd, market_cap, volume_24h, change_24h, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (crypto_symbol)
		DO UPDATE SET
			crypto_name = EXCLUDED.crypto_name,
			price_eur = EXCLUDED.price_eur,
			price_usd = EXCLUDED.price_usd,
			market_cap = EXCLUDED.market_cap,
			volume_24h = EXCLUDED.volume_24h,
			change_24h = EXCLUDED.change_24h,
			last_updated = EXCLUDED.last_updated`

	_, err := r.db.Exec(query,
		quote.Symbol,
		quote.Name,
		quote.PriceEUR,
		quote.PriceUSD,
		quote.MarketCap,
		quote.Volume24h,
		quote.Change24h,
		quote.LastUpdated,
	)
	return errors.Wrap(err, "error al guardar la cotización")
}

// GetAll devuelve todas las cotizaciones en caché ordenadas por símbolo
func (r *PriceRepository) GetAll() ([]models.PriceQuote, error) {
	query := `
		SELECT crypto_symbol, crypto_name, price_eur, price_usd, market_cap, volume_24h, change_24h, last_updated
		FROM price_cache
		ORDER BY crypto_symbol ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, errors.Wrap(err, "error al consultar las cotizaciones")
	}
	defer rows.Close()

	quotes := []models.PriceQuote{}
	for rows.Next() {
		var quote models.PriceQuote
		if err := scanQuote(rows, &quote); err != nil {
			return nil, errors.Wrap(err, "error al escanear la cotización")
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error al recorrer las cotizaciones")
	}
	return quotes, nil
}

// GetBySymbol devuelve la cotización de un símbolo, o ErrQuoteNotFound si no está en caché
func (r *PriceRepository) GetBySymbol(symbol string) (*models.PriceQuote, error) {
	query := `
		SELECT crypto_symbol, crypto_name, price_eur, price_usd, market_cap, volume_24h, change_24h, last_updated
		FROM price_cache
		WHERE crypto_symbol = $1`

	var quote models.PriceQuote
	err := scanQuote(r.db.QueryRow(query, symbol), &quote)
	if err == sql.ErrNoRows {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "error al obtener la cotización")
	}
	return &quote, nil
}

// GetQuotes devuelve las cotizaciones de los símbolos pedidos, indexadas por símbolo.
// Los símbolos sin fila en caché simplemente no aparecen en el mapa: no es un error.
func (r *PriceRepository) GetQuotes(symbols []string) (map[string]models.PriceQuote, error) {
	query := `
		SELECT crypto_symbol, crypto_name, price_eur, price_usd, market_cap, volume_24h, change_24h, last_updated
		FROM price_cache
		WHERE crypto_symbol = ANY($1)`

	rows, err := r.db.Query(query, pq.Array(symbols))
	if err != nil {
		return nil, errors.Wrap(err, "error al consultar las cotizaciones")
	}
	defer rows.Close()

	quotes := make(map[string]models.PriceQuote, len(symbols))
	for rows.Next() {
		var quote models.PriceQuote
		if err := scanQuote(rows, &quote); err != nil {
			return nil, errors.Wrap(err, "error al escanear la cotización")
		}
		quotes[quote.Symbol] = quote
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error al recorrer las cotizaciones")
	}
	return quotes, nil
}

// LastUpdated devuelve la fecha de la cotización más reciente en caché.
// Devuelve la fecha cero si la caché está vacía.
func (r *PriceRepository) LastUpdated() (time.Time, error) {
	var latest sql.NullTime
	err := r.db.QueryRow(`SELECT MAX(last_updated) FROM price_cache`).Scan(&latest)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "error al consultar la última actualización")
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return latest.Time, nil
}

func scanQuote(row scanner, quote *models.PriceQuote) error {
	return row.Scan(
		&quote.Symbol,
		&quote.Name,
		&quote.PriceEUR,
		&quote.PriceUSD,
		&quote.MarketCap,
		&quote.Volume24h,
		&quote.Change24h,
		&quote.LastUpdated,
	)
}
