package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("la variable de entorno DATABASE_URL no está definida")
	}

	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("no se pudo conectar a la base de datos: %v", err)
	}

	// Crear tabla de usuarios si no existe
	createUsersTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		settings JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := DB.Exec(createUsersTableSQL); err != nil {
		return err
	}

	// Crear tabla de transacciones
	createTransactionsTableSQL := `
	CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		crypto_symbol TEXT NOT NULL,
		crypto_name TEXT NOT NULL,
		amount NUMERIC(32, 8) NOT NULL,
		price_eur NUMERIC(20, 8) NOT NULL,
		total_eur NUMERIC(20, 2) NOT NULL,
		transaction_type TEXT NOT NULL CHECK (transaction_type IN ('buy', 'sell')),
		transaction_date TIMESTAMPTZ NOT NULL,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := DB.Exec(createTransactionsTableSQL); err != nil {
		return err
	}

	// Índice para las lecturas por usuario ordenadas por fecha
	createTransactionsIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_transactions_user_date
	ON transactions(user_id, transaction_date);`

	if _, err := DB.Exec(createTransactionsIndexSQL); err != nil {
		return err
	}

	// Crear tabla de caché de precios (una fila por símbolo)
	createPriceCacheTableSQL := `
	CREATE TABLE IF NOT EXISTS price_cache (
		crypto_symbol TEXT PRIMARY KEY,
		crypto_name TEXT NOT NULL DEFAULT '',
		price_eur NUMERIC(20, 8) NOT NULL DEFAULT 0,
		price_usd NUMERIC(20, 8) NOT NULL DEFAULT 0,
		market_cap NUMERIC(24, 2) NOT NULL DEFAULT 0,
		volume_24h NUMERIC(24, 2) NOT NULL DEFAULT 0,
		change_24h NUMERIC(12, 4) NOT NULL DEFAULT 0,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := DB.Exec(createPriceCacheTableSQL); err != nil {
		return err
	}

	// Ejecutar migraciones para actualizar el esquema
	return RunMigrations()
}
