package repository

import (
	"database/sql"

	"github.com/kryptofolio/KryptoFolio_Api/internal/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrTransactionNotFound indica que la transacción no existe o no pertenece al usuario
var ErrTransactionNotFound = errors.New("transacción no encontrada")

// TransactionRepository es el libro de transacciones: los handlers escriben en él
// y el servicio de portafolio solo lo lee
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, crypto_symbol, crypto_name, amount, price_eur, total_eur, transaction_type, transaction_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(query,
		tx.ID,
		tx.UserID,
		tx.Symbol,
		tx.Name,
		tx.Amount,
		tx.PriceEUR,
		tx.TotalEUR,
		tx.Type,
		tx.Date,
		tx.Notes,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)

	return errors.Wrap(err, "error al crear la transacción")
}

func (r *TransactionRepository) GetByID(userID, transactionID string) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, crypto_symbol, crypto_name, amount, price_eur, total_eur, transaction_type, transaction_date, notes, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND user_id = $2`

	tx, err := scanTransaction(r.db.QueryRow(query, transactionID, userID))
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "error al obtener la transacción")
	}
	return tx, nil
}

// ListTransactions devuelve todas las transacciones del usuario, más reciente primero
func (r *TransactionRepository) ListTransactions(userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, crypto_symbol, crypto_name, amount, price_eur, total_eur, transaction_type, transaction_date, notes, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, created_at DESC`

	return r.list(query, userID)
}

// ListChronological devuelve las transacciones en orden ascendente por fecha,
// tal como las consume la serie temporal de rendimiento
func (r *TransactionRepository) ListChronological(userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, crypto_symbol, crypto_name, amount, price_eur, total_eur, transaction_type, transaction_date, notes, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date ASC, created_at ASC`

	return r.list(query, userID)
}

func (r *TransactionRepository) list(query, userID string) ([]models.Transaction, error) {
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "error al consultar las transacciones")
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, errors.Wrap(err, "error al escanear la transacción")
		}
		transactions = append(transactions, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error al recorrer las transacciones")
	}
	return transactions, nil
}

func (r *TransactionRepository) Update(tx *models.Transaction) error {
	query := `
		UPDATE transactions
		SET crypto_symbol = $1, crypto_name = $2, amount = $3, price_eur = $4, total_eur = $5,
			transaction_type = $6, transaction_date = $7, notes = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10`

	result, err := r.db.Exec(query,
		tx.Symbol,
		tx.Name,
		tx.Amount,
		tx.PriceEUR,
		tx.TotalEUR,
		tx.Type,
		tx.Date,
		tx.Notes,
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return errors.Wrap(err, "error al actualizar la transacción")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error al actualizar la transacción")
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(userID, transactionID string) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return errors.Wrap(err, "error al eliminar la transacción")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error al eliminar la transacción")
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Stats resume las transacciones del usuario agrupadas por tipo
func (r *TransactionRepository) Stats(userID string) (*models.TransactionStats, error) {
	query := `
		SELECT transaction_type, COUNT(*), COALESCE(SUM(total_eur), 0)
		FROM transactions
		WHERE user_id = $1
		GROUP BY transaction_type`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "error al consultar las estadísticas")
	}
	defer rows.Close()

	stats := &models.TransactionStats{
		TotalInvested: decimal.Zero,
		ByType:        map[string]models.TypeStats{},
	}

	for rows.Next() {
		var txType string
		var count int
		var total decimal.Decimal
		if err := rows.Scan(&txType, &count, &total); err != nil {
			return nil, errors.Wrap(err, "error al escanear las estadísticas")
		}

		stats.TotalTransactions += count
		stats.ByType[txType] = models.TypeStats{Count: count, Total: total}
		if txType == models.TransactionTypeBuy {
			stats.TotalInvested = total
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error al recorrer las estadísticas")
	}

	return stats, nil
}

// scanner cubre tanto *sql.Row como *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var tx models.Transaction
	var notes sql.NullString

	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Symbol,
		&tx.Name,
		&tx.Amount,
		&tx.PriceEUR,
		&tx.TotalEUR,
		&tx.Type,
		&tx.Date,
		&notes,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Notes = notes.String
	return &tx, nil
}
