package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de transacción permitidos
const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

// minAmount es la cantidad mínima aceptada (8 decimales)
var minAmount = decimal.New(1, -8)

// Transaction representa una compra o venta de criptomoneda registrada por el usuario
type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Symbol    string          `json:"crypto_symbol"`
	Name      string          `json:"crypto_name"`
	Amount    decimal.Decimal `json:"amount"`
	PriceEUR  decimal.Decimal `json:"price_eur"`
	TotalEUR  decimal.Decimal `json:"total_eur"`
	Type      string          `json:"transaction_type"`
	Date      time.Time       `json:"transaction_date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionInput contiene los datos que envía el cliente para crear o actualizar una transacción
type TransactionInput struct {
	CryptoSymbol    string          `json:"crypto_symbol" binding:"required"`
	CryptoName      string          `json:"crypto_name" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PriceEUR        decimal.Decimal `json:"price_eur" binding:"required"`
	TransactionType string          `json:"transaction_type" binding:"required"`
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	Notes           string          `json:"notes"`
}

// Validate verifica las invariantes de la transacción antes de tocar la base de datos
func (in *TransactionInput) Validate() error {
	symbol := strings.TrimSpace(in.CryptoSymbol)
	if len(symbol) < 1 || len(symbol) > 20 {
		return errors.New("el símbolo debe tener entre 1 y 20 caracteres")
	}

	name := strings.TrimSpace(in.CryptoName)
	if len(name) < 1 || len(name) > 100 {
		return errors.New("el nombre debe tener entre 1 y 100 caracteres")
	}

	if in.Amount.Cmp(minAmount) < 0 {
		return errors.New("la cantidad debe ser un número positivo")
	}

	if in.PriceEUR.Sign() <= 0 {
		return errors.New("el precio debe ser un número positivo")
	}

	if in.TransactionType != TransactionTypeBuy && in.TransactionType != TransactionTypeSell {
		return errors.New("el tipo de transacción debe ser \"buy\" o \"sell\"")
	}

	if in.TransactionDate.After(time.Now()) {
		return errors.New("la fecha no puede estar en el futuro")
	}

	if len(in.Notes) > 500 {
		return errors.New("las notas no pueden superar los 500 caracteres")
	}

	return nil
}

// NewTransaction construye una transacción validada. El total se calcula siempre
// en el servidor como amount * price_eur redondeado a 2 decimales; nunca se
// acepta un total enviado por el cliente.
func NewTransaction(userID string, in TransactionInput) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Symbol:   strings.ToUpper(strings.TrimSpace(in.CryptoSymbol)),
		Name:     strings.TrimSpace(in.CryptoName),
		Amount:   in.Amount,
		PriceEUR: in.PriceEUR,
		TotalEUR: in.Amount.Mul(in.PriceEUR).Round(2),
		Type:     in.TransactionType,
		Date:     in.TransactionDate,
		Notes:    strings.TrimSpace(in.Notes),
	}
}

// TransactionStats resume las transacciones de un usuario
type TransactionStats struct {
	TotalTransactions int                  `json:"total_transactions"`
	TotalInvested     decimal.Decimal      `json:"total_invested"`
	ByType            map[string]TypeStats `json:"by_type"`
}

// TypeStats acumula cantidad y total por tipo de transacción
type TypeStats struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}
