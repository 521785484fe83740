package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validInput() TransactionInput {
	return TransactionInput{
		CryptoSymbol:    "btc",
		CryptoName:      "Bitcoin",
		Amount:          decimal.RequireFromString("0.5"),
		PriceEUR:        decimal.RequireFromString("30000"),
		TransactionType: TransactionTypeBuy,
		TransactionDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Notes:           "compra mensual",
	}
}

func TestTransactionInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TransactionInput)
		wantErr bool
	}{
		{"válida", func(in *TransactionInput) {}, false},
		{"símbolo vacío", func(in *TransactionInput) { in.CryptoSymbol = "  " }, true},
		{"símbolo demasiado largo", func(in *TransactionInput) { in.CryptoSymbol = strings.Repeat("A", 21) }, true},
		{"nombre vacío", func(in *TransactionInput) { in.CryptoName = "" }, true},
		{"nombre demasiado largo", func(in *TransactionInput) { in.CryptoName = strings.Repeat("a", 101) }, true},
		{"cantidad cero", func(in *TransactionInput) { in.Amount = decimal.Zero }, true},
		{"cantidad negativa", func(in *TransactionInput) { in.Amount = decimal.RequireFromString("-1") }, true},
		{"cantidad por debajo del mínimo", func(in *TransactionInput) { in.Amount = decimal.RequireFromString("0.000000001") }, true},
		{"cantidad mínima exacta", func(in *TransactionInput) { in.Amount = decimal.RequireFromString("0.00000001") }, false},
		{"precio cero", func(in *TransactionInput) { in.PriceEUR = decimal.Zero }, true},
		{"precio negativo", func(in *TransactionInput) { in.PriceEUR = decimal.RequireFromString("-5") }, true},
		{"tipo inválido", func(in *TransactionInput) { in.TransactionType = "swap" }, true},
		{"tipo venta", func(in *TransactionInput) { in.TransactionType = TransactionTypeSell }, false},
		{"fecha futura", func(in *TransactionInput) { in.TransactionDate = time.Now().Add(24 * time.Hour) }, true},
		{"notas demasiado largas", func(in *TransactionInput) { in.Notes = strings.Repeat("x", 501) }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := in.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewTransactionComputesTotal(t *testing.T) {
	in := validInput()
	in.Amount = decimal.RequireFromString("0.333")
	in.PriceEUR = decimal.RequireFromString("30000.55")

	transaction := NewTransaction("user-1", in)

	// 0.333 * 30000.55 = 9990.18315, redondeado a 2 decimales
	require.True(t, transaction.TotalEUR.Equal(decimal.RequireFromString("9990.18")),
		"total: %s", transaction.TotalEUR)
}

func TestNewTransactionNormalizesFields(t *testing.T) {
	in := validInput()
	in.CryptoSymbol = "  eth "
	in.CryptoName = " Ethereum "
	in.Notes = "  nota  "

	transaction := NewTransaction("user-1", in)

	require.Equal(t, "ETH", transaction.Symbol)
	require.Equal(t, "Ethereum", transaction.Name)
	require.Equal(t, "nota", transaction.Notes)
	require.Equal(t, "user-1", transaction.UserID)
	require.NotEmpty(t, transaction.ID)
}

func TestNewTransactionIgnoresClientTotal(t *testing.T) {
	in := validInput()

	first := NewTransaction("user-1", in)
	second := NewTransaction("user-1", in)

	// El total siempre se deriva de amount * price, nunca del cliente
	require.True(t, first.TotalEUR.Equal(second.TotalEUR))
	require.True(t, first.TotalEUR.Equal(in.Amount.Mul(in.PriceEUR).Round(2)))
	require.NotEqual(t, first.ID, second.ID)
}
