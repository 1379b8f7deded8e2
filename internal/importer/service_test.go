package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	t.Run("CGD", func(t *testing.T) {
		txs, err := svc.Import(importer.BankCGD, strings.NewReader("Data mov.;Descrição;Montante\n30-01-2026;PADARIA;-2,40\n"))
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, transaction.KindExpense, txs[0].Kind)
	})

	t.Run("UnknownBank", func(t *testing.T) {
		_, err := svc.Import(importer.Bank("bpi"), strings.NewReader(""))
		assert.ErrorIs(t, err, importer.ErrUnknownBank)
		assert.EqualError(t, err, `unknown bank: "bpi"`)
	})
}
