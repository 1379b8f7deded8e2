package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Response is the JSON shape of a transaction. Amount is a decimal string.
type Response struct {
	ID                  uuid.UUID        `json:"id"`
	Description         string           `json:"description"`
	Amount              decimal.Decimal  `json:"amount"`
	Kind                transaction.Kind `json:"kind"`
	PersonID            uuid.UUID        `json:"person_id"`
	PersonName          string           `json:"person_name,omitempty"`
	CategoryID          uuid.UUID        `json:"category_id"`
	CategoryDescription string           `json:"category_description,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

func ToResponse(tx *transaction.Transaction) Response {
	return Response{
		ID:                  tx.ID,
		Description:         tx.Description,
		Amount:              tx.Amount,
		Kind:                tx.Kind,
		PersonID:            tx.PersonID,
		PersonName:          tx.PersonName,
		CategoryID:          tx.CategoryID,
		CategoryDescription: tx.CategoryDescription,
		CreatedAt:           tx.CreatedAt,
	}
}

func ToResponseList(txs []*transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
