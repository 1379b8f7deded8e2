package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// RecordedMessage announces a transaction that has just been stored.
// Amount is encoded as a decimal string so consumers never see float rounding.
type RecordedMessage struct {
	ID         uuid.UUID        `json:"id"`
	PersonID   uuid.UUID        `json:"person_id"`
	CategoryID uuid.UUID        `json:"category_id"`
	Kind       transaction.Kind `json:"kind"`
	Amount     decimal.Decimal  `json:"amount"`
	Timestamp  time.Time        `json:"timestamp"`
}

func NewRecordedMessage(tx *transaction.Transaction, now time.Time) *RecordedMessage {
	return &RecordedMessage{
		ID:         tx.ID,
		PersonID:   tx.PersonID,
		CategoryID: tx.CategoryID,
		Kind:       tx.Kind,
		Amount:     tx.Amount,
		Timestamp:  now.UTC(),
	}
}

func (m *RecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordedMessageFromJSON(data []byte) (*RecordedMessage, error) {
	var msg RecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
