package amqp

import (
	"encoding/json"
	"time"

	"pocketbank/internal/core"
)

// DepositMessage is produced by the external allowance trigger. This
// system only consumes it; the schedule lives outside.
type DepositMessage struct {
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewDepositMessage creates a deposit message stamped with the current time.
func NewDepositMessage(amountCents int64, description string) *DepositMessage {
	return &DepositMessage{
		AmountCents: amountCents,
		Description: description,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DepositMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DepositMessageFromJSON creates a message from JSON bytes
func DepositMessageFromJSON(data []byte) (*DepositMessage, error) {
	var msg DepositMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// TransactionRecordedMessage announces a committed ledger row to
// downstream consumers.
type TransactionRecordedMessage struct {
	ID                int64     `json:"id"`
	Type              string    `json:"type"`
	AmountCents       int64     `json:"amount_cents"`
	Description       string    `json:"description"`
	BalanceAfterCents int64     `json:"balance_after_cents"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage builds the event payload for a committed row.
func NewTransactionRecordedMessage(tx core.Transaction) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:                tx.ID,
		Type:              string(tx.Type),
		AmountCents:       tx.Amount.Cents,
		Description:       tx.Description,
		BalanceAfterCents: tx.BalanceAfter.Cents,
		Timestamp:         tx.CreatedAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
