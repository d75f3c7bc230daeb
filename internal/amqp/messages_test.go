package amqp

import (
	"testing"
	"time"

	"pocketbank/internal/core"
)

func TestDepositMessageFromJSON(t *testing.T) {
	msg, err := DepositMessageFromJSON([]byte(`{"amount_cents":2500,"description":"Weekly allowance"}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.AmountCents != 2500 || msg.Description != "Weekly allowance" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	if _, err := DepositMessageFromJSON([]byte(`not json`)); err == nil {
		t.Fatal("malformed payload should error")
	}
}

func TestNewTransactionRecordedMessage(t *testing.T) {
	now := time.Now()
	tx := core.Transaction{
		ID:           7,
		Type:         core.Withdrawal,
		Amount:       core.Money{Cents: 1235},
		Description:  "Spent money",
		BalanceAfter: core.Money{Cents: 3765},
		CreatedAt:    now,
	}

	msg := NewTransactionRecordedMessage(tx)
	if msg.ID != 7 || msg.Type != "withdrawal" || msg.AmountCents != 1235 || msg.BalanceAfterCents != 3765 {
		t.Fatalf("unexpected event payload: %+v", msg)
	}
	if !msg.Timestamp.Equal(now) {
		t.Fatal("event timestamp should be the commit time, not publish time")
	}
}
