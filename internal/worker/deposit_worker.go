// Package worker applies externally scheduled allowance deposits that
// arrive on the broker.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"pocketbank/internal/amqp"
	"pocketbank/internal/core"
)

// Depositor records a deposit atomically in the store.
type Depositor interface {
	Deposit(ctx context.Context, amountCents int64, description string) (core.Transaction, error)
}

// DepositWorker handles deposit messages from the external allowance trigger.
type DepositWorker struct {
	bank Depositor
}

func NewDepositWorker(bank Depositor) *DepositWorker {
	return &DepositWorker{bank: bank}
}

// HandleDepositMessage applies a single deposit. A non-positive amount is
// a producer bug and is dropped with an error so the delivery is rejected
// rather than requeued forever.
func (w *DepositWorker) HandleDepositMessage(ctx context.Context, msg *amqp.DepositMessage) error {
	slog.InfoContext(ctx, "Processing deposit message",
		"amount_cents", msg.AmountCents,
		"description", msg.Description)

	tx, err := w.bank.Deposit(ctx, msg.AmountCents, msg.Description)
	if err != nil {
		return fmt.Errorf("apply deposit: %w", err)
	}

	slog.InfoContext(ctx, "Deposit applied",
		"id", tx.ID,
		"amount_cents", tx.Amount.Cents,
		"balance_after_cents", tx.BalanceAfter.Cents)

	return nil
}
