package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pocketbank/internal/bank"
	"pocketbank/internal/core"
)

// Store is the persistence port the service orchestrates. Both mutating
// calls are atomic in the repository: balance update and ledger append
// commit together or not at all.
type Store interface {
	Balance(ctx context.Context) (core.Balance, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	RecordSpend(ctx context.Context, amountCents int64, description string) (core.Transaction, error)
	RecordDeposit(ctx context.Context, amountCents int64, description string) (core.Transaction, error)
	Close() error
}

// EventPublisher announces committed transactions to downstream consumers.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, tx core.Transaction) error
}

// BankService orchestrates balance reads, spends and deposits across the
// store and the optional event broker.
type BankService struct {
	store  Store
	events EventPublisher
}

func NewBankService(store Store, events EventPublisher) *BankService {
	return &BankService{
		store:  store,
		events: events,
	}
}

func (s *BankService) Balance(ctx context.Context) (core.Balance, error) {
	bal, err := s.store.Balance(ctx)
	if err != nil {
		return core.Balance{}, fmt.Errorf("get balance: %w", err)
	}
	return bal, nil
}

func (s *BankService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Spend validates and rounds the requested amount, then records the
// withdrawal. Validation happens before any store access. A blank
// description falls back to the default label.
func (s *BankService) Spend(ctx context.Context, amount float64, description string) (bank.SpendResult, error) {
	cents, err := core.CentsFromFloat(amount)
	if err != nil {
		return bank.SpendResult{}, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = core.DefaultSpendDescription
	}

	tx, err := s.store.RecordSpend(ctx, cents, description)
	if err != nil {
		return bank.SpendResult{}, fmt.Errorf("record spend: %w", err)
	}

	s.publishRecorded(ctx, tx)

	return bank.SpendResult{
		NewBalance:  tx.BalanceAfter,
		AmountSpent: tx.Amount,
	}, nil
}

// Deposit applies an externally triggered allowance deposit. The cadence
// lives outside this system; only the effect is recorded here.
func (s *BankService) Deposit(ctx context.Context, amountCents int64, description string) (core.Transaction, error) {
	if amountCents <= 0 {
		return core.Transaction{}, core.ErrInvalidAmount
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = "Allowance"
	}

	tx, err := s.store.RecordDeposit(ctx, amountCents, description)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record deposit: %w", err)
	}

	s.publishRecorded(ctx, tx)

	return tx, nil
}

// publishRecorded emits the post-commit event. The write has already
// committed, so a publish failure is logged and never fails the request.
func (s *BankService) publishRecorded(ctx context.Context, tx core.Transaction) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionRecorded(ctx, tx); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", tx.ID,
			"type", tx.Type,
			"error", err)
	}
}

func (s *BankService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
