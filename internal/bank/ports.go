package bank

import (
	"context"

	"pocketbank/internal/core"
)

// Ports consumed by the HTTP layer.
type (
	BalanceReader interface {
		Balance(ctx context.Context) (core.Balance, error)
	}

	// TransactionLister returns the full ledger, newest first.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// Spender runs the validated withdrawal workflow.
	Spender interface {
		Spend(ctx context.Context, amount float64, description string) (SpendResult, error)
	}
)

// SpendResult reports a completed withdrawal back to the caller.
type SpendResult struct {
	NewBalance  core.Money
	AmountSpent core.Money
}
