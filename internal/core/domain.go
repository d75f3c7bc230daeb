package core

import (
	"errors"
	"time"
)

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// DefaultSpendDescription replaces a blank description on withdrawals.
const DefaultSpendDescription = "Spent money"

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Balance is the singleton current-funds row. Exactly one exists.
	Balance struct {
		Amount    Money
		UpdatedAt time.Time
	}

	// Transaction is one immutable ledger row. BalanceAfter records the
	// balance as committed together with this row.
	Transaction struct {
		ID           int64
		Type         TransactionType
		Amount       Money
		Description  string
		BalanceAfter Money
		CreatedAt    time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrBalanceNotFound  = errors.New("balance row not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InsufficientFundsError carries the current balance so the client can
// display it alongside the rejection.
type InsufficientFundsError struct {
	Current Money
}

func (e *InsufficientFundsError) Error() string {
	return "insufficient funds"
}

func (t TransactionType) IsValid() bool {
	return t == Deposit || t == Withdrawal
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if !tx.Type.IsValid() {
		return errors.New("invalid transaction type")
	}
	return tx.Amount.Validate()
}
