package core

import (
	"errors"
	"testing"
)

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("positive money should validate: %v", err)
	}
	for _, cents := range []int64{0, -1} {
		if err := (Money{Cents: cents}).Validate(); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("cents=%d expected ErrInvalidAmount, got %v", cents, err)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	tx := Transaction{Type: Withdrawal, Amount: Money{Cents: 1235}}
	if err := tx.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tx.Type = "transfer"
	if err := tx.Validate(); err == nil {
		t.Fatal("unknown type should be rejected")
	}

	tx = Transaction{Type: Deposit, Amount: Money{Cents: 0}}
	if err := tx.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount expected ErrInvalidAmount, got %v", err)
	}
}

func TestInsufficientFundsErrorCarriesBalance(t *testing.T) {
	err := error(&InsufficientFundsError{Current: Money{Cents: 1000}})

	var ife *InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatal("errors.As should match InsufficientFundsError")
	}
	if ife.Current.Cents != 1000 {
		t.Fatalf("expected current balance 1000 cents, got %d", ife.Current.Cents)
	}
}
