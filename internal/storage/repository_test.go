package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pocketbank/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "pocketbank.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestMigrationsSeedSingletonBalance(t *testing.T) {
	repo := newTestRepo(t)

	bal, err := repo.Balance(context.Background())
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if bal.Amount.Cents != 0 {
		t.Fatalf("fresh balance expected 0 cents, got %d", bal.Amount.Cents)
	}
}

func TestRecordDepositIncrementsBalance(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx, err := repo.RecordDeposit(ctx, 5000, "Weekly allowance")
	if err != nil {
		t.Fatalf("record deposit: %v", err)
	}
	if tx.Type != core.Deposit || tx.Amount.Cents != 5000 || tx.BalanceAfter.Cents != 5000 {
		t.Fatalf("unexpected deposit transaction: %+v", tx)
	}

	bal, err := repo.Balance(ctx)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if bal.Amount.Cents != 5000 {
		t.Fatalf("balance expected 5000 cents, got %d", bal.Amount.Cents)
	}
}

func TestRecordSpendUpdatesBalanceAndLedgerTogether(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.RecordDeposit(ctx, 5000, "Weekly allowance"); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	tx, err := repo.RecordSpend(ctx, 1235, "Spent money")
	if err != nil {
		t.Fatalf("record spend: %v", err)
	}
	if tx.Type != core.Withdrawal {
		t.Fatalf("expected withdrawal, got %s", tx.Type)
	}
	if tx.BalanceAfter.Cents != 3765 {
		t.Fatalf("balance after expected 3765 cents, got %d", tx.BalanceAfter.Cents)
	}

	bal, err := repo.Balance(ctx)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if bal.Amount.Cents != 3765 {
		t.Fatalf("balance expected 3765 cents, got %d", bal.Amount.Cents)
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 ledger rows, got %d", len(txs))
	}
	if txs[0].Type != core.Withdrawal || txs[0].BalanceAfter.Cents != 3765 {
		t.Fatalf("newest row should be the withdrawal: %+v", txs[0])
	}
}

func TestRecordSpendInsufficientFundsLeavesStoreUntouched(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.RecordDeposit(ctx, 1000, "Weekly allowance"); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	_, err := repo.RecordSpend(ctx, 1001, "too much")
	var ife *core.InsufficientFundsError
	if !errors.As(err, &ife) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if ife.Current.Cents != 1000 {
		t.Fatalf("error should echo current balance 1000, got %d", ife.Current.Cents)
	}

	bal, err := repo.Balance(ctx)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if bal.Amount.Cents != 1000 {
		t.Fatalf("balance must be unchanged, got %d", bal.Amount.Cents)
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("no withdrawal row may exist, got %d rows", len(txs))
	}
}

func TestRecordSpendExactBalanceReachesZero(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.RecordDeposit(ctx, 1000, "Weekly allowance"); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	tx, err := repo.RecordSpend(ctx, 1000, "all of it")
	if err != nil {
		t.Fatalf("spending the exact balance should succeed: %v", err)
	}
	if tx.BalanceAfter.Cents != 0 {
		t.Fatalf("balance after expected 0, got %d", tx.BalanceAfter.Cents)
	}
}

func TestRecordRejectsNonPositiveAmounts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, cents := range []int64{0, -500} {
		if _, err := repo.RecordSpend(ctx, cents, "x"); !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("spend cents=%d expected ErrInvalidAmount, got %v", cents, err)
		}
		if _, err := repo.RecordDeposit(ctx, cents, "x"); !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("deposit cents=%d expected ErrInvalidAmount, got %v", cents, err)
		}
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.RecordDeposit(ctx, 10000, "Weekly allowance"); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	for _, desc := range []string{"first", "second", "third"} {
		if _, err := repo.RecordSpend(ctx, 100, desc); err != nil {
			t.Fatalf("spend %q: %v", desc, err)
		}
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(txs))
	}
	for i := 1; i < len(txs); i++ {
		if txs[i-1].CreatedAt.Before(txs[i].CreatedAt) {
			t.Fatalf("rows not in descending timestamp order at %d", i)
		}
		if txs[i-1].CreatedAt.Equal(txs[i].CreatedAt) && txs[i-1].ID < txs[i].ID {
			t.Fatalf("equal timestamps must fall back to descending id at %d", i)
		}
	}
	if txs[0].Description != "third" {
		t.Fatalf("newest row should be the last spend, got %q", txs[0].Description)
	}
}
