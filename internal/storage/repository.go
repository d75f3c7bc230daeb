// Package storage persists the balance singleton and the transaction
// ledger in SQLite. The spend path runs the balance decrement and the
// ledger append inside one database transaction so the two tables can
// never drift apart.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pocketbank/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Balance returns the singleton balance row via its fixed key.
func (r *SQLiteRepository) Balance(ctx context.Context) (core.Balance, error) {
	const query = `SELECT amount_cents, updated_at FROM balance WHERE id = 1`

	var (
		cents     int64
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, query).Scan(&cents, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Balance{}, core.ErrBalanceNotFound
	}
	if err != nil {
		return core.Balance{}, storeError("get balance", err)
	}

	return core.Balance{Amount: core.Money{Cents: cents}, UpdatedAt: updatedAt}, nil
}

// ListTransactions returns the full ledger, newest first. Ordering is
// query-time; storage order is insertion order.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	const query = `SELECT id, type, amount_cents, description, balance_after_cents, created_at
	FROM transactions
	ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("list transactions", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx                core.Transaction
			amountCents       int64
			balanceAfterCents int64
		)
		if err := rows.Scan(&tx.ID, &tx.Type, &amountCents, &tx.Description, &balanceAfterCents, &tx.CreatedAt); err != nil {
			return nil, storeError("scan transaction", err)
		}
		tx.Amount = core.Money{Cents: amountCents}
		tx.BalanceAfter = core.Money{Cents: balanceAfterCents}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list transactions", err)
	}

	return txs, nil
}

// RecordSpend decrements the balance and appends the withdrawal row in one
// transaction. The decrement is conditional on the floor check, so a spend
// that would go negative rolls back without touching either table and the
// two tables always commit together.
func (r *SQLiteRepository) RecordSpend(ctx context.Context, amountCents int64, description string) (core.Transaction, error) {
	return r.record(ctx, core.Withdrawal, amountCents, description)
}

// RecordDeposit increments the balance and appends the deposit row in one
// transaction. Used by the allowance deposit worker.
func (r *SQLiteRepository) RecordDeposit(ctx context.Context, amountCents int64, description string) (core.Transaction, error) {
	return r.record(ctx, core.Deposit, amountCents, description)
}

func (r *SQLiteRepository) record(ctx context.Context, txType core.TransactionType, amountCents int64, description string) (core.Transaction, error) {
	if amountCents <= 0 {
		return core.Transaction{}, core.ErrInvalidAmount
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, storeError("begin transaction", err)
	}
	defer dbTx.Rollback()

	now := time.Now().UTC()

	var res sql.Result
	switch txType {
	case core.Withdrawal:
		const decrement = `UPDATE balance
		SET amount_cents = amount_cents - ?, updated_at = ?
		WHERE id = 1 AND amount_cents >= ?`
		res, err = dbTx.ExecContext(ctx, decrement, amountCents, now, amountCents)
	case core.Deposit:
		const increment = `UPDATE balance
		SET amount_cents = amount_cents + ?, updated_at = ?
		WHERE id = 1`
		res, err = dbTx.ExecContext(ctx, increment, amountCents, now)
	default:
		return core.Transaction{}, fmt.Errorf("unsupported transaction type: %s", txType)
	}
	if err != nil {
		return core.Transaction{}, storeError("update balance", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, storeError("update balance", err)
	}
	if affected == 0 {
		// Either the floor check rejected the spend or the singleton row
		// is missing; re-read to tell the two apart.
		var current int64
		err := dbTx.QueryRowContext(ctx, `SELECT amount_cents FROM balance WHERE id = 1`).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, core.ErrBalanceNotFound
		}
		if err != nil {
			return core.Transaction{}, storeError("get balance", err)
		}
		return core.Transaction{}, &core.InsufficientFundsError{Current: core.Money{Cents: current}}
	}

	var newBalance int64
	if err := dbTx.QueryRowContext(ctx, `SELECT amount_cents FROM balance WHERE id = 1`).Scan(&newBalance); err != nil {
		return core.Transaction{}, storeError("get balance", err)
	}

	const insert = `INSERT INTO transactions (type, amount_cents, description, balance_after_cents, created_at)
	VALUES (?, ?, ?, ?, ?)`
	insRes, err := dbTx.ExecContext(ctx, insert, string(txType), amountCents, description, newBalance, now)
	if err != nil {
		return core.Transaction{}, storeError("append transaction", err)
	}
	id, err := insRes.LastInsertId()
	if err != nil {
		return core.Transaction{}, storeError("append transaction", err)
	}

	if err := dbTx.Commit(); err != nil {
		return core.Transaction{}, storeError("commit transaction", err)
	}

	tx := core.Transaction{
		ID:           id,
		Type:         txType,
		Amount:       core.Money{Cents: amountCents},
		Description:  description,
		BalanceAfter: core.Money{Cents: newBalance},
		CreatedAt:    now,
	}

	slog.InfoContext(ctx, "Transaction recorded",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", amountCents,
		"balance_after_cents", newBalance)

	return tx, nil
}

// storeError wraps a driver failure so callers can match the taxonomy
// with errors.Is while keeping the original cause in the chain.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(core.ErrStoreUnavailable, err))
}
