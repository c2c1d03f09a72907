// Package collab holds the adapters for the engine's external
// collaborators: the funds ledger, the attestation provider and asset
// ownership. The core only sees the port interfaces; these postgres
// implementations make the service complete end to end.
package collab

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rights-engine/internal/core/domain"
)

// Ledger implements port.Ledger over the ledger_* tables. Pooled funds
// collected by the engine are custodied under a single escrow account;
// reserves and transfers spend from it.
type Ledger struct {
	pool   *pgxpool.Pool
	escrow string
}

// NewLedger returns a ledger adapter custodying funds under the given
// escrow account.
func NewLedger(pool *pgxpool.Pool, escrow string) *Ledger {
	return &Ledger{pool: pool, escrow: escrow}
}

// Collect pulls amount from payer into the escrow account.
func (l *Ledger) Collect(ctx context.Context, payer string, amount int64, currency string) (int64, error) {
	if err := l.move(ctx, payer, l.escrow, amount, currency); err != nil {
		return 0, err
	}
	return amount, nil
}

// Transfer pays amount out of the escrow account to the recipient.
func (l *Ledger) Transfer(ctx context.Context, to string, amount int64, currency string) (int64, error) {
	if err := l.move(ctx, l.escrow, to, amount, currency); err != nil {
		return 0, err
	}
	return amount, nil
}

// Approve grants spender an allowance against the escrow account.
func (l *Ledger) Approve(ctx context.Context, spender string, amount int64, currency string) error {
	if amount < 0 {
		return fmt.Errorf("approve: %w", domain.ErrInvalidInput)
	}
	_, err := l.pool.Exec(ctx, `INSERT INTO ledger_allowances (spender, currency, amount)
VALUES ($1, $2, $3)
ON CONFLICT (spender, currency) DO UPDATE SET amount = EXCLUDED.amount`,
		spender, currency, amount)
	return err
}

// Reserve earmarks amount for spender: the funds leave the escrow
// balance and sit in a hold row until spent through the payment path.
func (l *Ledger) Reserve(ctx context.Context, spender string, amount int64, currency string) error {
	if amount <= 0 {
		return fmt.Errorf("reserve: %w", domain.ErrInvalidInput)
	}
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	if err = debit(ctx, tx, l.escrow, amount, currency); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO ledger_holds (spender, currency, amount) VALUES ($1, $2, $3)`,
		spender, currency, amount)
	return err
}

// GetBalance returns the account balance, 0 for unknown accounts.
func (l *Ledger) GetBalance(ctx context.Context, account string, currency string) (int64, error) {
	var balance int64
	err := l.pool.QueryRow(ctx,
		`SELECT balance FROM ledger_accounts WHERE account = $1 AND currency = $2`,
		account, currency).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// move debits from and credits to in one serializable transaction.
func (l *Ledger) move(ctx context.Context, from, to string, amount int64, currency string) error {
	if amount <= 0 {
		return fmt.Errorf("ledger move: %w", domain.ErrInvalidInput)
	}
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	if err = debit(ctx, tx, from, amount, currency); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO ledger_accounts (account, currency, balance)
VALUES ($1, $2, $3)
ON CONFLICT (account, currency) DO UPDATE SET balance = ledger_accounts.balance + EXCLUDED.balance`,
		to, currency, amount)
	return err
}

// debit locks the account row and subtracts amount, failing on
// overdraft.
func debit(ctx context.Context, tx pgx.Tx, account string, amount int64, currency string) error {
	var balance int64
	err := tx.QueryRow(ctx,
		`SELECT balance FROM ledger_accounts WHERE account = $1 AND currency = $2 FOR UPDATE`,
		account, currency).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("account %s has no %s balance: %w", account, currency, domain.ErrInsufficientFunds)
	}
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("account %s balance %d below %d: %w", account, balance, amount, domain.ErrInsufficientFunds)
	}
	_, err = tx.Exec(ctx,
		`UPDATE ledger_accounts SET balance = balance - $1 WHERE account = $2 AND currency = $3`,
		amount, account, currency)
	return err
}
