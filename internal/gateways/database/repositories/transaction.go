package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// TxOptions configures transaction behavior
type TxOptions struct {
	Isolation sql.IsolationLevel
	Timeout   time.Duration
	// Retries is how many more times a serialization failure is retried.
	Retries int
}

func standardTx() TxOptions {
	return TxOptions{Isolation: sql.LevelReadCommitted, Timeout: defaultTimeout}
}

func serializableTx() TxOptions {
	return TxOptions{Isolation: sql.LevelSerializable, Timeout: defaultTimeout, Retries: 3}
}

// withTransaction runs fn in a transaction, retrying from scratch when
// Postgres aborts it with a serialization failure or deadlock.
func withTransaction(ctx context.Context, db *bun.DB, opts TxOptions, fn func(context.Context, bun.Tx) error) error {
	var err error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying transaction",
				slog.String("type", "db"),
				slog.Int("attempt", attempt),
				slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt*25) * time.Millisecond):
			}
		}
		err = runTx(ctx, db, opts, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return err
}

func runTx(ctx context.Context, db *bun.DB, opts TxOptions, fn func(context.Context, bun.Tx) error) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tx, err := db.BeginTx(timeoutCtx, &sql.TxOptions{Isolation: opts.Isolation})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(timeoutCtx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
