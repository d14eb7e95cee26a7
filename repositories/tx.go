package repositories

import (
	"context"
	"fmt"
	"time"
	"ua-shop/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx, so cart loading can run
// inside or outside a transaction.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}

// touchCart advances the cart generation: the version is bumped and the
// checkout key rotated, so any in-flight checkout that read the previous
// generation will fail its version check instead of clearing unseen lines.
func touchCart(ctx context.Context, tx pgx.Tx, cartID int) error {
	_, err := tx.Exec(ctx,
		"UPDATE carts SET version = version + 1, checkout_key = $1, updated_at = $2 WHERE id = $3",
		uuid.NewString(), time.Now(), cartID)
	if err != nil {
		return fmt.Errorf("failed to advance cart generation: %w", err)
	}
	return nil
}
