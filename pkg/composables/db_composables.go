package composables

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/teamtrack/pkg/constants"
	"github.com/iota-uz/teamtrack/pkg/repo"
)

var ErrNoPool = errors.New("no database pool found in context")

func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, constants.TxKey, tx)
}

func UseTx(ctx context.Context) (repo.Tx, error) {
	tx := ctx.Value(constants.TxKey)
	if tx == nil {
		return UsePool(ctx)
	}
	return tx.(repo.Tx), nil
}

func WithPool(ctx context.Context, pool *pgxpool.Pool) context.Context {
	return context.WithValue(ctx, constants.PoolKey, pool)
}

func UsePool(ctx context.Context) (*pgxpool.Pool, error) {
	pool := ctx.Value(constants.PoolKey)
	if pool == nil {
		return nil, ErrNoPool
	}
	return pool.(*pgxpool.Pool), nil
}

// InTxResult runs fn inside a transaction and commits when it succeeds.
// When the context already carries a transaction the callback joins it
// instead of opening a nested one.
func InTxResult[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if existing, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok && existing != nil {
		return fn(ctx)
	}

	pool, err := UsePool(ctx)
	if err != nil {
		return zero, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, err
	}

	txCtx := WithTx(ctx, tx)
	out, err := fn(txCtx)
	if err != nil {
		if rErr := tx.Rollback(ctx); rErr != nil {
			return zero, errors.Join(err, rErr)
		}
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return out, nil
}
