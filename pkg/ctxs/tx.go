package ctxs

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// WithTx stores the transaction in the context so closures run inside
// repository updates can publish events on the same transaction.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func Tx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}
