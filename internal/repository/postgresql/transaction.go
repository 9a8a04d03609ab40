package postgresql

import (
	"context"

	"github.com/wagebook/wagebook-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction attached to ctx, or the pool.
// Repositories call it on every method so they work both inside and outside
// a batch transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFrom(ctx); ok {
		return tx
	}
	return db.Pool
}

// TxRunner adapts database.WithTransaction to the orchestrator's interface.
type TxRunner struct {
	db *database.DB
}

func NewTxRunner(db *database.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.WithTransaction(ctx, r.db, fn)
}
