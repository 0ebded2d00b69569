package repositories

import (
	"context"

	"gorm.io/gorm"
)

type txRunner struct {
	db *gorm.DB
}

// NewTxRunner creates a TxRunner backed by gorm transactions
func NewTxRunner(db *gorm.DB) TxRunner {
	return &txRunner{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise
func (r *txRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
