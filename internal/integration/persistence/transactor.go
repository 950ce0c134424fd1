// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

type txKey struct{}

// gormTransactor implements the adapter.Transactor interface.
type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor whose transactions are joined by every repository
// of this package when called with the context handed to the unit of work.
func NewTransactor(db *gorm.DB) adapter.Transactor {
	return &gormTransactor{
		db: db,
	}
}

// WithinTransaction runs fn in a database transaction, joining the caller's transaction if any.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
