// Package db carries the transaction plumbing shared by the workflow
// use cases and the gorm repositories.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey keys the active transaction inside a context.
type txKey struct{}

// TransactionManager opens gorm transactions and threads them through
// context so repositories join the same transaction without knowing
// who started it.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside a single database transaction. The
// context passed to fn carries the open transaction, so every repository
// call made with it participates in the same unit of work. A non-nil
// error from fn rolls the whole transaction back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// GetTxFromContext returns the transaction carried by ctx, or defaultDB
// bound to ctx when no transaction is open. Repositories call this at the
// top of every method so reads and writes land on the right connection.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
