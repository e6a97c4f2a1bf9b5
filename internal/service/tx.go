package service

import (
	"context"

	"gorm.io/gorm"
)

// txFunc executes fn inside one storage transaction: either everything fn
// writes commits, or none of it does.
type txFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error

// gormTx builds a txFunc over a GORM connection. A nil db calls fn directly,
// which lets unit tests drive services with in-memory repositories.
func gormTx(db *gorm.DB) txFunc {
	return func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		if db == nil {
			return fn(nil)
		}
		return db.WithContext(ctx).Transaction(fn)
	}
}
