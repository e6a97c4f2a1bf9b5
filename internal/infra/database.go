package infra

import (
	"fmt"

	"andespos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the idempotent SQL patches GORM cannot express (partial
// indexes, dropped FK constraints on weak references).
//
// TranslateError is enabled so that Postgres unique violations surface as
// gorm.ErrDuplicatedKey — the cash ledger maps those to SessionAlreadyOpen.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.Client{},
		&model.Category{},
		&model.Product{},
		&model.Provider{},
		&model.Sale{},
		&model.SaleLine{},
		&model.CashSession{},
		&model.CashMovement{},
		&model.Purchase{},
		&model.PurchaseLine{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// Every statement is safe to re-run on an already-patched schema.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The core invariant of the cash ledger: at most one open session per
		// tenant. Application code checks first, this index makes the check
		// race-proof — two concurrent opens cannot both commit.
		{"one open cash session per company", `
CREATE UNIQUE INDEX IF NOT EXISTS idx_cash_sessions_one_open
    ON cash_sessions (company_id)
    WHERE status = 'open'`},

		// Sale lines reference products weakly: deleting a product must not
		// fail or cascade onto historical lines. Drop the FK AutoMigrate may
		// have created from the association.
		{"drop sale_lines → products FK (weak reference)", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_sale_lines_product') THEN
    ALTER TABLE sale_lines DROP CONSTRAINT fk_sale_lines_product;
  END IF;
END $$`},
		{"drop purchase_lines → products FK (weak reference)", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_purchase_lines_product') THEN
    ALTER TABLE purchase_lines DROP CONSTRAINT fk_purchase_lines_product;
  END IF;
END $$`},

		// Reconciliation reads scan cash sales inside a session window.
		{"index for cash revenue aggregation", `
CREATE INDEX IF NOT EXISTS idx_sales_cash_window
    ON sales (company_id, occurred_at)
    WHERE status = 'completed'`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
