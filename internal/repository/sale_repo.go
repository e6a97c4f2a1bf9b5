package repository

import (
	"context"
	"errors"
	"time"

	"andespos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRepository is the data access contract for sales and their lines.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByIDTx(tx *gorm.DB, companyID, id uuid.UUID) (*model.Sale, error)
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Sale, error)
	UpdateStatusTx(tx *gorm.DB, companyID, id uuid.UUID, status string) error
	// SumCashSince aggregates completed cash revenue in [since, now) for the
	// drawer reconciliation.
	SumCashSince(ctx context.Context, companyID uuid.UUID, since time.Time) (decimal.Decimal, error)
	List(ctx context.Context, companyID uuid.UUID, from, to *time.Time, status string) ([]model.Sale, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByIDTx(tx *gorm.DB, companyID, id uuid.UUID) (*model.Sale, error) {
	return findSale(tx, companyID, id)
}

func (r *saleRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Sale, error) {
	return findSale(r.db.WithContext(ctx), companyID, id)
}

func findSale(db *gorm.DB, companyID, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := db.Preload("Lines").Preload("Lines.Product").
		Where("company_id = ?", companyID).
		First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRow
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) UpdateStatusTx(tx *gorm.DB, companyID, id uuid.UUID, status string) error {
	return tx.Model(&model.Sale{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Update("status", status).Error
}

func (r *saleRepo) SumCashSince(ctx context.Context, companyID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("company_id = ? AND status = ? AND payment_method = ? AND occurred_at >= ?",
			companyID, model.SaleCompleted, model.PaymentCash, since).
		Select("SUM(total)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *saleRepo) List(ctx context.Context, companyID uuid.UUID, from, to *time.Time, status string) ([]model.Sale, error) {
	q := r.db.WithContext(ctx).
		Preload("Lines").Preload("Client").Preload("Operator").
		Where("company_id = ?", companyID)
	if from != nil {
		q = q.Where("occurred_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("occurred_at <= ?", *to)
	}
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	var sales []model.Sale
	err := q.Order("occurred_at DESC").Find(&sales).Error
	return sales, err
}
