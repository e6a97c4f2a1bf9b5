package repository

import (
	"context"
	"errors"

	"andespos/internal/dto"
	"andespos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository is the data access contract for the product catalog and
// its stock counter. Stock mutations happen only inside the transaction of
// the sale, refund, or purchase that caused them.
type ProductRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, companyID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, companyID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error)
	// AdjustStockTx adds delta (negative to debit) to the product's stock.
	// A missing product is a silent no-op: historical transactions must not
	// fail because a catalog row was deleted.
	AdjustStockTx(tx *gorm.DB, companyID, id uuid.UUID, delta int) error
	UpdateCostTx(tx *gorm.DB, companyID, id uuid.UUID, cost decimal.Decimal) error
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Product, error) {
	return findProduct(r.db.WithContext(ctx), companyID, id)
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, companyID, id uuid.UUID) (*model.Product, error) {
	return findProduct(tx, companyID, id)
}

func findProduct(db *gorm.DB, companyID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := db.Preload("Category").
		Where("company_id = ?", companyID).
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRow
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, companyID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("company_id = ?", companyID)

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Code != "" {
		q = q.Where("code = ?", filter.Code)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").
		Order("name ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) AdjustStockTx(tx *gorm.DB, companyID, id uuid.UUID, delta int) error {
	// No floor: stock may go negative on oversell (see DESIGN.md).
	return tx.Model(&model.Product{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *productRepo) UpdateCostTx(tx *gorm.DB, companyID, id uuid.UUID, cost decimal.Decimal) error {
	return tx.Model(&model.Product{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Update("cost", cost).Error
}
