package repository

import (
	"context"
	"errors"

	"andespos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository reads tenant rows. Companies are provisioned outside the
// API, so this repository is lookup-only.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository { return &companyRepo{db: db} }

func (r *companyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRow
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
