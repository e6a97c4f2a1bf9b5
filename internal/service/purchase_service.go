package service

import (
	"context"
	"fmt"
	"time"

	"andespos/internal/dto"
	"andespos/internal/model"
	"andespos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseService handles stock entry: receiving goods from a provider
// increments product stock and rolls product cost forward to the latest
// purchase cost, all inside one transaction.
type PurchaseService interface {
	CreatePurchase(ctx context.Context, companyID uuid.UUID, req dto.CreatePurchaseRequest) (*model.Purchase, error)
	ListPurchases(ctx context.Context, companyID uuid.UUID) ([]model.Purchase, error)
}

type purchaseService struct {
	repo        repository.PurchaseRepository
	productRepo repository.ProductRepository
	tx          txFunc
	now         func() time.Time
}

func NewPurchaseService(repo repository.PurchaseRepository, productRepo repository.ProductRepository) PurchaseService {
	return &purchaseService{
		repo:        repo,
		productRepo: productRepo,
		tx:          gormTx(repo.DB()),
		now:         time.Now,
	}
}

func (s *purchaseService) CreatePurchase(ctx context.Context, companyID uuid.UUID, req dto.CreatePurchaseRequest) (*model.Purchase, error) {
	var providerID *uuid.UUID
	if req.ProviderID != nil {
		id, err := uuid.Parse(*req.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("invalid providerId: %w", err)
		}
		providerID = &id
	}

	status := req.Status
	if status == "" {
		status = model.PurchasePaid
	}

	total := decimal.Zero
	productIDs := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid productId: %w", err)
		}
		productIDs = append(productIDs, pid)
		total = total.Add(line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	purchase := &model.Purchase{
		CompanyID:  companyID,
		ProviderID: providerID,
		Total:      total,
		Status:     status,
		OccurredAt: s.now().UTC(),
	}
	for i, line := range req.Lines {
		purchase.Lines = append(purchase.Lines, model.PurchaseLine{
			ProductID: productIDs[i],
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}

	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, purchase); err != nil {
			return err
		}
		for i, line := range req.Lines {
			if err := s.productRepo.AdjustStockTx(tx, companyID, productIDs[i], line.Quantity); err != nil {
				return err
			}
			if err := s.productRepo.UpdateCostTx(tx, companyID, productIDs[i], line.UnitCost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, companyID uuid.UUID) ([]model.Purchase, error) {
	return s.repo.List(ctx, companyID)
}
