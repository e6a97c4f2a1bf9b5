package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"andespos/internal/dto"
	"andespos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchaseServiceForTest(repo *fakePurchaseRepo, productRepo *fakeProductRepo) *purchaseService {
	return &purchaseService{
		repo:        repo,
		productRepo: productRepo,
		tx:          txWithRollback(repo.snapshot, productRepo.snapshot),
		now:         func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestCreatePurchase(t *testing.T) {
	repo := newFakePurchaseRepo()
	productRepo := newFakeProductRepo()
	svc := newPurchaseServiceForTest(repo, productRepo)
	companyID := uuid.New()

	p := productRepo.add(&model.Product{
		CompanyID: companyID, Name: "Rice", Stock: 4,
		Cost: decimal.NewFromInt(2),
	})

	purchase, err := svc.CreatePurchase(context.Background(), companyID, dto.CreatePurchaseRequest{
		Lines: []dto.PurchaseLineRequest{{
			ProductID: p.ID.String(),
			Quantity:  10,
			UnitCost:  decimal.NewFromInt(3),
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, "30", purchase.Total.String())
	assert.Equal(t, model.PurchasePaid, purchase.Status)
	// Stock entered and cost rolled forward to the latest purchase cost.
	assert.Equal(t, 14, productRepo.products[p.ID].Stock)
	assert.Equal(t, "3", productRepo.products[p.ID].Cost.String())
}

func TestCreatePurchaseAtomicity(t *testing.T) {
	repo := newFakePurchaseRepo()
	productRepo := newFakeProductRepo()
	svc := newPurchaseServiceForTest(repo, productRepo)
	companyID := uuid.New()

	p := productRepo.add(&model.Product{
		CompanyID: companyID, Name: "Flour", Stock: 4, Cost: decimal.NewFromInt(2),
	})
	productRepo.adjustErr = errors.New("connection reset")

	_, err := svc.CreatePurchase(context.Background(), companyID, dto.CreatePurchaseRequest{
		Lines: []dto.PurchaseLineRequest{{
			ProductID: p.ID.String(),
			Quantity:  10,
			UnitCost:  decimal.NewFromInt(3),
		}},
	})

	require.Error(t, err)
	assert.Empty(t, repo.purchases)
	assert.Equal(t, 4, productRepo.products[p.ID].Stock)
	assert.Equal(t, "2", productRepo.products[p.ID].Cost.String())
}

func TestCreatePurchasePendingStatus(t *testing.T) {
	repo := newFakePurchaseRepo()
	productRepo := newFakeProductRepo()
	svc := newPurchaseServiceForTest(repo, productRepo)
	companyID := uuid.New()

	p := productRepo.add(&model.Product{CompanyID: companyID, Name: "Salt"})

	purchase, err := svc.CreatePurchase(context.Background(), companyID, dto.CreatePurchaseRequest{
		Status: model.PurchasePending,
		Lines: []dto.PurchaseLineRequest{{
			ProductID: p.ID.String(),
			Quantity:  1,
			UnitCost:  decimal.NewFromInt(1),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PurchasePending, purchase.Status)
}
