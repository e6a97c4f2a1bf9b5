package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"andespos/internal/dto"
	"andespos/internal/model"
	"andespos/internal/repository"
	"andespos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService is the sale/refund transaction engine. Each operation is one
// atomic unit covering the sale row, its lines, the stock counters, and (on
// refund) the conditional cash compensation.
type SaleService interface {
	CreateSale(ctx context.Context, companyID, operatorID uuid.UUID, req dto.CreateSaleRequest) (*model.Sale, error)
	RefundSale(ctx context.Context, companyID, saleID, operatorID uuid.UUID) (*model.Sale, error)
	ListSales(ctx context.Context, companyID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	cashRepo    repository.CashRepository
	dispatcher  *worker.Dispatcher
	tx          txFunc
	now         func() time.Time
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	cashRepo repository.CashRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:        repo,
		productRepo: productRepo,
		cashRepo:    cashRepo,
		dispatcher:  dispatcher,
		tx:          gormTx(repo.DB()),
		now:         time.Now,
	}
}

// CreateSale persists the sale header, its immutable lines, and the per-line
// stock debits as one atomic unit. The unit price comes from the request (the
// register may override catalog prices); the unit cost is snapshotted from
// the product row at sale time for later margin reporting. Stock is not
// floored at zero — overselling drives it negative.
func (s *saleService) CreateSale(ctx context.Context, companyID, operatorID uuid.UUID, req dto.CreateSaleRequest) (*model.Sale, error) {
	var clientID *uuid.UUID
	if req.ClientID != nil {
		id, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("invalid clientId: %w", err)
		}
		clientID = &id
	}

	total := decimal.Zero
	productIDs := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid productId: %w", err)
		}
		productIDs = append(productIDs, pid)
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	sale := &model.Sale{
		CompanyID:     companyID,
		ClientID:      clientID,
		OperatorID:    operatorID,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Status:        model.SaleCompleted,
		OccurredAt:    s.now().UTC(),
	}

	err := s.tx(ctx, func(tx *gorm.DB) error {
		for i, line := range req.Lines {
			// Cost snapshot happens inside the transaction so the line
			// records the cost in effect at commit time. A product deleted
			// from the catalog sells at cost zero and skips the stock debit.
			cost := decimal.Zero
			product, err := s.productRepo.FindByIDTx(tx, companyID, productIDs[i])
			if err == nil {
				cost = product.Cost
			} else if !errors.Is(err, repository.ErrNoRow) {
				return err
			}

			sale.Lines = append(sale.Lines, model.SaleLine{
				ProductID: productIDs[i],
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				UnitCost:  cost,
			})
		}

		if err := s.repo.CreateTx(tx, sale); err != nil {
			return err
		}

		for i, line := range req.Lines {
			if err := s.productRepo.AdjustStockTx(tx, companyID, productIDs[i], -line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil && req.ReceiptEmail != nil && *req.ReceiptEmail != "" {
		// Best effort — the sale is already committed.
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJob{
			SaleID:    sale.ID.String(),
			CompanyID: companyID.String(),
			Email:     *req.ReceiptEmail,
		})
	}
	return sale, nil
}

// RefundSale reverses a completed sale in one atomic unit: restock every
// line, append a compensating cash OUT movement when the sale was paid in
// cash and a session is open, and flip the status to refunded.
//
// The cash compensation is conditional by design: a refund is a business
// event independent of whether a drawer happens to be open, so the absence of
// a session skips the movement without blocking the refund. Restocking a
// product that no longer exists is a silent no-op for the same reason.
func (s *saleService) RefundSale(ctx context.Context, companyID, saleID, operatorID uuid.UUID) (*model.Sale, error) {
	var sale *model.Sale
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var err error
		sale, err = s.repo.FindByIDTx(tx, companyID, saleID)
		if errors.Is(err, repository.ErrNoRow) {
			return ErrSaleNotFound
		}
		if err != nil {
			return err
		}
		if sale.Status == model.SaleRefunded {
			return ErrAlreadyRefunded
		}

		for _, line := range sale.Lines {
			if err := s.productRepo.AdjustStockTx(tx, companyID, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if sale.PaymentMethod == model.PaymentCash {
			session, err := s.cashRepo.FindOpenSessionTx(tx, companyID)
			switch {
			case err == nil:
				movement := &model.CashMovement{
					SessionID:   session.ID,
					CompanyID:   companyID,
					OperatorID:  operatorID,
					Kind:        model.MovementOut,
					Amount:      sale.Total,
					Description: fmt.Sprintf("Refund of Sale #%s", sale.ID),
					ReferenceID: &sale.ID,
					OccurredAt:  s.now().UTC(),
				}
				if err := s.cashRepo.CreateMovementTx(tx, movement); err != nil {
					return err
				}
			case errors.Is(err, repository.ErrNoRow):
				// No drawer open — the refund proceeds without compensation.
			default:
				return err
			}
		}

		if err := s.repo.UpdateStatusTx(tx, companyID, saleID, model.SaleRefunded); err != nil {
			return err
		}
		sale.Status = model.SaleRefunded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ListSales returns sales for the tenant inside the requested window, newest
// first. Date windowing here is presentation-level; the ledger core always
// compares raw UTC instants.
func (s *saleService) ListSales(ctx context.Context, companyID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, error) {
	from, to := resolveWindow(filter, s.now().UTC())
	return s.repo.List(ctx, companyID, from, to, filter.Status)
}

func resolveWindow(filter dto.SaleFilter, now time.Time) (from, to *time.Time) {
	switch filter.Range {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		from = &start
	case "week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Monday-based week
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -(weekday - 1))
		from = &start
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		from = &start
	case "custom":
		if start, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			from = &start
		}
		if end, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			e := end.AddDate(0, 0, 1).Add(-time.Millisecond)
			to = &e
		}
	}
	return from, to
}
