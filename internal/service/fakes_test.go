package service

// In-memory repository fakes for service tests. The fake tx runner snapshots
// repo state before the callback and restores it on error, mimicking a real
// rollback closely enough to assert atomicity.

import (
	"context"
	"time"

	"andespos/internal/dto"
	"andespos/internal/model"
	"andespos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// txWithRollback builds a txFunc over snapshot closures. Each closure captures
// the current state of one fake and returns its restore function.
func txWithRollback(snapshots ...func() func()) txFunc {
	return func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		restores := make([]func(), 0, len(snapshots))
		for _, snap := range snapshots {
			restores = append(restores, snap())
		}
		if err := fn(nil); err != nil {
			for _, restore := range restores {
				restore()
			}
			return err
		}
		return nil
	}
}

// ── Cash repository fake ─────────────────────────────────────────────────────

type fakeCashRepo struct {
	sessions  map[uuid.UUID]*model.CashSession
	movements []model.CashMovement

	movementErr error // injected failure for CreateMovementTx
}

func newFakeCashRepo() *fakeCashRepo {
	return &fakeCashRepo{sessions: make(map[uuid.UUID]*model.CashSession)}
}

func (r *fakeCashRepo) snapshot() func() {
	sessions := make(map[uuid.UUID]*model.CashSession, len(r.sessions))
	for id, s := range r.sessions {
		copied := *s
		sessions[id] = &copied
	}
	movements := append([]model.CashMovement(nil), r.movements...)
	return func() {
		r.sessions = sessions
		r.movements = movements
	}
}

func (r *fakeCashRepo) DB() *gorm.DB { return nil }

func (r *fakeCashRepo) CreateSessionTx(_ *gorm.DB, s *model.CashSession) error {
	for _, existing := range r.sessions {
		if existing.CompanyID == s.CompanyID && existing.Status == model.SessionOpen {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeCashRepo) FindOpenSession(_ context.Context, companyID uuid.UUID) (*model.CashSession, error) {
	return r.findOpen(companyID)
}

func (r *fakeCashRepo) FindOpenSessionTx(_ *gorm.DB, companyID uuid.UUID) (*model.CashSession, error) {
	return r.findOpen(companyID)
}

func (r *fakeCashRepo) findOpen(companyID uuid.UUID) (*model.CashSession, error) {
	for _, s := range r.sessions {
		if s.CompanyID == companyID && s.Status == model.SessionOpen {
			return s, nil
		}
	}
	return nil, repository.ErrNoRow
}

func (r *fakeCashRepo) UpdateSessionTx(_ *gorm.DB, s *model.CashSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeCashRepo) CreateMovementTx(_ *gorm.DB, m *model.CashMovement) error {
	if r.movementErr != nil {
		return r.movementErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeCashRepo) ListMovements(_ context.Context, companyID, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var result []model.CashMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.SessionID == sessionID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeCashRepo) SumMovements(_ context.Context, companyID, sessionID uuid.UUID, kind string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.SessionID == sessionID && m.Kind == kind {
			sum = sum.Add(m.Amount)
		}
	}
	return sum, nil
}

func (r *fakeCashRepo) ListClosedSessions(_ context.Context, companyID uuid.UUID, limit int) ([]model.CashSession, error) {
	var result []model.CashSession
	for _, s := range r.sessions {
		if s.CompanyID == companyID && s.Status == model.SessionClosed {
			result = append(result, *s)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ repository.CashRepository = (*fakeCashRepo)(nil)

// ── Sale repository fake ─────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales map[uuid.UUID]*model.Sale

	createErr error // injected failure for CreateTx
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *fakeSaleRepo) snapshot() func() {
	sales := make(map[uuid.UUID]*model.Sale, len(r.sales))
	for id, s := range r.sales {
		copied := *s
		copied.Lines = append([]model.SaleLine(nil), s.Lines...)
		sales[id] = &copied
	}
	return func() { r.sales = sales }
}

func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

func (r *fakeSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Lines {
		if s.Lines[i].ID == uuid.Nil {
			s.Lines[i].ID = uuid.New()
		}
		s.Lines[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) FindByIDTx(_ *gorm.DB, companyID, id uuid.UUID) (*model.Sale, error) {
	return r.find(companyID, id)
}

func (r *fakeSaleRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.Sale, error) {
	return r.find(companyID, id)
}

func (r *fakeSaleRepo) find(companyID, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok || s.CompanyID != companyID {
		return nil, repository.ErrNoRow
	}
	copied := *s
	copied.Lines = append([]model.SaleLine(nil), s.Lines...)
	return &copied, nil
}

func (r *fakeSaleRepo) UpdateStatusTx(_ *gorm.DB, companyID, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok || s.CompanyID != companyID {
		return repository.ErrNoRow
	}
	s.Status = status
	return nil
}

func (r *fakeSaleRepo) SumCashSince(_ context.Context, companyID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if s.CompanyID == companyID &&
			s.Status == model.SaleCompleted &&
			s.PaymentMethod == model.PaymentCash &&
			!s.OccurredAt.Before(since) {
			sum = sum.Add(s.Total)
		}
	}
	return sum, nil
}

func (r *fakeSaleRepo) List(_ context.Context, companyID uuid.UUID, from, to *time.Time, status string) ([]model.Sale, error) {
	var result []model.Sale
	for _, s := range r.sales {
		if s.CompanyID != companyID {
			continue
		}
		if from != nil && s.OccurredAt.Before(*from) {
			continue
		}
		if to != nil && s.OccurredAt.After(*to) {
			continue
		}
		if status != "" && status != "all" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

// ── Product repository fake ──────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product

	adjustErr error // injected failure for AdjustStockTx
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) snapshot() func() {
	products := make(map[uuid.UUID]*model.Product, len(r.products))
	for id, p := range r.products {
		copied := *p
		products[id] = &copied
	}
	return func() { r.products = products }
}

func (r *fakeProductRepo) DB() *gorm.DB { return nil }

func (r *fakeProductRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*model.Product, error) {
	return r.find(companyID, id)
}

func (r *fakeProductRepo) FindByIDTx(_ *gorm.DB, companyID, id uuid.UUID) (*model.Product, error) {
	return r.find(companyID, id)
}

func (r *fakeProductRepo) find(companyID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, repository.ErrNoRow
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) List(_ context.Context, companyID uuid.UUID, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) AdjustStockTx(_ *gorm.DB, companyID, id uuid.UUID, delta int) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil // missing products are a silent no-op
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) UpdateCostTx(_ *gorm.DB, companyID, id uuid.UUID, cost decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil
	}
	p.Cost = cost
	return nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

// ── Purchase repository fake ─────────────────────────────────────────────────

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *fakePurchaseRepo) snapshot() func() {
	purchases := make(map[uuid.UUID]*model.Purchase, len(r.purchases))
	for id, p := range r.purchases {
		copied := *p
		purchases[id] = &copied
	}
	return func() { r.purchases = purchases }
}

func (r *fakePurchaseRepo) DB() *gorm.DB { return nil }

func (r *fakePurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Lines {
		if p.Lines[i].ID == uuid.Nil {
			p.Lines[i].ID = uuid.New()
		}
		p.Lines[i].PurchaseID = p.ID
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) List(_ context.Context, companyID uuid.UUID) ([]model.Purchase, error) {
	var result []model.Purchase
	for _, p := range r.purchases {
		if p.CompanyID == companyID {
			result = append(result, *p)
		}
	}
	return result, nil
}

var _ repository.PurchaseRepository = (*fakePurchaseRepo)(nil)
