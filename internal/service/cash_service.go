package service

import (
	"context"
	"errors"
	"time"

	"andespos/internal/dto"
	"andespos/internal/model"
	"andespos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashService owns the cash register ledger: session lifecycle, manual
// movements, and the drawer reconciliation.
type CashService interface {
	OpenSession(ctx context.Context, companyID, operatorID uuid.UUID, req dto.OpenSessionRequest) (*model.CashSession, error)
	RecordMovement(ctx context.Context, companyID, operatorID uuid.UUID, req dto.MovementRequest) (*model.CashMovement, error)
	GetStatus(ctx context.Context, companyID uuid.UUID) (*dto.CashStatusResponse, error)
	CloseSession(ctx context.Context, companyID uuid.UUID, req dto.CloseSessionRequest) (*model.CashSession, error)
	ListHistory(ctx context.Context, companyID uuid.UUID) ([]model.CashSession, error)
}

const historyLimit = 50

type cashService struct {
	repo     repository.CashRepository
	saleRepo repository.SaleRepository
	tx       txFunc
	now      func() time.Time
}

func NewCashService(repo repository.CashRepository, saleRepo repository.SaleRepository) CashService {
	return &cashService{
		repo:     repo,
		saleRepo: saleRepo,
		tx:       gormTx(repo.DB()),
		now:      time.Now,
	}
}

// OpenSession creates a new open session. The existence check and the insert
// run in one transaction, and the partial unique index on
// cash_sessions(company_id) WHERE status='open' backstops the check: two
// racing opens cannot both commit.
func (s *cashService) OpenSession(ctx context.Context, companyID, operatorID uuid.UUID, req dto.OpenSessionRequest) (*model.CashSession, error) {
	session := &model.CashSession{
		CompanyID:    companyID,
		OperatorID:   operatorID,
		OpeningFloat: req.OpeningFloat,
		Status:       model.SessionOpen,
		OpenedAt:     s.now().UTC(),
	}

	err := s.tx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.FindOpenSessionTx(tx, companyID); err == nil {
			return ErrSessionAlreadyOpen
		} else if !errors.Is(err, repository.ErrNoRow) {
			return err
		}
		return s.repo.CreateSessionTx(tx, session)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race: another open committed between check and insert.
		return nil, ErrSessionAlreadyOpen
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// RecordMovement appends an immutable ledger entry to the tenant's open
// session. Fails with ErrNoOpenSession when the drawer is closed.
func (s *cashService) RecordMovement(ctx context.Context, companyID, operatorID uuid.UUID, req dto.MovementRequest) (*model.CashMovement, error) {
	var movement *model.CashMovement
	err := s.tx(ctx, func(tx *gorm.DB) error {
		session, err := s.repo.FindOpenSessionTx(tx, companyID)
		if errors.Is(err, repository.ErrNoRow) {
			return ErrNoOpenSession
		}
		if err != nil {
			return err
		}
		movement = &model.CashMovement{
			SessionID:   session.ID,
			CompanyID:   companyID,
			OperatorID:  operatorID,
			Kind:        req.Kind,
			Amount:      req.Amount,
			Description: req.Description,
			OccurredAt:  s.now().UTC(),
		}
		return s.repo.CreateMovementTx(tx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// GetStatus reports the drawer state. For an open session every figure is
// recomputed from raw facts — opening float, cash sales since open, and the
// movement ledger — so the result self-heals from refunds or late inserts
// instead of drifting the way an incrementally maintained counter would.
func (s *cashService) GetStatus(ctx context.Context, companyID uuid.UUID) (*dto.CashStatusResponse, error) {
	session, err := s.repo.FindOpenSession(ctx, companyID)
	if errors.Is(err, repository.ErrNoRow) {
		return &dto.CashStatusResponse{Status: model.SessionClosed}, nil
	}
	if err != nil {
		return nil, err
	}

	salesCash, in, out, expected, err := s.reconcile(ctx, companyID, session)
	if err != nil {
		return nil, err
	}
	return &dto.CashStatusResponse{
		Status:       model.SessionOpen,
		Session:      session,
		SalesCash:    &salesCash,
		MovementsIn:  &in,
		MovementsOut: &out,
		ExpectedCash: &expected,
	}, nil
}

// CloseSession freezes the reconciliation and flips the session to closed.
// expectedCash/variance become immutable snapshots: sales or refunds landing
// after the close never retroactively alter them.
func (s *cashService) CloseSession(ctx context.Context, companyID uuid.UUID, req dto.CloseSessionRequest) (*model.CashSession, error) {
	session, err := s.repo.FindOpenSession(ctx, companyID)
	if errors.Is(err, repository.ErrNoRow) {
		return nil, ErrNoOpenSession
	}
	if err != nil {
		return nil, err
	}

	_, _, _, expected, err := s.reconcile(ctx, companyID, session)
	if err != nil {
		return nil, err
	}
	variance := req.ClosingCount.Sub(expected)
	closedAt := s.now().UTC()

	session.ClosingCount = &req.ClosingCount
	session.ExpectedCash = &expected
	session.Variance = &variance
	session.Notes = req.Notes
	session.Status = model.SessionClosed
	session.ClosedAt = &closedAt

	err = s.tx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateSessionTx(tx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListHistory returns closed sessions, newest first, for administrative audit.
func (s *cashService) ListHistory(ctx context.Context, companyID uuid.UUID) ([]model.CashSession, error) {
	return s.repo.ListClosedSessions(ctx, companyID, historyLimit)
}

// reconcile computes the expected-cash identity for an open session:
//
//	expected = openingFloat + cash sales since open + IN movements − OUT movements
func (s *cashService) reconcile(ctx context.Context, companyID uuid.UUID, session *model.CashSession) (salesCash, in, out, expected decimal.Decimal, err error) {
	salesCash, err = s.saleRepo.SumCashSince(ctx, companyID, session.OpenedAt)
	if err != nil {
		return
	}
	in, err = s.repo.SumMovements(ctx, companyID, session.ID, model.MovementIn)
	if err != nil {
		return
	}
	out, err = s.repo.SumMovements(ctx, companyID, session.ID, model.MovementOut)
	if err != nil {
		return
	}
	expected = session.OpeningFloat.Add(salesCash).Add(in).Sub(out)
	return
}
