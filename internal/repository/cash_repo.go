package repository

import (
	"context"
	"errors"

	"andespos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNoRow normalizes "not found" across implementations so services never
// depend on gorm error values directly.
var ErrNoRow = errors.New("no row")

// CashRepository is the data access contract for the cash register ledger.
// Methods with a Tx suffix run inside a caller-owned transaction; movements
// have no update or delete methods on purpose — the ledger is append-only.
type CashRepository interface {
	CreateSessionTx(tx *gorm.DB, s *model.CashSession) error
	FindOpenSession(ctx context.Context, companyID uuid.UUID) (*model.CashSession, error)
	FindOpenSessionTx(tx *gorm.DB, companyID uuid.UUID) (*model.CashSession, error)
	UpdateSessionTx(tx *gorm.DB, s *model.CashSession) error
	CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error
	ListMovements(ctx context.Context, companyID, sessionID uuid.UUID) ([]model.CashMovement, error)
	SumMovements(ctx context.Context, companyID, sessionID uuid.UUID, kind string) (decimal.Decimal, error)
	ListClosedSessions(ctx context.Context, companyID uuid.UUID, limit int) ([]model.CashSession, error)
	DB() *gorm.DB
}

type cashRepo struct{ db *gorm.DB }

func NewCashRepository(db *gorm.DB) CashRepository { return &cashRepo{db: db} }

func (r *cashRepo) DB() *gorm.DB { return r.db }

func (r *cashRepo) CreateSessionTx(tx *gorm.DB, s *model.CashSession) error {
	return tx.Create(s).Error
}

func (r *cashRepo) FindOpenSession(ctx context.Context, companyID uuid.UUID) (*model.CashSession, error) {
	return findOpen(r.db.WithContext(ctx), companyID)
}

func (r *cashRepo) FindOpenSessionTx(tx *gorm.DB, companyID uuid.UUID) (*model.CashSession, error) {
	return findOpen(tx, companyID)
}

func findOpen(db *gorm.DB, companyID uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := db.Where("company_id = ? AND status = ?", companyID, model.SessionOpen).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRow
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashRepo) UpdateSessionTx(tx *gorm.DB, s *model.CashSession) error {
	return tx.Save(s).Error
}

func (r *cashRepo) CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error {
	return tx.Create(m).Error
}

func (r *cashRepo) ListMovements(ctx context.Context, companyID, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND session_id = ?", companyID, sessionID).
		Order("occurred_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cashRepo) SumMovements(ctx context.Context, companyID, sessionID uuid.UUID, kind string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.CashMovement{}).
		Where("company_id = ? AND session_id = ? AND kind = ?", companyID, sessionID, kind).
		Select("SUM(amount)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *cashRepo) ListClosedSessions(ctx context.Context, companyID uuid.UUID, limit int) ([]model.CashSession, error) {
	var sessions []model.CashSession
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, model.SessionClosed).
		Order("closed_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
