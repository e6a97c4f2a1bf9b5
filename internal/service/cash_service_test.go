package service

import (
	"context"
	"testing"
	"time"

	"andespos/internal/dto"
	"andespos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCashServiceForTest(cashRepo *fakeCashRepo, saleRepo *fakeSaleRepo, now time.Time) *cashService {
	return &cashService{
		repo:     cashRepo,
		saleRepo: saleRepo,
		tx:       txWithRollback(cashRepo.snapshot),
		now:      func() time.Time { return now },
	}
}

func TestOpenSession(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())
	companyID := uuid.New()

	session, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{
		OpeningFloat: decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	assert.Equal(t, model.SessionOpen, session.Status)
	assert.Equal(t, "100", session.OpeningFloat.String())
	assert.Nil(t, session.ExpectedCash)
	assert.Nil(t, session.ClosedAt)
}

func TestOpenSessionAlreadyOpen(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())
	companyID := uuid.New()

	_, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{
		OpeningFloat: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{
		OpeningFloat: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
}

// Two racing opens pass the existence check, only one insert commits: the
// loser's duplicate-key error must surface as ErrSessionAlreadyOpen.
func TestOpenSessionLosesRace(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())
	svc.tx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return gorm.ErrDuplicatedKey
	}

	_, err := svc.OpenSession(context.Background(), uuid.New(), uuid.New(), dto.OpenSessionRequest{})
	assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
}

func TestOpenSessionPerTenant(t *testing.T) {
	// One open session per company, not globally.
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())

	_, err := svc.OpenSession(context.Background(), uuid.New(), uuid.New(), dto.OpenSessionRequest{})
	require.NoError(t, err)
	_, err = svc.OpenSession(context.Background(), uuid.New(), uuid.New(), dto.OpenSessionRequest{})
	require.NoError(t, err)
}

func TestRecordMovementRequiresOpenSession(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())

	_, err := svc.RecordMovement(context.Background(), uuid.New(), uuid.New(), dto.MovementRequest{
		Kind:        model.MovementIn,
		Amount:      decimal.NewFromInt(30),
		Description: "change fund",
	})
	assert.ErrorIs(t, err, ErrNoOpenSession)
	assert.Empty(t, repo.movements)
}

func TestRecordMovement(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())
	companyID := uuid.New()

	session, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{})
	require.NoError(t, err)

	mv, err := svc.RecordMovement(context.Background(), companyID, uuid.New(), dto.MovementRequest{
		Kind:        model.MovementOut,
		Amount:      decimal.NewFromInt(20),
		Description: "supplier cash payment",
	})
	require.NoError(t, err)
	assert.Equal(t, session.ID, mv.SessionID)
	assert.Equal(t, model.MovementOut, mv.Kind)
	require.Len(t, repo.movements, 1)
}

func TestGetStatusClosedDrawer(t *testing.T) {
	svc := newCashServiceForTest(newFakeCashRepo(), newFakeSaleRepo(), time.Now())

	resp, err := svc.GetStatus(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.SessionClosed, resp.Status)
	assert.Nil(t, resp.Session)
	assert.Nil(t, resp.ExpectedCash)
}

// Drawer identity: expected = openingFloat + cash sales since open + IN − OUT.
func TestGetStatusReconciliation(t *testing.T) {
	repo := newFakeCashRepo()
	saleRepo := newFakeSaleRepo()
	openedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newCashServiceForTest(repo, saleRepo, openedAt)
	companyID := uuid.New()

	session, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{
		OpeningFloat: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Cash sale after open: counts.
	saleRepo.sales[uuid.New()] = &model.Sale{
		ID: uuid.New(), CompanyID: companyID, Status: model.SaleCompleted,
		PaymentMethod: model.PaymentCash, Total: decimal.NewFromInt(50),
		OccurredAt: openedAt.Add(time.Hour),
	}
	// Card sale after open: excluded from the drawer.
	saleRepo.sales[uuid.New()] = &model.Sale{
		ID: uuid.New(), CompanyID: companyID, Status: model.SaleCompleted,
		PaymentMethod: model.PaymentCard, Total: decimal.NewFromInt(999),
		OccurredAt: openedAt.Add(time.Hour),
	}
	// Cash sale before open: belongs to the previous shift.
	saleRepo.sales[uuid.New()] = &model.Sale{
		ID: uuid.New(), CompanyID: companyID, Status: model.SaleCompleted,
		PaymentMethod: model.PaymentCash, Total: decimal.NewFromInt(777),
		OccurredAt: openedAt.Add(-time.Hour),
	}
	repo.movements = append(repo.movements, model.CashMovement{
		ID: uuid.New(), SessionID: session.ID, CompanyID: companyID,
		Kind: model.MovementIn, Amount: decimal.NewFromInt(30),
	})

	resp, err := svc.GetStatus(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionOpen, resp.Status)
	assert.Equal(t, "50", resp.SalesCash.String())
	assert.Equal(t, "30", resp.MovementsIn.String())
	assert.Equal(t, "0", resp.MovementsOut.String())
	assert.Equal(t, "180", resp.ExpectedCash.String())
}

func TestCloseSessionVarianceZero(t *testing.T) {
	repo := newFakeCashRepo()
	saleRepo := newFakeSaleRepo()
	openedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newCashServiceForTest(repo, saleRepo, openedAt)
	companyID := uuid.New()

	_, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{
		OpeningFloat: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	saleRepo.sales[uuid.New()] = &model.Sale{
		ID: uuid.New(), CompanyID: companyID, Status: model.SaleCompleted,
		PaymentMethod: model.PaymentCash, Total: decimal.NewFromInt(80),
		OccurredAt: openedAt.Add(time.Minute),
	}

	session, err := svc.CloseSession(context.Background(), companyID, dto.CloseSessionRequest{
		ClosingCount: decimal.NewFromInt(180),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SessionClosed, session.Status)
	require.NotNil(t, session.ExpectedCash)
	assert.Equal(t, "180", session.ExpectedCash.String())
	assert.Equal(t, "0", session.Variance.String())
	require.NotNil(t, session.ClosedAt)
}

func TestCloseSessionShortageVariance(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())
	companyID := uuid.New()

	_, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{
		OpeningFloat: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	session, err := svc.CloseSession(context.Background(), companyID, dto.CloseSessionRequest{
		ClosingCount: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, "-50", session.Variance.String())
}

func TestCloseSessionNoOpenDrawer(t *testing.T) {
	svc := newCashServiceForTest(newFakeCashRepo(), newFakeSaleRepo(), time.Now())

	_, err := svc.CloseSession(context.Background(), uuid.New(), dto.CloseSessionRequest{
		ClosingCount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

// A sale landing after close must not alter the frozen snapshot.
func TestCloseSessionSnapshotFrozen(t *testing.T) {
	repo := newFakeCashRepo()
	saleRepo := newFakeSaleRepo()
	openedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newCashServiceForTest(repo, saleRepo, openedAt)
	companyID := uuid.New()

	_, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{
		OpeningFloat: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	closed, err := svc.CloseSession(context.Background(), companyID, dto.CloseSessionRequest{
		ClosingCount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	saleRepo.sales[uuid.New()] = &model.Sale{
		ID: uuid.New(), CompanyID: companyID, Status: model.SaleCompleted,
		PaymentMethod: model.PaymentCash, Total: decimal.NewFromInt(500),
		OccurredAt: openedAt.Add(time.Hour),
	}

	stored := repo.sessions[closed.ID]
	assert.Equal(t, "100", stored.ExpectedCash.String())
	assert.Equal(t, "0", stored.Variance.String())
}

func TestReopenAfterClose(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())
	companyID := uuid.New()

	_, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{})
	require.NoError(t, err)
	_, err = svc.CloseSession(context.Background(), companyID, dto.CloseSessionRequest{})
	require.NoError(t, err)

	_, err = svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{})
	require.NoError(t, err)
}

func TestListHistory(t *testing.T) {
	repo := newFakeCashRepo()
	svc := newCashServiceForTest(repo, newFakeSaleRepo(), time.Now())
	companyID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{})
		require.NoError(t, err)
		_, err = svc.CloseSession(context.Background(), companyID, dto.CloseSessionRequest{})
		require.NoError(t, err)
	}
	// The open session must not appear in history.
	_, err := svc.OpenSession(context.Background(), companyID, uuid.New(), dto.OpenSessionRequest{})
	require.NoError(t, err)

	history, err := svc.ListHistory(context.Background(), companyID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	for _, s := range history {
		assert.Equal(t, model.SessionClosed, s.Status)
	}
}
