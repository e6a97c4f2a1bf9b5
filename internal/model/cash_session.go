package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session status values.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// Movement kinds.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// CashSession represents one drawer shift for a tenant.
// Status: "open" | "closed". At most one open session may exist per company;
// the partial unique index idx_cash_sessions_one_open enforces this at the
// storage layer.
type CashSession struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"companyId"`
	OperatorID   uuid.UUID       `gorm:"type:uuid;not null" json:"operatorId"`
	OpeningFloat decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"openingFloat"`
	// ClosingCount, ExpectedCash and Variance are set once at close and frozen.
	ClosingCount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"closingCount"`
	ExpectedCash *decimal.Decimal `gorm:"type:decimal(12,2)" json:"expectedCash"`
	Variance     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"variance"`
	Status       string           `gorm:"type:varchar(10);not null;default:'open'" json:"status"`
	Notes        *string          `json:"notes"`
	OpenedAt     time.Time        `json:"openedAt"`
	ClosedAt     *time.Time       `json:"closedAt"`

	Movements []CashMovement `gorm:"foreignKey:SessionID" json:"movements,omitempty"`
}

// CashMovement is an immutable entry in the cash ledger. Kind: "in" | "out".
// Movements are never updated or deleted — reversals append compensating
// entries.
type CashMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"sessionId"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"companyId"`
	OperatorID  uuid.UUID       `gorm:"type:uuid;not null" json:"operatorId"`
	Kind        string          `gorm:"type:varchar(5);not null" json:"kind"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	// ReferenceID links to the originating Sale for refund compensations.
	ReferenceID *uuid.UUID `gorm:"type:uuid" json:"referenceId"`
	OccurredAt  time.Time  `json:"occurredAt"`
}
