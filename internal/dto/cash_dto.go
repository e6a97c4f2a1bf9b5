package dto

import (
	"andespos/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	OpeningFloat decimal.Decimal `json:"openingFloat" validate:"min=0"`
}

type MovementRequest struct {
	Kind        string          `json:"kind"        validate:"required,oneof=in out"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=1"`
}

type CloseSessionRequest struct {
	ClosingCount decimal.Decimal `json:"closingCount" validate:"min=0"`
	Notes        *string         `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CashStatusResponse is the reconciliation view of the drawer. When Status is
// "closed" all other fields are omitted. Every figure is recomputed from raw
// facts on each call — nothing here is a cached running balance.
type CashStatusResponse struct {
	Status       string             `json:"status"`
	Session      *model.CashSession `json:"session,omitempty"`
	SalesCash    *decimal.Decimal   `json:"salesCash,omitempty"`
	MovementsIn  *decimal.Decimal   `json:"movementsIn,omitempty"`
	MovementsOut *decimal.Decimal   `json:"movementsOut,omitempty"`
	ExpectedCash *decimal.Decimal   `json:"expectedCash,omitempty"`
}
