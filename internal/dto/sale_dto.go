package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
	// UnitPrice is trusted as the point-of-sale price: the register may
	// legitimately override the catalog price.
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"min=0"`
}

type CreateSaleRequest struct {
	ClientID      *string           `json:"clientId"      validate:"omitempty,uuid"`
	PaymentMethod string            `json:"paymentMethod" validate:"required,oneof=Cash Card Wallet"`
	Lines         []SaleLineRequest `json:"lines"         validate:"required,min=1,dive"`
	// ReceiptEmail, when present, makes the email worker send a PDF ticket
	// after the sale commits.
	ReceiptEmail *string `json:"receiptEmail" validate:"omitempty,email"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Range     string `form:"range"     validate:"omitempty,oneof=today week month custom"`
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   validate:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status"    validate:"omitempty,oneof=completed refunded all"`
}
