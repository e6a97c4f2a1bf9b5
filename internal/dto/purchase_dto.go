package dto

import "github.com/shopspring/decimal"

type PurchaseLineRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Quantity  int             `json:"quantity"  validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unitCost"  validate:"min=0"`
}

type CreatePurchaseRequest struct {
	ProviderID *string               `json:"providerId" validate:"omitempty,uuid"`
	Status     string                `json:"status"     validate:"omitempty,oneof=paid pending"`
	Lines      []PurchaseLineRequest `json:"lines"      validate:"required,min=1,dive"`
}
