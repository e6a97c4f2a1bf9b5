package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase status values.
const (
	PurchasePaid    = "paid"
	PurchasePending = "pending"
)

// Provider is a supplier purchases are received from.
type Provider struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	Name      string    `gorm:"not null" json:"name"`
	TaxID     *string   `json:"taxId"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Purchase is a stock entry: receiving goods increments product stock and
// rolls product cost forward to the latest purchase cost.
type Purchase struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"companyId"`
	ProviderID *uuid.UUID      `gorm:"type:uuid" json:"providerId"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Status     string          `gorm:"type:varchar(10);not null;default:'paid'" json:"status"`
	OccurredAt time.Time       `json:"occurredAt"`

	Lines    []PurchaseLine `gorm:"foreignKey:PurchaseID" json:"lines,omitempty"`
	Provider *Provider      `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

// PurchaseLine records one received product at its purchase cost.
type PurchaseLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchaseId"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null" json:"productId"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitCost"`

	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
}
