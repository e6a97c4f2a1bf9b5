package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale status values. COMPLETED → REFUNDED is the only transition.
const (
	SaleCompleted = "completed"
	SaleRefunded  = "refunded"
)

// Payment methods accepted at the register. Only cash sales feed the drawer
// reconciliation.
const (
	PaymentCash   = "Cash"
	PaymentCard   = "Card"
	PaymentWallet = "Wallet"
)

// Sale is a completed (or later refunded) register transaction.
type Sale struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	// ClientID is nullable — walk-in sales carry no client.
	ClientID      *uuid.UUID      `gorm:"type:uuid" json:"clientId"`
	OperatorID    uuid.UUID       `gorm:"type:uuid;not null" json:"operatorId"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod string          `gorm:"type:varchar(20);not null;default:'Cash'" json:"paymentMethod"`
	Status        string          `gorm:"type:varchar(10);not null;default:'completed'" json:"status"`
	OccurredAt    time.Time       `gorm:"index" json:"occurredAt"`

	Lines    []SaleLine `gorm:"foreignKey:SaleID" json:"lines,omitempty"`
	Client   *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Operator *User      `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}

// SaleLine is one product/quantity/price entry, immutable once created.
// ProductID is a weak reference: the product row may later change or be
// deleted without touching historical lines, so there is no FK constraint.
type SaleLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"saleId"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	// UnitPrice is the price charged at the register (may be overridden from
	// the catalog); UnitCost is snapshotted from the product at sale time for
	// margin reporting.
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unitCost"`

	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
}
