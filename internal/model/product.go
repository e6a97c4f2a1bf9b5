package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one catalog entry. Stock is a plain signed counter: sales may
// drive it negative when overselling, which surfaces the deficit instead of
// blocking the register.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"companyId"`
	Code       string          `gorm:"index" json:"code"`
	Name       string          `gorm:"not null;index" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Cost       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	Stock      int             `gorm:"not null;default:0" json:"stock"`
	ImageURL   *string         `json:"imageUrl"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"categoryId"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Category groups products for catalog filtering.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
