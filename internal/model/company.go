package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is one tenant. Every transactional row carries a CompanyID and
// every query filters by it — tenant scoping is never optional.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	TaxID     *string   `json:"taxId"`
	Address   *string   `json:"address"`
	Plan      string    `gorm:"type:varchar(20);not null;default:'free'" json:"plan"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User is an operator (cashier or admin) belonging to one tenant.
// Role: "admin" | "seller".
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	Name         string    `gorm:"not null" json:"name"`
	// Username is globally unique: login does not know the tenant yet.
	Username     string    `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(10);not null;default:'seller'" json:"role"`
	PhotoURL     *string   `json:"photoUrl"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Client is a registered customer; sales may reference one or be walk-in.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	DocType   string    `gorm:"type:varchar(10);default:'DNI'" json:"docType"`
	DocNumber *string   `json:"docNumber"`
	Name      string    `gorm:"not null" json:"name"`
	Address   *string   `json:"address"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
