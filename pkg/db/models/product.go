package models

import (
	"time"

	"github.com/ayoubseh/boutique-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. IDs are caller-assigned opaque strings so
// seeded inventory can keep stable identifiers across environments.
type Product struct {
	ID           string                `gorm:"type:text;primaryKey" json:"id"`
	Name         string                `gorm:"type:text;not null" json:"name"`
	Description  string                `gorm:"type:text;not null;default:''" json:"description"`
	Price        decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL     string                `gorm:"type:text;not null;default:''" json:"image_url"`
	Stock        int                   `gorm:"not null;default:0" json:"stock"`
	Category     enums.ProductCategory `gorm:"type:text;not null;index" json:"category"`
	Rating       float64               `gorm:"not null;default:0" json:"rating"`
	PurchaseLink *string               `gorm:"type:text" json:"purchase_link,omitempty"`
	CreatedAt    time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
