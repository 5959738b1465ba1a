package models

import (
	"time"

	"github.com/ayoubseh/boutique-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order captures a completed checkout. UserID is nil for guest orders.
type Order struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	Email      string                `gorm:"type:text;not null" json:"email"`
	FirstName  string                `gorm:"type:text;not null" json:"first_name"`
	LastName   string                `gorm:"type:text;not null" json:"last_name"`
	Address    string                `gorm:"type:text;not null" json:"address"`
	City       string                `gorm:"type:text;not null" json:"city"`
	PostalCode string                `gorm:"type:text;not null" json:"postal_code"`
	Country    enums.ShippingCountry `gorm:"type:text;not null" json:"country"`

	SubtotalAmount decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"subtotal_amount"`
	VATAmount      decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"vat_amount"`
	TotalAmount    decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status         enums.OrderStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
