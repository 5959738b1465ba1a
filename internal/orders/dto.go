package orders

import (
	"time"

	"github.com/ayoubseh/boutique-backend/pkg/db/models"
	"github.com/ayoubseh/boutique-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderList is the page of orders returned by the repository.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

// OrderItemDTO is one purchased line as returned to API consumers.
type OrderItemDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderDTO is the order read model.
type OrderDTO struct {
	ID         uuid.UUID             `json:"id"`
	Email      string                `json:"email"`
	FirstName  string                `json:"first_name"`
	LastName   string                `json:"last_name"`
	Address    string                `json:"address"`
	City       string                `json:"city"`
	PostalCode string                `json:"postal_code"`
	Country    enums.ShippingCountry `json:"country"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	VAT        decimal.Decimal       `json:"vat"`
	Total      decimal.Decimal       `json:"total"`
	Status     enums.OrderStatus     `json:"status"`
	Items      []OrderItemDTO        `json:"items"`
	CreatedAt  time.Time             `json:"created_at"`
}

// FromModel converts the persisted order into its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return &OrderDTO{
		ID:         o.ID,
		Email:      o.Email,
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		Address:    o.Address,
		City:       o.City,
		PostalCode: o.PostalCode,
		Country:    o.Country,
		Subtotal:   o.SubtotalAmount,
		VAT:        o.VATAmount,
		Total:      o.TotalAmount,
		Status:     o.Status,
		Items:      items,
		CreatedAt:  o.CreatedAt,
	}
}

// FromModels maps a slice of orders into DTOs.
func FromModels(rows []models.Order) []*OrderDTO {
	out := make([]*OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
