package catalog

import (
	"time"

	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/ayoubseh/boutique-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO is the catalog read model returned to API consumers.
type ProductDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	Stock        int             `json:"stock"`
	Category     string          `json:"category"`
	Rating       float64         `json:"rating"`
	PurchaseLink *string         `json:"purchase_link,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Stock:        p.Stock,
		Category:     p.Category.String(),
		Rating:       p.Rating,
		PurchaseLink: p.PurchaseLink,
		CreatedAt:    p.CreatedAt,
	}
}

func toDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toDTO(p))
	}
	return out
}

// Snapshot converts the DTO into the frozen per-line form the cart keeps.
func (p ProductDTO) Snapshot() cart.Product {
	return cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		ImageURL: p.ImageURL,
		Category: p.Category,
	}
}
