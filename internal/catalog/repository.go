package catalog

import (
	"context"
	"strings"

	"github.com/ayoubseh/boutique-backend/pkg/db/models"
	"github.com/ayoubseh/boutique-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes read access to the products table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListAll returns every product, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory returns products in the category, newest first.
func (r *Repository) ListByCategory(ctx context.Context, category enums.ProductCategory) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Search matches the query case-insensitively against name and description,
// newest first.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads one product by its opaque id.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
