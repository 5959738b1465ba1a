package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ayoubseh/boutique-backend/pkg/db/models"
	"github.com/ayoubseh/boutique-backend/pkg/enums"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRepo struct {
	products []models.Product
	err      error
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeRepo) ListByCategory(ctx context.Context, category enums.ProductCategory) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) Search(ctx context.Context, query string) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
}

func testProduct(id string) models.Product {
	return models.Product{
		ID:       id,
		Name:     "product-" + id,
		Price:    decimal.RequireFromString("10.00"),
		Stock:    5,
		Category: enums.ProductCategoryElectronics,
	}
}

func newTestService(t *testing.T, repo *fakeRepo) Service {
	t.Helper()
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListAllReturnsRepoRows(t *testing.T) {
	svc := newTestService(t, &fakeRepo{products: []models.Product{testProduct("1"), testProduct("2")}})

	got, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].ID != "1" || got[0].Name != "product-1" {
		t.Fatalf("unexpected first product %+v", got[0])
	}
}

func TestListAllFallsBackToSamples(t *testing.T) {
	svc := newTestService(t, &fakeRepo{err: errors.New("db down")})

	got, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected the 6 sample products, got %d", len(got))
	}
	// Newest sample first.
	if got[0].ID != "6" {
		t.Fatalf("expected sample ordering newest-first, got id %s", got[0].ID)
	}
}

func TestListByCategoryRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	_, err := svc.ListByCategory(context.Background(), "gadgets")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListByCategoryFallsBackToSamples(t *testing.T) {
	svc := newTestService(t, &fakeRepo{err: errors.New("db down")})

	got, err := svc.ListByCategory(context.Background(), "books")
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "6" {
		t.Fatalf("expected the sample book, got %+v", got)
	}
}

func TestSearchBlankQueryListsAll(t *testing.T) {
	svc := newTestService(t, &fakeRepo{products: []models.Product{testProduct("1")}})

	got, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected full listing for blank query, got %d", len(got))
	}
}

func TestSearchFallbackMatchesNameAndDescription(t *testing.T) {
	svc := newTestService(t, &fakeRepo{err: errors.New("db down")})

	got, err := svc.Search(context.Background(), "macbook")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected sample MacBook hit, got %+v", got)
	}

	got, err = svc.Search(context.Background(), "coton bio")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected description match, got %+v", got)
	}
}

func TestGetByID(t *testing.T) {
	svc := newTestService(t, &fakeRepo{products: []models.Product{testProduct("1")}})

	got, err := svc.GetByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "1" {
		t.Fatalf("unexpected product %+v", got)
	}

	_, err = svc.GetByID(context.Background(), "does-not-exist")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := svc.GetByID(context.Background(), "  "); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}
}

func TestGetByIDSampleFallbackForSeededIDs(t *testing.T) {
	// Seeded ids resolve from the sample catalog when the row is missing.
	svc := newTestService(t, &fakeRepo{})

	got, err := svc.GetByID(context.Background(), "4")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Casque Audio Sans Fil" {
		t.Fatalf("unexpected sample product %+v", got)
	}
}

func TestSnapshotFreezesCatalogFields(t *testing.T) {
	dto := ProductDTO{
		ID:    "9",
		Name:  "thing",
		Price: decimal.RequireFromString("42.50"),
		Stock: 7,
	}
	snap := dto.Snapshot()
	if snap.ID != "9" || snap.Stock != 7 || !snap.Price.Equal(dto.Price) {
		t.Fatalf("snapshot mismatch: %+v", snap)
	}
}
