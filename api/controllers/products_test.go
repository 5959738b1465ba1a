package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ayoubseh/boutique-backend/internal/catalog"
)

func newProductRouter(svc catalog.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/products", ProductList(svc, nil))
	r.Get("/products/{productId}", ProductDetail(svc, nil))
	return r
}

func decodeProductList(t *testing.T, rec *httptest.ResponseRecorder) []catalog.ProductDTO {
	t.Helper()
	var envelope struct {
		Data struct {
			Products []catalog.ProductDTO `json:"products"`
			Count    int                  `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Count != len(envelope.Data.Products) {
		t.Fatalf("count %d does not match %d products", envelope.Data.Count, len(envelope.Data.Products))
	}
	return envelope.Data.Products
}

func TestProductListReturnsAll(t *testing.T) {
	handler := newProductRouter(testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if products := decodeProductList(t, rec); len(products) != 3 {
		t.Fatalf("products = %d", len(products))
	}
}

func TestProductListFiltersByCategory(t *testing.T) {
	handler := newProductRouter(testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/products?category=books", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	products := decodeProductList(t, rec)
	if len(products) != 1 || products[0].ID != "6" {
		t.Fatalf("unexpected category result: %+v", products)
	}
}

func TestProductListSearchWinsOverCategory(t *testing.T) {
	handler := newProductRouter(testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/products?category=books&search=iphone", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	products := decodeProductList(t, rec)
	if len(products) != 1 || products[0].ID != "1" {
		t.Fatalf("unexpected search result: %+v", products)
	}
}

func TestProductDetailReturnsProduct(t *testing.T) {
	handler := newProductRouter(testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/products/3", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var envelope struct {
		Data catalog.ProductDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Name != "T-shirt Premium Cotton" {
		t.Fatalf("name = %q", envelope.Data.Name)
	}
}

func TestProductDetailUnknownIDReturns404(t *testing.T) {
	handler := newProductRouter(testCatalog())

	req := httptest.NewRequest(http.MethodGet, "/products/999", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
