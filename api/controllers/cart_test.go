package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ayoubseh/boutique-backend/api/middleware"
	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/ayoubseh/boutique-backend/internal/catalog"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
	"github.com/ayoubseh/boutique-backend/pkg/types"
)

type fakeCatalog struct {
	products map[string]catalog.ProductDTO
}

func (f *fakeCatalog) ListAll(ctx context.Context) ([]catalog.ProductDTO, error) {
	out := make([]catalog.ProductDTO, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) ListByCategory(ctx context.Context, category string) ([]catalog.ProductDTO, error) {
	var out []catalog.ProductDTO
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]catalog.ProductDTO, error) {
	var out []catalog.ProductDTO
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*catalog.ProductDTO, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]catalog.ProductDTO{
		"1": {ID: "1", Name: "iPhone 15 Pro", Price: decimal.RequireFromString("1199"), Stock: 15, Category: "electronics"},
		"3": {ID: "3", Name: "T-shirt Premium Cotton", Price: decimal.RequireFromString("29.99"), Stock: 50, Category: "clothing"},
		"6": {ID: "6", Name: `Livre: "Le Petit Prince"`, Price: decimal.RequireFromString("15.99"), Stock: 100, Category: "books"},
	}}
}

func newCartRouter(registry *cart.Registry, catalogSvc catalog.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/cart", CartFetch(registry, nil))
	r.Post("/cart/items", CartAddItem(registry, catalogSvc, nil))
	r.Patch("/cart/items/{productId}", CartUpdateItem(registry, nil))
	r.Delete("/cart/items/{productId}", CartRemoveItem(registry, nil))
	r.Delete("/cart", CartClear(registry, nil))
	return r
}

func doCartRequest(t *testing.T, handler http.Handler, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(middleware.WithCartSessionID(req.Context(), sessionID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeCartResponse(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	return envelope.Data
}

func TestCartFetchStartsEmpty(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	rec := doCartRequest(t, handler, http.MethodGet, "/cart", "session-a", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeCartResponse(t, rec)
	if resp.SessionID != "session-a" {
		t.Fatalf("session id = %q", resp.SessionID)
	}
	if len(resp.Items) != 0 || resp.ItemCount != 0 {
		t.Fatalf("new cart not empty: %+v", resp)
	}
	if !resp.Total.IsZero() {
		t.Fatalf("total = %s", resp.Total)
	}
}

func TestCartAddItemMergesQuantities(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	rec := doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"3","quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"3","quantity":1}`)
	resp := decodeCartResponse(t, rec)

	if len(resp.Items) != 1 {
		t.Fatalf("lines = %d", len(resp.Items))
	}
	if resp.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d", resp.Items[0].Quantity)
	}
	if !resp.Total.Equal(decimal.RequireFromString("89.97")) {
		t.Fatalf("total = %s", resp.Total)
	}
}

func TestCartAddItemDefaultsQuantityToOne(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	rec := doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"1"}`)
	resp := decodeCartResponse(t, rec)

	if resp.ItemCount != 1 {
		t.Fatalf("item count = %d", resp.ItemCount)
	}
}

func TestCartAddItemUnknownProductReturns404(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	rec := doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"999"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCartAddItemRejectsOverStock(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	rec := doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"1","quantity":16}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("code = %s", envelope.Error.Code)
	}
}

func TestCartUpdateItemReplacesQuantity(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"3","quantity":5}`)
	rec := doCartRequest(t, handler, http.MethodPatch, "/cart/items/3", "s", `{"quantity":2}`)

	resp := decodeCartResponse(t, rec)
	if resp.Items[0].Quantity != 2 {
		t.Fatalf("quantity = %d", resp.Items[0].Quantity)
	}
}

func TestCartUpdateItemZeroRemovesLine(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"3","quantity":5}`)
	rec := doCartRequest(t, handler, http.MethodPatch, "/cart/items/3", "s", `{"quantity":0}`)

	resp := decodeCartResponse(t, rec)
	if len(resp.Items) != 0 {
		t.Fatalf("line survived zero quantity: %+v", resp.Items)
	}
}

func TestCartRemoveItemIsIdempotent(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"6","quantity":1}`)

	rec := doCartRequest(t, handler, http.MethodDelete, "/cart/items/6", "s", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first delete status = %d", rec.Code)
	}

	rec = doCartRequest(t, handler, http.MethodDelete, "/cart/items/6", "s", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat delete status = %d", rec.Code)
	}
}

func TestCartClearEmptiesCart(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"1","quantity":2}`)
	doCartRequest(t, handler, http.MethodPost, "/cart/items", "s", `{"product_id":"3","quantity":1}`)

	rec := doCartRequest(t, handler, http.MethodDelete, "/cart", "s", "")
	resp := decodeCartResponse(t, rec)

	if len(resp.Items) != 0 || resp.ItemCount != 0 || !resp.Total.IsZero() {
		t.Fatalf("cart not cleared: %+v", resp)
	}
}

func TestCartSessionsAreIsolated(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	handler := newCartRouter(registry, testCatalog())

	doCartRequest(t, handler, http.MethodPost, "/cart/items", "alice", `{"product_id":"1","quantity":1}`)

	rec := doCartRequest(t, handler, http.MethodGet, "/cart", "bob", "")
	resp := decodeCartResponse(t, rec)
	if len(resp.Items) != 0 {
		t.Fatalf("bob sees alice's cart: %+v", resp.Items)
	}
}
