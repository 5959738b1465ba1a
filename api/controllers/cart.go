package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ayoubseh/boutique-backend/api/middleware"
	"github.com/ayoubseh/boutique-backend/api/responses"
	"github.com/ayoubseh/boutique-backend/api/validators"
	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/ayoubseh/boutique-backend/internal/catalog"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
)

type cartAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

type cartItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Category  string          `json:"category,omitempty"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []cartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

func buildCartResponse(sessionID string, store *cart.Store) cartResponse {
	lines := store.Lines()
	items := make([]cartItemResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, cartItemResponse{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			ImageURL:  line.Product.ImageURL,
			Category:  line.Product.Category,
			Quantity:  line.Quantity,
			LineTotal: line.Subtotal(),
		})
	}
	return cartResponse{
		SessionID: sessionID,
		Items:     items,
		ItemCount: store.ItemCount(),
		Total:     store.Total(),
	}
}

func mapCartError(err error) error {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quantity")
	case errors.Is(err, cart.ErrStockExceeded):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "quantity exceeds available stock")
	case errors.Is(err, cart.ErrUnknownProduct):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not in cart")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart operation")
	}
}

func cartFromRequest(registry *cart.Registry, r *http.Request) (string, *cart.Store, error) {
	sessionID := middleware.CartSessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return sessionID, registry.Get(sessionID), nil
}

// CartFetch returns the session's cart, creating an empty one on first use.
func CartFetch(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, store, err := cartFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buildCartResponse(sessionID, store))
	}
}

// CartAddItem snapshots the catalog product and merges it into the cart.
func CartAddItem(registry *cart.Registry, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sessionID, store, err := cartFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}

		product, err := catalogSvc.GetByID(r.Context(), body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		strict := cart.NewStrict(store)
		if err := strict.Add(product.Snapshot(), body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, mapCartError(err))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, buildCartResponse(sessionID, store))
	}
}

// CartUpdateItem replaces a line's quantity. Zero removes the line.
func CartUpdateItem(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, store, err := cartFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		var body cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		strict := cart.NewStrict(store)
		if err := strict.UpdateQuantity(productID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, mapCartError(err))
			return
		}

		responses.WriteSuccess(w, buildCartResponse(sessionID, store))
	}
}

// CartRemoveItem deletes a line. Removing an absent line still succeeds, so
// a repeated DELETE stays safe.
func CartRemoveItem(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, store, err := cartFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		store.Remove(productID)
		responses.WriteSuccess(w, buildCartResponse(sessionID, store))
	}
}

// CartClear empties the cart in one call.
func CartClear(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, store, err := cartFromRequest(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear()
		responses.WriteSuccess(w, buildCartResponse(sessionID, store))
	}
}
