package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ayoubseh/boutique-backend/api/responses"
	"github.com/ayoubseh/boutique-backend/api/validators"
	"github.com/ayoubseh/boutique-backend/internal/catalog"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
)

const maxSearchQueryLen = 200

// ProductList serves the storefront catalog. A search query wins over a
// category filter when both are present, matching how the storefront's
// product grid composes its requests.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		search := validators.SanitizeString(r.URL.Query().Get("search"), maxSearchQueryLen)
		category := strings.TrimSpace(r.URL.Query().Get("category"))

		var (
			products []catalog.ProductDTO
			err      error
		)
		switch {
		case search != "":
			products, err = svc.Search(r.Context(), search)
		case category != "":
			products, err = svc.ListByCategory(r.Context(), category)
		default:
			products, err = svc.ListAll(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

// ProductDetail returns one product by its identifier.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, err := svc.GetByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
