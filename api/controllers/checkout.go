package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ayoubseh/boutique-backend/api/middleware"
	"github.com/ayoubseh/boutique-backend/api/responses"
	"github.com/ayoubseh/boutique-backend/api/validators"
	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/ayoubseh/boutique-backend/internal/checkout"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
)

// Checkout turns the session's cart into an order. Guests check out with
// just the shipping form; signed-in shoppers get the order attached to
// their account.
func Checkout(svc checkout.Service, registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.CartSessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}

		store, ok := registry.Peek(sessionID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		var body checkout.Input
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = &parsed
			}
		}

		result, err := svc.Execute(r.Context(), store, userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
