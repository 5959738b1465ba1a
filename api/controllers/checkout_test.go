package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayoubseh/boutique-backend/api/middleware"
	"github.com/ayoubseh/boutique-backend/internal/cart"
	"github.com/ayoubseh/boutique-backend/internal/checkout"
	pkgerrors "github.com/ayoubseh/boutique-backend/pkg/errors"
)

type fakeCheckoutService struct {
	gotStore  *cart.Store
	gotUserID *uuid.UUID
	gotInput  checkout.Input
	result    *checkout.Result
	err       error
}

func (f *fakeCheckoutService) Execute(ctx context.Context, store *cart.Store, userID *uuid.UUID, input checkout.Input) (*checkout.Result, error) {
	f.gotStore = store
	f.gotUserID = userID
	f.gotInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

const checkoutBody = `{
	"email": "amel@example.com",
	"first_name": "Amel",
	"last_name": "Seh",
	"address": "3 rue des Lilas",
	"city": "Lyon",
	"postal_code": "69003",
	"country": "FR"
}`

func checkoutRequest(sessionID, userID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	ctx := middleware.WithCartSessionID(req.Context(), sessionID)
	if userID != "" {
		ctx = middleware.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

func TestCheckoutExecutesWithSessionCart(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	store := registry.Get("s")
	store.Add(cart.Product{ID: "1", Name: "iPhone 15 Pro", Price: decimal.RequireFromString("1199"), Stock: 15}, 1)

	svc := &fakeCheckoutService{result: &checkout.Result{PaymentRef: "stripe_sim_1"}}
	handler := Checkout(svc, registry, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("s", "", checkoutBody))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.gotStore != store {
		t.Fatal("service did not receive the session's cart")
	}
	if svc.gotUserID != nil {
		t.Fatalf("guest checkout carried user id %v", svc.gotUserID)
	}
	if svc.gotInput.Email != "amel@example.com" {
		t.Fatalf("input email = %q", svc.gotInput.Email)
	}

	var envelope struct {
		Data checkout.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.PaymentRef != "stripe_sim_1" {
		t.Fatalf("payment ref = %q", envelope.Data.PaymentRef)
	}
}

func TestCheckoutAttachesSignedInShopper(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	registry.Get("s")

	userID := uuid.New()
	svc := &fakeCheckoutService{result: &checkout.Result{}}
	handler := Checkout(svc, registry, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("s", userID.String(), checkoutBody))

	if svc.gotUserID == nil || *svc.gotUserID != userID {
		t.Fatalf("user id = %v", svc.gotUserID)
	}
}

func TestCheckoutWithoutCartSessionFails(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	svc := &fakeCheckoutService{result: &checkout.Result{}}
	handler := Checkout(svc, registry, nil)

	// Session exists in the header flow but no cart was ever created.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("never-used", "", checkoutBody))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.gotStore != nil {
		t.Fatal("service called despite missing cart")
	}
}

func TestCheckoutRejectsInvalidBody(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	registry.Get("s")

	svc := &fakeCheckoutService{result: &checkout.Result{}}
	handler := Checkout(svc, registry, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("s", "", `{"email":"not-an-email"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCheckoutPropagatesServiceErrors(t *testing.T) {
	registry := cart.NewRegistry(time.Hour)
	registry.Get("s")

	svc := &fakeCheckoutService{err: pkgerrors.New(pkgerrors.CodeDependency, "payment authorization")}
	handler := Checkout(svc, registry, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("s", "", checkoutBody))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}
