package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeToucher struct {
	touched []string
	ttl     time.Duration
	err     error
}

func (f *fakeToucher) TouchCartSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	f.touched = append(f.touched, sessionID)
	f.ttl = ttl
	return f.err
}

func TestCartSessionMintsIdentifierWhenMissing(t *testing.T) {
	toucher := &fakeToucher{}

	var got string
	handler := CartSession(toucher, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CartSessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got == "" {
		t.Fatal("no session id in context")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("minted id is not a uuid: %q", got)
	}
	if header := rec.Header().Get("X-Cart-Session"); header != got {
		t.Fatalf("header %q does not match context %q", header, got)
	}
	if len(toucher.touched) != 1 || toucher.touched[0] != got {
		t.Fatalf("touched = %v", toucher.touched)
	}
	if toucher.ttl != time.Hour {
		t.Fatalf("ttl = %s", toucher.ttl)
	}
}

func TestCartSessionReusesProvidedIdentifier(t *testing.T) {
	sessionID := uuid.NewString()

	var got string
	handler := CartSession(nil, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CartSessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", sessionID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got != sessionID {
		t.Fatalf("session id = %q, want %q", got, sessionID)
	}
}

func TestCartSessionReplacesMalformedIdentifier(t *testing.T) {
	var got string
	handler := CartSession(nil, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CartSessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", "../../etc/passwd")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got == "../../etc/passwd" {
		t.Fatal("malformed id accepted")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("replacement id is not a uuid: %q", got)
	}
}
