package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayoubseh/boutique-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

type cartSessionToucher interface {
	TouchCartSession(ctx context.Context, sessionID string, ttl time.Duration) error
}

// CartSession resolves the shopper's cart session from the X-Cart-Session
// header, minting a fresh identifier when the header is absent or malformed.
// The identifier is echoed back on every response so the storefront can
// persist it, and the Redis mirror's TTL is refreshed on each request.
func CartSession(toucher cartSessionToucher, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)

			ctx := WithCartSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSessionID(ctx, sessionID)
			}

			if toucher != nil && ttl > 0 {
				if err := toucher.TouchCartSession(ctx, sessionID, ttl); err != nil && logg != nil {
					// The in-memory registry still tracks the session; the
					// Redis mirror catches up on the next request.
					logg.Warn(ctx, "cart session touch failed")
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
