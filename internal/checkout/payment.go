package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentProcessor authorizes a payment for the given amount. The real
// gateway integration is referenced only by provider name; the simulated
// processor stands in for it end to end.
type PaymentProcessor interface {
	Authorize(ctx context.Context, amount decimal.Decimal) (string, error)
}

// SimulatedProcessor approves every payment after a fixed delay, standing
// in for a real gateway. It honors context cancellation, so a shopper
// abandoning checkout stops the pending completion instead of letting it
// fire later.
type SimulatedProcessor struct {
	Provider string
	Delay    time.Duration
}

// Authorize waits out the configured processing delay and returns a fake
// payment reference.
func (p SimulatedProcessor) Authorize(ctx context.Context, amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("negative amount %s", amount)
	}

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	provider := p.Provider
	if provider == "" {
		provider = "stripe"
	}
	return fmt.Sprintf("%s_sim_%d", provider, time.Now().UnixNano()), nil
}
