package cart

import (
	"errors"
	"fmt"
)

// Typed conditions reported by the strict wrapper. The plain Store never
// returns these; it normalizes bad input silently.
var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrStockExceeded   = errors.New("stock exceeded")
)

// Strict wraps a Store and reports the conditions the store itself
// tolerates: non-positive quantities, mutations against absent ids, and
// quantities beyond the stock recorded in the product snapshot. Both views
// share the same underlying lines, so callers can mix strict and tolerant
// access to a single cart.
type Strict struct {
	store *Store
}

// NewStrict wraps the given store. A nil store gets a fresh one.
func NewStrict(store *Store) *Strict {
	if store == nil {
		store = NewStore()
	}
	return &Strict{store: store}
}

// Store exposes the underlying tolerant store.
func (s *Strict) Store() *Store {
	return s.store
}

// Add validates quantity and stock before merging into the cart.
func (s *Strict) Add(product Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("add %q: quantity %d: %w", product.ID, quantity, ErrInvalidQuantity)
	}

	next := quantity
	if line, ok := s.store.Get(product.ID); ok {
		next += line.Quantity
	}
	if next > product.Stock {
		return fmt.Errorf("add %q: want %d of %d in stock: %w", product.ID, next, product.Stock, ErrStockExceeded)
	}

	s.store.Add(product, quantity)
	return nil
}

// UpdateQuantity validates the target quantity and the product's presence.
// Zero still removes the line, matching the tolerant behavior, but negative
// values are rejected rather than folded into a removal.
func (s *Strict) UpdateQuantity(productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("update %q: quantity %d: %w", productID, quantity, ErrInvalidQuantity)
	}

	line, ok := s.store.Get(productID)
	if !ok {
		return fmt.Errorf("update %q: %w", productID, ErrUnknownProduct)
	}
	if quantity > line.Product.Stock {
		return fmt.Errorf("update %q: want %d of %d in stock: %w", productID, quantity, line.Product.Stock, ErrStockExceeded)
	}

	s.store.UpdateQuantity(productID, quantity)
	return nil
}

// Remove deletes the line, reporting absence instead of ignoring it.
func (s *Strict) Remove(productID string) error {
	if _, ok := s.store.Get(productID); !ok {
		return fmt.Errorf("remove %q: %w", productID, ErrUnknownProduct)
	}
	s.store.Remove(productID)
	return nil
}
