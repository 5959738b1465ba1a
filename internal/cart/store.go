package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Product is the snapshot of a catalog record the cart keeps per line.
// Identity is the ID alone; the remaining fields are frozen at add time so
// later catalog edits never rewrite what the shopper already put in the cart.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Stock    int
	ImageURL string
	Category string
}

// Line is one product-quantity pair. Quantity is always >= 1; a mutation
// that would land below 1 removes the line instead.
type Line struct {
	Product  Product
	Quantity int
}

// Subtotal is the snapshot price times the line quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds the cart lines for one session, in insertion order.
// All operations accept any input without error: non-positive quantities
// collapse to removals and unknown ids are ignored. Callers that want
// explicit diagnostics wrap the store with Strict.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add merges quantity into an existing line for the same product id, or
// appends a new line holding a snapshot of the product. A non-positive
// quantity defaults to 1 for new lines; a merge that would drop the line
// below 1 removes it.
func (s *Store) Add(product Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Product.ID == product.ID {
			next := line.Quantity + quantity
			if next <= 0 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
				return
			}
			s.lines[i].Quantity = next
			return
		}
	}

	if quantity <= 0 {
		quantity = 1
	}
	s.lines = append(s.lines, Line{Product: product, Quantity: quantity})
}

// UpdateQuantity replaces the line's quantity outright. Zero or negative
// removes the line. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
		s.lines[i].Quantity = quantity
		return
	}
}

// Remove deletes the line with the matching id. Removing an absent id is
// a no-op, so removal is idempotent.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// ItemCount is the total number of units across all lines, not the number
// of distinct lines. Used for the header badge.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Total sums snapshot price times quantity over all lines. It is recomputed
// on every call; nothing is cached.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Len reports the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Get returns the line for the given product id, if present.
func (s *Store) Get(productID string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return Line{}, false
}
