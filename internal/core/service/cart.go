package service

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/bloomora/internal/core/domain"
)

// A CartStore is the in-memory cart of the current visitor.
//
// The cart is never persisted. Every operation runs in one critical
// section, so readers always observe the cart between operations.
type CartStore struct {
	mu    sync.RWMutex
	lines []domain.CartLine
	open  bool
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddToCart increments the line of p or appends a new line with quantity 1.
// Sold-out products are accepted. The cart becomes open.
func (s *CartStore) AddToCart(p domain.Product) {
	const op = "CartStore.AddToCart"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = true

	if i := s.indexOf(p.ID); i >= 0 {
		s.lines[i].Quantity++
		slog.Debug("quantity incremented", "op", op,
			"productID", p.ID, "quantity", s.lines[i].Quantity)
		return
	}

	s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: 1})
	slog.Debug("line added", "op", op, "productID", p.ID)
}

func (s *CartStore) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	}
}

// UpdateQuantity sets the line quantity to max(1, quantity+delta).
// Unknown ids are ignored.
func (s *CartStore) UpdateQuantity(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.lines[i].Quantity = max(1, s.lines[i].Quantity+delta)
}

func (s *CartStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

func (s *CartStore) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CartTotal(s.lines)
}

// Lines returns a copy of the lines in first-add order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

// Count is the number of items across all lines.
func (s *CartStore) Count() (n int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *CartStore) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

func (s *CartStore) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

func (s *CartStore) ToggleCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

func (s *CartStore) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// removeOrdered takes the ordered quantities out of the cart. Lines
// added while the order was in flight stay for the next checkout.
func (s *CartStore) removeOrdered(ordered []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range ordered {
		i := s.indexOf(o.Product.ID)
		if i < 0 {
			continue
		}
		s.lines[i].Quantity -= o.Quantity
		if s.lines[i].Quantity < 1 {
			s.lines = slices.Delete(s.lines, i, i+1)
		}
	}
}

func (s *CartStore) indexOf(id string) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.Product.ID == id
	})
}
