// Package cart holds the in-memory shopping carts for active storefront
// sessions. A cart keeps at most one line per product; adding an existing
// product merges into that line instead of duplicating it.
package cart

import (
	"sync"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
)

// EventKind distinguishes a brand-new line from another unit of one.
type EventKind string

const (
	ItemAdded  EventKind = "added"
	ItemMerged EventKind = "merged"
)

// Event is emitted after an add has become visible to readers. It feeds the
// notification hub and the activity publisher; state mutation never waits
// on either.
type Event struct {
	Kind        EventKind `json:"kind"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}

// Store is one session's cart. All operations are total: unknown product
// ids are silently ignored and quantities never drop below one.
type Store struct {
	mu     sync.RWMutex
	lines  []domain.CartLine
	closed bool

	events    chan Event
	listeners []func(Event)
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewStore creates a cart. Listeners are invoked in order, on a dedicated
// goroutine, strictly after the originating mutation is readable.
func NewStore(listeners ...func(Event)) *Store {
	s := &Store{
		events:    make(chan Event, 64),
		listeners: listeners,
	}
	s.wg.Add(1)
	go s.dispatch()
	return s
}

// Add puts one unit of the product in the cart, merging into an existing
// line when the product is already there. Product fields and the shopper's
// selection are copied at add time. A product without an identity is
// rejected outright: an unkeyed line could never be merged or removed.
func (s *Store) Add(product domain.Product, selection domain.Selection) {
	if product.ID == "" {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	event := Event{Kind: ItemAdded, ProductID: product.ID, ProductName: product.Name, Quantity: 1}
	merged := false
	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity++
			event.Kind = ItemMerged
			event.Quantity = s.lines[i].Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, domain.CartLine{
			ProductID:     product.ID,
			Slug:          product.Slug,
			Name:          product.Name,
			UnitPrice:     product.Price,
			Quantity:      1,
			SelectedColor: selection.Color,
			SelectedImage: selection.Image,
		})
	}
	s.mu.Unlock()

	// Non-blocking: a full buffer drops the notification, never the add.
	// The read lock keeps Close from closing the channel mid-send; an add
	// racing session eviction drops its event instead of panicking.
	s.mu.RLock()
	if !s.closed {
		select {
		case s.events <- event:
		default:
		}
	}
	s.mu.RUnlock()
}

// UpdateQuantity applies a signed delta to a line, clamped at one. Removal
// is an explicit separate operation, never a side effect of decrementing.
func (s *Store) UpdateQuantity(productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = max(1, s.lines[i].Quantity+delta)
			return
		}
	}
}

func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, line := range s.lines {
		if line.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Count is the sum of line quantities, recomputed on every read.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy; callers never hold references into the cart.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CartLine(nil), s.lines...)
}

// Subtotal sums the lines. The currency comes from the first line, since a
// single catalog only ever prices in one currency.
func (s *Store) Subtotal() domain.Price {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subtotal := domain.Price{Currency: "PKR"}
	for i, line := range s.lines {
		if i == 0 && line.UnitPrice.Currency != "" {
			subtotal.Currency = line.UnitPrice.Currency
		}
		subtotal.Amount += line.UnitPrice.Amount * float64(line.Quantity)
	}
	return subtotal
}

// Close stops event dispatch after draining pending events. Adds arriving
// after Close are no-ops; the session is gone either way.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.events)
	})
	s.wg.Wait()
}

func (s *Store) dispatch() {
	defer s.wg.Done()
	for event := range s.events {
		for _, listener := range s.listeners {
			listener(event)
		}
	}
}
