// Package notification turns cart events into shopper-facing toasts and,
// optionally, into activity records on a Kafka topic. It consumes events
// only after the cart mutation is visible, so a toast never precedes the
// state it announces.
package notification

import (
	"fmt"
	"sync"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/cart"
)

// maxPendingToasts bounds the per-session queue; a shopper who never polls
// should not grow memory without limit. Oldest toasts are dropped first.
const maxPendingToasts = 32

type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Hub queues pending toasts per session until the page polls them off.
type Hub struct {
	mu      sync.Mutex
	pending map[string][]Toast
}

func NewHub() *Hub {
	return &Hub{pending: make(map[string][]Toast)}
}

// CartEvent renders and queues the toast for one cart event.
func (h *Hub) CartEvent(sessionID string, event cart.Event) {
	var message string
	switch event.Kind {
	case cart.ItemMerged:
		message = fmt.Sprintf("Another %s added to selection", event.ProductName)
	default:
		message = fmt.Sprintf("%s added to selection", event.ProductName)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	queue := append(h.pending[sessionID], Toast{Kind: string(event.Kind), Message: message})
	if len(queue) > maxPendingToasts {
		queue = queue[len(queue)-maxPendingToasts:]
	}
	h.pending[sessionID] = queue
}

// Drain returns the session's pending toasts and clears the queue.
func (h *Hub) Drain(sessionID string) []Toast {
	h.mu.Lock()
	defer h.mu.Unlock()

	toasts := h.pending[sessionID]
	delete(h.pending, sessionID)
	return toasts
}

// Drop discards a session's queue; wired to cart session eviction.
func (h *Hub) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pending, sessionID)
}
