package web

import (
	"encoding/json"
	"net/http"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/cart"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/notification"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	sessions *cart.Manager
	hub      *notification.Hub
}

func NewCartHandler(sessions *cart.Manager, hub *notification.Hub) *CartHandler {
	return &CartHandler{sessions: sessions, hub: hub}
}

type AddItemRequest struct {
	Product   domain.Product   `json:"product"`
	Selection domain.Selection `json:"selection"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

type CartResponse struct {
	Items    []domain.CartLine `json:"items"`
	Count    int               `json:"count"`
	Subtotal domain.Price      `json:"subtotal"`
}

type NotificationsResponse struct {
	Notifications []notification.Toast `json:"notifications"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.sessions.Cart(sessionIDFromContext(r.Context()))
	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Product.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	store := h.sessions.Cart(sessionIDFromContext(r.Context()))
	store.Add(req.Product, req.Selection)

	respondJSON(w, http.StatusCreated, cartResponse(store))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "invalid_delta", "delta must be non-zero")
		return
	}

	store := h.sessions.Cart(sessionIDFromContext(r.Context()))
	store.UpdateQuantity(productID, req.Delta)

	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	store := h.sessions.Cart(sessionIDFromContext(r.Context()))
	store.Remove(productID)

	respondJSON(w, http.StatusOK, cartResponse(store))
}

// Notifications drains the session's pending toasts; the page polls this
// after cart mutations.
func (h *CartHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	toasts := h.hub.Drain(sessionIDFromContext(r.Context()))
	if toasts == nil {
		toasts = []notification.Toast{}
	}
	respondJSON(w, http.StatusOK, NotificationsResponse{Notifications: toasts})
}

func cartResponse(store *cart.Store) CartResponse {
	return CartResponse{
		Items:    store.Lines(),
		Count:    store.Count(),
		Subtotal: store.Subtotal(),
	}
}
