package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/catalog"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/service"
	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	reviews *service.ReviewService
	timeout time.Duration
}

func NewReviewHandler(reviews *service.ReviewService, timeout time.Duration) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, timeout: timeout}
}

type ReviewListResponse struct {
	Reviews []domain.Review `json:"reviews"`
}

func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "id")
	reviews, err := h.reviews.FetchReviews(ctx, productID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ReviewListResponse{Reviews: reviews})
}

func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req catalog.NewReview
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
		return
	}

	created, err := h.reviews.AddReview(ctx, req)
	if err != nil {
		// Surfaced to the caller so the review form can show it inline.
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// VoteHelpful always acknowledges: a failed vote is logged upstream of here
// and deliberately not surfaced to the shopper.
func (h *ReviewHandler) VoteHelpful(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	reviewID := chi.URLParam(r, "id")
	h.reviews.VoteHelpful(ctx, reviewID)
	w.WriteHeader(http.StatusNoContent)
}
