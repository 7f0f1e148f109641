package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/catalog"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/service"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	products   *service.ProductService
	categories *service.CategoryService
	timeout    time.Duration
}

func NewCatalogHandler(products *service.ProductService, categories *service.CategoryService, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		products:   products,
		categories: categories,
		timeout:    timeout,
	}
}

type ProductListResponse struct {
	Items []domain.Product `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := catalog.ProductFilter{
		Skip:       queryInt(r, "skip", 0),
		Limit:      queryInt(r, "limit", service.DefaultPageSize),
		CategoryID: r.URL.Query().Get("category"),
	}

	page, err := h.products.FetchProducts(ctx, filter)
	if err != nil {
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ProductListResponse{
		Items: page.Items,
		Total: page.Total,
		Page:  page.Page,
		Pages: page.Pages,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	product, err := h.products.FetchProductBySlug(ctx, slug)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.categories.FetchCategories(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	category, err := h.categories.FetchCategoryBySlug(ctx, slug)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, category)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
