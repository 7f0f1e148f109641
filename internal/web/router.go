package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig wires the handlers into the storefront's HTTP surface.
type RouterConfig struct {
	Catalog      *CatalogHandler
	Reviews      *ReviewHandler
	Cart         *CartHandler
	NewSessionID func() string
	Timeout      time.Duration
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.Timeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(cfg.NewSessionID))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", cfg.Catalog.ListProducts)
		r.Get("/products/{slug}", cfg.Catalog.GetProduct)
		r.Get("/categories", cfg.Catalog.ListCategories)
		r.Get("/categories/{slug}", cfg.Catalog.GetCategory)

		r.Get("/reviews/{id}", cfg.Reviews.ListReviews)
		r.Post("/reviews", cfg.Reviews.AddReview)
		r.Post("/reviews/{id}/vote", cfg.Reviews.VoteHelpful)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Patch("/items/{product_id}", cfg.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
		})

		r.Get("/notifications", cfg.Cart.Notifications)
	})

	return r
}
