// Package service holds the storefront's observable state containers: one
// per catalog resource kind, each fronting the upstream API with a TTL cache.
// Loading state transitions strictly false -> true -> false around every
// network call; a cache hit serves synchronously and never sets loading.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/cache"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/catalog"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultPageSize matches the storefront's product grid.
const DefaultPageSize = 12

// ProductAPI is the slice of the catalog client the product service needs.
// Consumers define this interface, not the client implementation.
type ProductAPI interface {
	ListProducts(ctx context.Context, filter catalog.ProductFilter) (*catalog.ProductPage, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// ProductState is a consistent snapshot of the product service.
type ProductState struct {
	Products []domain.Product
	Current  *domain.Product
	Total    int
	Page     int
	Pages    int
	Loading  bool
	Err      string
}

// ProductService caches product listings and single-product lookups.
// Concurrent fetches for the same key share one upstream call.
type ProductService struct {
	api   ProductAPI
	cache cache.Store
	sfg   singleflight.Group

	mu       sync.RWMutex
	products []domain.Product
	current  *domain.Product
	total    int
	page     int
	pages    int
	loading  bool
	err      string
}

func NewProductService(api ProductAPI, store cache.Store) *ProductService {
	return &ProductService{api: api, cache: store, page: 1, pages: 1}
}

// FetchProducts loads one page of the listing, serving from cache when the
// entry is still fresh. On failure the previously shown page stays in place.
// The fetched page is returned so a caller answering a single request reads
// its own result, not whatever a concurrent fetch left in the shared state.
func (s *ProductService) FetchProducts(ctx context.Context, filter catalog.ProductFilter) (*catalog.ProductPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	key := productsKey(filter)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var page catalog.ProductPage
		if err := json.Unmarshal(raw, &page); err == nil {
			s.setPage(&page)
			return &page, nil
		}
		// Corrupt entry: treat as a miss and refetch.
	}

	s.beginLoad()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		return s.api.ListProducts(ctx, filter)
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}

	page := v.(*catalog.ProductPage)
	storeEntry(ctx, s.cache, key, page)
	s.setPage(page)
	return page, nil
}

// FetchProductBySlug loads and returns a single product. A 404 is successful
// absence: the current product is cleared and ErrNotFound returned, with no
// error recorded on the observable state.
func (s *ProductService) FetchProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	key := "product:slug:" + slug

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var product domain.Product
		if err := json.Unmarshal(raw, &product); err == nil {
			s.setCurrent(&product)
			return &product, nil
		}
	}

	s.beginLoad()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		return s.api.GetProductBySlug(ctx, slug)
	})
	if errors.Is(err, catalog.ErrNotFound) {
		s.setCurrent(nil)
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		s.fail(err)
		return nil, err
	}

	product := v.(*domain.Product)
	storeEntry(ctx, s.cache, key, product)
	s.setCurrent(product)
	return product, nil
}

// SetCurrentProduct lets a listing page seed the detail view without a fetch.
func (s *ProductService) SetCurrentProduct(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = product
}

func (s *ProductService) State() ProductState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ProductState{
		Products: append([]domain.Product(nil), s.products...),
		Total:    s.total,
		Page:     s.page,
		Pages:    s.pages,
		Loading:  s.loading,
		Err:      s.err,
	}
	if s.current != nil {
		current := *s.current
		state.Current = &current
	}
	return state
}

func (s *ProductService) beginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *ProductService) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err.Error()
}

func (s *ProductService) setPage(page *catalog.ProductPage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = page.Items
	s.total = page.Total
	s.page = page.Page
	s.pages = page.Pages
	s.loading = false
}

func (s *ProductService) setCurrent(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = product
	s.loading = false
}

// storeEntry writes a fetched value to the cache, logging failures; a cache
// write that fails only costs the next fetch a network round trip.
func storeEntry(ctx context.Context, store cache.Store, key string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal cache entry %q: %v", key, err)
		return
	}
	if err := store.Set(ctx, key, raw); err != nil {
		log.Printf("cache set %q: %v", key, err)
	}
}

func productsKey(filter catalog.ProductFilter) string {
	category := filter.CategoryID
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("products:%s-%d-%d", category, filter.Skip, filter.Limit)
}
