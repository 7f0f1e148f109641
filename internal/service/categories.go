package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/cache"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/catalog"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
	"golang.org/x/sync/singleflight"
)

// categoriesKey is the single cache key for the category list; the listing
// takes no parameters.
const categoriesKey = "categories:all"

type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type CategoryState struct {
	Categories []domain.Category
	Current    *domain.Category
	Loading    bool
	Err        string
}

type CategoryService struct {
	api   CategoryAPI
	cache cache.Store
	sfg   singleflight.Group

	mu         sync.RWMutex
	categories []domain.Category
	current    *domain.Category
	loading    bool
	err        string
}

func NewCategoryService(api CategoryAPI, store cache.Store) *CategoryService {
	return &CategoryService{api: api, cache: store}
}

// FetchCategories loads and returns the category list, serving from cache
// while the entry is fresh.
func (s *CategoryService) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	if raw, err := s.cache.Get(ctx, categoriesKey); err == nil {
		var categories []domain.Category
		if err := json.Unmarshal(raw, &categories); err == nil {
			s.setCategories(categories)
			return categories, nil
		}
	}

	s.beginLoad()

	v, err, _ := s.sfg.Do(categoriesKey, func() (interface{}, error) {
		return s.api.ListCategories(ctx)
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}

	categories := v.([]domain.Category)
	storeEntry(ctx, s.cache, categoriesKey, categories)
	s.setCategories(categories)
	return categories, nil
}

// FetchCategoryBySlug resolves a category landing page. A 404 clears the
// current category and returns ErrNotFound without recording an error.
func (s *CategoryService) FetchCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	key := "category:slug:" + slug

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var category domain.Category
		if err := json.Unmarshal(raw, &category); err == nil {
			s.setCurrent(&category)
			return &category, nil
		}
	}

	s.beginLoad()

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		return s.api.GetCategoryBySlug(ctx, slug)
	})
	if errors.Is(err, catalog.ErrNotFound) {
		s.setCurrent(nil)
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		s.fail(err)
		return nil, err
	}

	category := v.(*domain.Category)
	storeEntry(ctx, s.cache, key, category)
	s.setCurrent(category)
	return category, nil
}

func (s *CategoryService) State() CategoryState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := CategoryState{
		Categories: append([]domain.Category(nil), s.categories...),
		Loading:    s.loading,
		Err:        s.err,
	}
	if s.current != nil {
		current := *s.current
		state.Current = &current
	}
	return state
}

func (s *CategoryService) beginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *CategoryService) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err.Error()
}

func (s *CategoryService) setCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	s.loading = false
}

func (s *CategoryService) setCurrent(category *domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = category
	s.loading = false
}
