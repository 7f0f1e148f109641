package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// ErrNotFound is returned when the upstream answers 404 for a slug or id.
// Callers treat it as successful absence, not a failure.
var ErrNotFound = errors.New("catalog: not found")

// ProductFilter narrows a product listing. CategoryID empty means all.
type ProductFilter struct {
	Skip       int
	Limit      int
	CategoryID string
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items []domain.Product `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

// NewReview is the payload for submitting a review.
type NewReview struct {
	ProductID string `json:"product_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

// Client talks to the upstream catalog REST API. Calls run through a
// circuit breaker so a struggling upstream sheds load quickly instead of
// tying up every storefront request until timeout.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name: "catalog-api",
		}),
	}
}

func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(filter.Skip))
	query.Set("limit", strconv.Itoa(filter.Limit))
	if filter.CategoryID != "" {
		query.Set("category_id", filter.CategoryID)
	}

	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(slug), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(slug), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListReviews decodes through the raw payload because the review API wraps
// and names fields inconsistently.
func (c *Client) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(productID), nil, nil, &raw); err != nil {
		return nil, err
	}
	return domain.DecodeReviewList(raw)
}

func (c *Client) CreateReview(ctx context.Context, review NewReview) (*domain.Review, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, review, &raw); err != nil {
		return nil, err
	}
	created, err := domain.NormalizeReview(raw)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) VoteHelpful(ctx context.Context, reviewID string) error {
	return c.do(ctx, http.MethodPost, "/reviews/"+url.PathEscape(reviewID)+"/vote", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("catalog: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Transport errors and 5xx responses trip the breaker; 4xx never does.
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("catalog: upstream returned %d for %s %s", resp.StatusCode, method, path)
		}
		return resp, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("catalog: upstream returned %d for %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}
