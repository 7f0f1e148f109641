package service

import (
	"context"
	"log"
	"sync"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/catalog"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
)

type ReviewAPI interface {
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, review catalog.NewReview) (*domain.Review, error)
	VoteHelpful(ctx context.Context, reviewID string) error
}

type ReviewState struct {
	Reviews          []domain.Review
	CurrentProductID string
	Loading          bool
	Err              string
}

// ReviewService holds the reviews for the product currently on screen.
// Reviews change too often to be worth caching: every FetchReviews clears
// the displayed list and goes to the network.
type ReviewService struct {
	api ReviewAPI

	mu               sync.RWMutex
	reviews          []domain.Review
	currentProductID string
	loading          bool
	err              string
}

func NewReviewService(api ReviewAPI) *ReviewService {
	return &ReviewService{api: api}
}

// FetchReviews clears the displayed reviews and sets loading before the
// request goes out, so the page never shows another product's reviews. The
// fetched list is returned so a caller answering one request is immune to a
// concurrent fetch for a different product overwriting the shared state.
func (s *ReviewService) FetchReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	s.mu.Lock()
	s.reviews = nil
	s.currentProductID = productID
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	reviews, err := s.api.ListReviews(ctx, productID)
	if err != nil {
		log.Printf("fetch reviews for product %s: %v", productID, err)
		s.mu.Lock()
		s.loading = false
		s.err = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.reviews = reviews
	s.loading = false
	s.mu.Unlock()
	return reviews, nil
}

// AddReview submits a review and prepends the normalized result to the
// displayed list. Failure leaves the list untouched and is returned to the
// caller so the submission form can surface it inline.
func (s *ReviewService) AddReview(ctx context.Context, review catalog.NewReview) (*domain.Review, error) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	created, err := s.api.CreateReview(ctx, review)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.reviews = append([]domain.Review{*created}, s.reviews...)
	s.loading = false
	s.mu.Unlock()
	return created, nil
}

// VoteHelpful is best effort: a lost vote is not worth interrupting the
// shopper, so failures are logged and swallowed.
func (s *ReviewService) VoteHelpful(ctx context.Context, reviewID string) {
	if err := s.api.VoteHelpful(ctx, reviewID); err != nil {
		log.Printf("vote helpful on review %s: %v", reviewID, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == reviewID {
			s.reviews[i].HelpfulVotes++
			break
		}
	}
}

func (s *ReviewService) State() ReviewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ReviewState{
		Reviews:          append([]domain.Review(nil), s.reviews...),
		CurrentProductID: s.currentProductID,
		Loading:          s.loading,
		Err:              s.err,
	}
}
