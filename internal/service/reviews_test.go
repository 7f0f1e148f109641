package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/catalog"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewAPI struct {
	mu          sync.Mutex
	listCalls   int
	reviews     []domain.Review
	echoProduct bool // when set, answers each product with a review naming it
	created     *domain.Review
	err         error
	voteErr     error
	block       chan struct{}
	entered     chan struct{}
}

func (f *fakeReviewAPI) ListReviews(_ context.Context, productID string) ([]domain.Review, error) {
	f.mu.Lock()
	f.listCalls++
	reviews, echo, err, block, entered := f.reviews, f.echoProduct, f.err, f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	if echo {
		return []domain.Review{{ID: productID + "-r1", ProductID: productID, Rating: 5}}, nil
	}
	return reviews, nil
}

func (f *fakeReviewAPI) CreateReview(context.Context, catalog.NewReview) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeReviewAPI) VoteHelpful(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voteErr
}

func sampleReviews() []domain.Review {
	return []domain.Review{
		{ID: "r1", ProductID: "p1", UserName: "Ayesha", Rating: 5, Text: "Exquisite", HelpfulVotes: 2},
		{ID: "r2", ProductID: "p1", UserName: "Bilal", Rating: 4, Text: "Very soft"},
	}
}

func TestFetchReviews_Success(t *testing.T) {
	api := &fakeReviewAPI{reviews: sampleReviews()}
	sut := NewReviewService(api)

	reviews, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	state := sut.State()
	require.Len(t, state.Reviews, 2)
	assert.Equal(t, "p1", state.CurrentProductID)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
}

func TestFetchReviews_NeverServedFromCache(t *testing.T) {
	api := &fakeReviewAPI{reviews: sampleReviews()}
	sut := NewReviewService(api)

	for i := 0; i < 2; i++ {
		_, err := sut.FetchReviews(context.Background(), "p1")
		require.NoError(t, err)
	}

	api.mu.Lock()
	calls := api.listCalls
	api.mu.Unlock()
	assert.Equal(t, 2, calls, "reviews change too often to cache")
}

func TestFetchReviews_ClearsDisplayedReviewsBeforeRequest(t *testing.T) {
	api := &fakeReviewAPI{
		reviews: sampleReviews(),
		block:   make(chan struct{}),
		entered: make(chan struct{}, 2),
	}
	sut := NewReviewService(api)

	// Seed displayed reviews for another product.
	close(api.block)
	_, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, sut.State().Reviews, 2)

	api.mu.Lock()
	api.block = make(chan struct{})
	api.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, fetchErr := sut.FetchReviews(context.Background(), "p2")
		done <- fetchErr
	}()

	<-api.entered // second fetch: request is now in flight
	<-api.entered

	state := sut.State()
	assert.Empty(t, state.Reviews, "stale reviews must be cleared before the network completes")
	assert.True(t, state.Loading)
	assert.Equal(t, "p2", state.CurrentProductID)

	api.mu.Lock()
	close(api.block)
	api.mu.Unlock()
	require.NoError(t, <-done)
	assert.False(t, sut.State().Loading)
}

func TestFetchReviews_FailureLeavesListEmpty(t *testing.T) {
	api := &fakeReviewAPI{err: fmt.Errorf("upstream down")}
	sut := NewReviewService(api)

	reviews, err := sut.FetchReviews(context.Background(), "p1")
	require.ErrorContains(t, err, "upstream down")
	assert.Nil(t, reviews)

	state := sut.State()
	assert.Empty(t, state.Reviews)
	assert.Equal(t, "upstream down", state.Err)
	assert.False(t, state.Loading)
}

func TestFetchReviews_ReturnsItsOwnListUnderInterleaving(t *testing.T) {
	api := &fakeReviewAPI{echoProduct: true}
	sut := NewReviewService(api)

	reviewsP1, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)

	// Another shopper's fetch for a different product lands before the
	// first result is consumed; the shared state now holds their reviews.
	_, err = sut.FetchReviews(context.Background(), "p2")
	require.NoError(t, err)

	require.Len(t, reviewsP1, 1)
	assert.Equal(t, "p1", reviewsP1[0].ProductID, "a fetch hands back its own product's reviews")
	assert.Equal(t, "p2", sut.State().CurrentProductID)
}

func TestAddReview_PrependsExactlyOne(t *testing.T) {
	api := &fakeReviewAPI{
		reviews: sampleReviews(),
		created: &domain.Review{ID: "r3", ProductID: "p1", UserName: "Chandni", Rating: 5, Text: "A keepsake"},
	}
	sut := NewReviewService(api)
	_, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)

	created, err := sut.AddReview(context.Background(), catalog.NewReview{
		ProductID: "p1", UserName: "Chandni", Rating: 5, Text: "A keepsake",
	})
	require.NoError(t, err)
	assert.Equal(t, "r3", created.ID)

	state := sut.State()
	require.Len(t, state.Reviews, 3)
	assert.Equal(t, "r3", state.Reviews[0].ID, "new review goes to the front")
	assert.Equal(t, "r1", state.Reviews[1].ID)
}

func TestAddReview_FailureLeavesListUnchangedAndPropagates(t *testing.T) {
	api := &fakeReviewAPI{reviews: sampleReviews()}
	sut := NewReviewService(api)
	_, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)

	api.mu.Lock()
	api.err = fmt.Errorf("validation failed")
	api.mu.Unlock()

	created, err := sut.AddReview(context.Background(), catalog.NewReview{ProductID: "p1"})
	require.ErrorContains(t, err, "validation failed")
	assert.Nil(t, created)

	state := sut.State()
	assert.Len(t, state.Reviews, 2, "failed submission must not corrupt the displayed list")
	assert.Equal(t, "validation failed", state.Err)
}

func TestVoteHelpful_IncrementsLocalCounter(t *testing.T) {
	api := &fakeReviewAPI{reviews: sampleReviews()}
	sut := NewReviewService(api)
	_, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)

	sut.VoteHelpful(context.Background(), "r1")

	state := sut.State()
	assert.Equal(t, 3, state.Reviews[0].HelpfulVotes)
	assert.Equal(t, 0, state.Reviews[1].HelpfulVotes)
}

func TestVoteHelpful_FailureIsSilent(t *testing.T) {
	api := &fakeReviewAPI{reviews: sampleReviews(), voteErr: fmt.Errorf("broker sneezed")}
	sut := NewReviewService(api)
	_, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)

	sut.VoteHelpful(context.Background(), "r1")

	state := sut.State()
	assert.Equal(t, 2, state.Reviews[0].HelpfulVotes, "failed vote must not bump the counter")
	assert.Empty(t, state.Err, "vote failures are never surfaced")
}

func TestReviewStateSnapshotsAreIndependent(t *testing.T) {
	api := &fakeReviewAPI{reviews: sampleReviews()}
	sut := NewReviewService(api)
	_, err := sut.FetchReviews(context.Background(), "p1")
	require.NoError(t, err)

	state := sut.State()
	state.Reviews[0].Text = "tampered"

	assert.Equal(t, "Exquisite", sut.State().Reviews[0].Text, "snapshots are copies, not views")
}
