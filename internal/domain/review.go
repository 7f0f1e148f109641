package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Review is the canonical review shape. The review API is inconsistent about
// field names across endpoints, so reviews are always decoded through
// NormalizeReview rather than straight into this struct.
type Review struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	UserName     string `json:"user_name"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
	HelpfulVotes int    `json:"helpful_votes"`
	CreatedAt    string `json:"created_at"`
}

// rawReview accepts every field spelling the upstream has been observed to use.
type rawReview struct {
	ID              string `json:"id"`
	MongoID         string `json:"_id"`
	ProductID       string `json:"product_id"`
	ProductIDAlt    string `json:"productId"`
	UserName        string `json:"user_name"`
	UserNameAlt     string `json:"userName"`
	Rating          int    `json:"rating"`
	Text            string `json:"text"`
	ReviewText      string `json:"review"`
	Comment         string `json:"comment"`
	HelpfulVotes    int    `json:"helpful_votes"`
	HelpfulVotesAlt int    `json:"helpfulVotes"`
	CreatedAt       string `json:"created_at"`
	CreatedAtAlt    string `json:"createdAt"`
	Date            string `json:"date"`
}

// NormalizeReview maps one upstream review payload onto the canonical shape.
func NormalizeReview(data json.RawMessage) (Review, error) {
	var raw rawReview
	if err := json.Unmarshal(data, &raw); err != nil {
		return Review{}, fmt.Errorf("decode review: %w", err)
	}

	votes := raw.HelpfulVotes
	if votes == 0 {
		votes = raw.HelpfulVotesAlt
	}

	createdAt := firstNonEmpty(raw.CreatedAt, raw.CreatedAtAlt, raw.Date)
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	return Review{
		ID:           firstNonEmpty(raw.MongoID, raw.ID),
		ProductID:    firstNonEmpty(raw.ProductID, raw.ProductIDAlt),
		UserName:     firstNonEmpty(raw.UserName, raw.UserNameAlt),
		Rating:       raw.Rating,
		Text:         firstNonEmpty(raw.Text, raw.ReviewText, raw.Comment),
		HelpfulVotes: votes,
		CreatedAt:    createdAt,
	}, nil
}

// DecodeReviewList handles the list envelopes the review API answers with:
// a bare array, or an object wrapping it under items, reviews or data.
func DecodeReviewList(data []byte) ([]Review, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var envelope struct {
			Items   []json.RawMessage `json:"items"`
			Reviews []json.RawMessage `json:"reviews"`
			Data    []json.RawMessage `json:"data"`
		}
		if envErr := json.Unmarshal(data, &envelope); envErr != nil {
			return nil, fmt.Errorf("decode review list: %w", envErr)
		}
		switch {
		case envelope.Items != nil:
			items = envelope.Items
		case envelope.Reviews != nil:
			items = envelope.Reviews
		case envelope.Data != nil:
			items = envelope.Data
		}
	}

	reviews := make([]Review, 0, len(items))
	for _, item := range items {
		review, err := NormalizeReview(item)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
