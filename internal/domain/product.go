package domain

import "encoding/json"

// Price is a display price: an amount in the catalog's currency.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Variation is one purchasable look of a product (color plus its image).
type Variation struct {
	Color    string `json:"color"`
	ImageURL string `json:"image_url"`
	PublicID string `json:"public_id,omitempty"`
}

type ProductCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       Price           `json:"price"`
	Gender      string          `json:"gender"`
	Type        string          `json:"type"`
	Category    ProductCategory `json:"category"`
	ItemNumber  json.Number     `json:"item_number,omitempty"`
	Material    string          `json:"material,omitempty"`
	Weight      string          `json:"weight,omitempty"`
	Sizing      string          `json:"sizing,omitempty"`
	Status      string          `json:"status,omitempty"`
	Rating      Rating          `json:"rating"`
	Variations  []Variation     `json:"variations"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}
