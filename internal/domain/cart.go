package domain

// Selection is what the shopper picked on the product page when adding
// to the cart: a variation color and the image that was showing.
type Selection struct {
	Color string `json:"color,omitempty"`
	Image string `json:"image,omitempty"`
}

// CartLine is one entry in a shopper's cart. Product fields are copied at
// add time, so later catalog changes never mutate an existing line.
type CartLine struct {
	ProductID     string `json:"product_id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	UnitPrice     Price  `json:"unit_price"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color,omitempty"`
	SelectedImage string `json:"selected_image,omitempty"`
}
