package dto

// ProductSummary is the slice of product fields exposed when cart lines are
// expanded for display.
type ProductSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CartDetailItem is one expanded cart line. Product is nil and Available is
// false when the referenced product no longer exists; the line itself is
// still reported rather than failing the whole read.
type CartDetailItem struct {
	ProductID string          `json:"productId"`
	Product   *ProductSummary `json:"product,omitempty"`
	Quantity  int64           `json:"quantity"`
	Available bool            `json:"available"`
}

// CartDetailResponse is the opt-in expanded read shape of a cart.
type CartDetailResponse struct {
	ID    string           `json:"id"`
	Items []CartDetailItem `json:"products"`
}
