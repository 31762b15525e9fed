package dto

// AddCartItemRequest is the optional body of the add-to-cart endpoint. A
// missing body means quantity 1.
type AddCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartItemRequest is one line of a wholesale line replacement.
type CartItemRequest struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

// CartQuantityRequest sets the quantity of one existing line.
type CartQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}
