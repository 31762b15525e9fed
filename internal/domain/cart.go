package domain

import "github.com/storehub/commerce-service/pkg/errs"

// CartItem is one line of a cart. ProductID is a weak reference: deleting a
// product does not cascade into carts, so a line may point at a product that
// no longer exists and is resolved to "unavailable" at read time.
type CartItem struct {
	ProductID string `bson:"product" json:"product"`
	Quantity  int64  `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID    string     `bson:"_id,omitempty" json:"id"`
	Items []CartItem `bson:"products" json:"products"`
}

// AddItem merges the quantity into an existing line or appends a new one.
// A cart never holds two lines for the same product.
func (c *Cart) AddItem(productID string, quantity int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}

	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
}

// RemoveItem deletes the line for productID. Removing an absent line is a
// no-op.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetItemQuantity overwrites the quantity of an existing line. The line must
// already exist and the quantity must be at least 1; no line can reach a
// non-positive quantity through cart operations.
func (c *Cart) SetItemQuantity(productID string, quantity int64) error {
	if quantity < 1 {
		return errs.ErrValidation
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}

	return errs.ErrNotFound
}

// ReplaceItems swaps the whole line list. Validation is all-or-nothing: one
// bad line rejects the replacement and leaves the cart untouched.
func (c *Cart) ReplaceItems(items []CartItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			return errs.ErrValidation
		}
		if _, ok := seen[item.ProductID]; ok {
			return errs.ErrValidation
		}
		seen[item.ProductID] = struct{}{}
	}

	c.Items = append([]CartItem{}, items...)
	return nil
}

// Clear empties the line list without destroying the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}
