package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storehub/commerce-service/pkg/errs"
)

func TestCartAddItemMergesQuantities(t *testing.T) {
	cart := Cart{}

	cart.AddItem("p1", 1)
	cart.AddItem("p1", 2)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(3), cart.Items[0].Quantity)

	cart.AddItem("p2", 1)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "p2", cart.Items[1].ProductID)
}

func TestCartRemoveItemIsIdempotent(t *testing.T) {
	cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 2}}}

	cart.RemoveItem("missing")
	assert.Len(t, cart.Items, 1)

	cart.RemoveItem("p1")
	assert.Empty(t, cart.Items)

	cart.RemoveItem("p1")
	assert.Empty(t, cart.Items)
}

func TestCartSetItemQuantity(t *testing.T) {
	cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 2}}}

	err := cart.SetItemQuantity("p1", 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)

	err = cart.SetItemQuantity("p1", 0)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)

	err = cart.SetItemQuantity("p1", -3)
	assert.ErrorIs(t, err, errs.ErrValidation)

	err = cart.SetItemQuantity("missing", 1)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCartReplaceItems(t *testing.T) {
	cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1}}}

	err := cart.ReplaceItems([]CartItem{
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p3", Quantity: 1},
	})
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	// A single bad line rejects the whole replacement.
	err = cart.ReplaceItems([]CartItem{
		{ProductID: "p4", Quantity: 1},
		{ProductID: "p5", Quantity: 0},
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, "p2", cart.Items[0].ProductID)

	err = cart.ReplaceItems([]CartItem{
		{ProductID: "p6", Quantity: 1},
		{ProductID: "p6", Quantity: 2},
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	err = cart.ReplaceItems([]CartItem{{ProductID: "", Quantity: 1}})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCartClear(t *testing.T) {
	cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 1}}}

	cart.Clear()

	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}
