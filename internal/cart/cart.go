// Package cart holds the client-local state machines: cart, favorites and
// user profile. They never round-trip through the domain service; every
// transition is a pure reducer step followed by a whole-state save to the
// durable store under a fixed key.
package cart

import (
	"context"

	"mealdrop/internal/domain"
	"mealdrop/internal/storage"
)

type State struct {
	Items        []domain.CartItem `json:"items"`
	MerchantID   string            `json:"merchantId,omitempty"`
	MerchantName string            `json:"merchantName,omitempty"`
}

type actionType string

const (
	addItem        actionType = "ADD_ITEM"
	removeItem     actionType = "REMOVE_ITEM"
	updateQuantity actionType = "UPDATE_QUANTITY"
	clearCart      actionType = "CLEAR_CART"
)

type action struct {
	kind         actionType
	item         domain.CartItem
	merchantID   string
	merchantName string
	itemID       string
	change       int
}

// reduce is the cart state machine. It never mutates its input.
func reduce(state State, a action) State {
	switch a.kind {
	case addItem:
		// Items from a different merchant replace the cart wholesale.
		if state.MerchantID != "" && state.MerchantID != a.merchantID {
			return State{
				Items:        []domain.CartItem{a.item},
				MerchantID:   a.merchantID,
				MerchantName: a.merchantName,
			}
		}
		for i, item := range state.Items {
			if item.ID == a.item.ID {
				items := append([]domain.CartItem(nil), state.Items...)
				items[i].Quantity += a.item.Quantity
				state.Items = items
				return state
			}
		}
		state.Items = append(append([]domain.CartItem(nil), state.Items...), a.item)
		state.MerchantID = a.merchantID
		state.MerchantName = a.merchantName
		return state

	case removeItem:
		items := []domain.CartItem{}
		for _, item := range state.Items {
			if item.ID != a.itemID {
				items = append(items, item)
			}
		}
		state.Items = items
		if len(items) == 0 {
			state.MerchantID = ""
			state.MerchantName = ""
		}
		return state

	case updateQuantity:
		items := append([]domain.CartItem(nil), state.Items...)
		for i, item := range items {
			if item.ID == a.itemID {
				quantity := item.Quantity + a.change
				// Never below one; removal goes through REMOVE_ITEM.
				if quantity < 1 {
					quantity = 1
				}
				items[i].Quantity = quantity
			}
		}
		state.Items = items
		return state

	case clearCart:
		return State{Items: []domain.CartItem{}}

	default:
		return state
	}
}

// Cart dispatches actions through the reducer and persists the full state
// after every transition.
type Cart struct {
	store *storage.Store
	state State
}

func NewCart(ctx context.Context, store *storage.Store) *Cart {
	c := &Cart{store: store, state: State{Items: []domain.CartItem{}}}
	store.Load(ctx, storage.KeyCart, &c.state)
	return c
}

func (c *Cart) dispatch(ctx context.Context, a action) {
	c.state = reduce(c.state, a)
	c.store.Save(ctx, storage.KeyCart, c.state)
}

func (c *Cart) AddItem(ctx context.Context, item domain.CartItem, merchantID, merchantName string) {
	c.dispatch(ctx, action{kind: addItem, item: item, merchantID: merchantID, merchantName: merchantName})
}

func (c *Cart) RemoveItem(ctx context.Context, itemID string) {
	c.dispatch(ctx, action{kind: removeItem, itemID: itemID})
}

// UpdateQuantity adjusts an item's quantity by change (may be negative),
// clamped to a minimum of one.
func (c *Cart) UpdateQuantity(ctx context.Context, itemID string, change int) {
	c.dispatch(ctx, action{kind: updateQuantity, itemID: itemID, change: change})
}

func (c *Cart) Clear(ctx context.Context) {
	c.dispatch(ctx, action{kind: clearCart})
}

func (c *Cart) State() State {
	return c.state
}

func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.state.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
