package cart

import (
	"context"

	"mealdrop/internal/storage"
)

type FavoritesState struct {
	Merchants []string `json:"merchants"`
}

// Favorites is the user's starred-merchant set, persisted under its own key.
type Favorites struct {
	store *storage.Store
	state FavoritesState
}

func NewFavorites(ctx context.Context, store *storage.Store) *Favorites {
	f := &Favorites{store: store, state: FavoritesState{Merchants: []string{}}}
	store.Load(ctx, storage.KeyFavorites, &f.state)
	return f
}

// Toggle adds the merchant when absent and removes it when present.
func (f *Favorites) Toggle(ctx context.Context, merchantID string) {
	if f.IsFavorite(merchantID) {
		merchants := []string{}
		for _, id := range f.state.Merchants {
			if id != merchantID {
				merchants = append(merchants, id)
			}
		}
		f.state.Merchants = merchants
	} else {
		f.state.Merchants = append(append([]string(nil), f.state.Merchants...), merchantID)
	}
	f.store.Save(ctx, storage.KeyFavorites, f.state)
}

func (f *Favorites) IsFavorite(merchantID string) bool {
	for _, id := range f.state.Merchants {
		if id == merchantID {
			return true
		}
	}
	return false
}

func (f *Favorites) State() FavoritesState {
	return f.state
}
