package cart

import (
	"context"

	"mealdrop/internal/domain"
	"mealdrop/internal/storage"
)

// Profile is the locally-held copy of the signed-in user's record. Edits made
// here (addresses, settings) are client-only state, matching the mock's
// contract.
type Profile struct {
	store *storage.Store
	state domain.User
}

func NewProfile(ctx context.Context, store *storage.Store) *Profile {
	p := &Profile{store: store}
	store.Load(ctx, storage.KeyProfile, &p.state)
	return p
}

func (p *Profile) Set(ctx context.Context, user domain.User) {
	p.state = user
	p.save(ctx)
}

// UpsertAddress inserts or replaces an address. At most one address may be
// the default: marking one default demotes every other.
func (p *Profile) UpsertAddress(ctx context.Context, address domain.Address) {
	addresses := append([]domain.Address(nil), p.state.Addresses...)
	replaced := false
	for i, existing := range addresses {
		if existing.ID == address.ID {
			addresses[i] = address
			replaced = true
			break
		}
	}
	if !replaced {
		addresses = append(addresses, address)
	}
	if address.IsDefault {
		for i := range addresses {
			if addresses[i].ID != address.ID {
				addresses[i].IsDefault = false
			}
		}
	}
	p.state.Addresses = addresses
	p.save(ctx)
}

func (p *Profile) SetDefaultAddress(ctx context.Context, addressID string) {
	addresses := append([]domain.Address(nil), p.state.Addresses...)
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == addressID
	}
	p.state.Addresses = addresses
	p.save(ctx)
}

func (p *Profile) RemoveAddress(ctx context.Context, addressID string) {
	addresses := []domain.Address{}
	for _, address := range p.state.Addresses {
		if address.ID != addressID {
			addresses = append(addresses, address)
		}
	}
	p.state.Addresses = addresses
	p.save(ctx)
}

// DefaultAddress returns the default address, or the first one when none is
// marked, or nil for an empty book.
func (p *Profile) DefaultAddress() *domain.Address {
	for i := range p.state.Addresses {
		if p.state.Addresses[i].IsDefault {
			address := p.state.Addresses[i]
			return &address
		}
	}
	if len(p.state.Addresses) > 0 {
		address := p.state.Addresses[0]
		return &address
	}
	return nil
}

func (p *Profile) State() domain.User {
	return p.state
}

func (p *Profile) save(ctx context.Context) {
	p.store.Save(ctx, storage.KeyProfile, p.state)
}
