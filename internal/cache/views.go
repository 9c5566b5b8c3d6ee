// Package cache gives each consuming view a locally-fresh read of domain
// state without re-querying on every access. Each view caches one query,
// keyed by the parameters it was built with, and keeps itself consistent by
// subscribing to the event bus.
//
// Caching policy is fixed per entity type: merchant views patch their cache
// optimistically from event payloads; menu and order views invalidate and
// refetch. Mixing the two per event leads to unpredictable staleness, so a
// view never does.
package cache

import (
	"context"
	"time"

	"mealdrop/internal/domain"
	"mealdrop/internal/eventbus"
	"mealdrop/internal/service"
)

const (
	MerchantsTTL = 2 * time.Minute
	MerchantTTL  = 5 * time.Minute
	MenuTTL      = 3 * time.Minute
	OrdersTTL    = 0 // orders are always considered stale
)

// MerchantsView caches the full merchant listing. Policy: optimistic patch.
type MerchantsView struct {
	cell *cell[[]domain.Merchant]
	bus  *eventbus.Bus
	subs []eventbus.Subscription
}

func NewMerchantsView(svc *service.Service, bus *eventbus.Bus) *MerchantsView {
	v := &MerchantsView{
		cell: newCell(MerchantsTTL, svc.AllMerchants),
		bus:  bus,
	}
	v.subs = append(v.subs,
		bus.Subscribe(eventbus.TopicMerchantRegistered, func(payload any) {
			merchant, ok := payload.(domain.Merchant)
			if !ok {
				return
			}
			v.cell.Patch(func(merchants []domain.Merchant) []domain.Merchant {
				return append(merchants, merchant)
			})
		}),
		bus.Subscribe(eventbus.TopicMerchantUpdated, func(payload any) {
			event, ok := payload.(eventbus.MerchantUpdated)
			if !ok {
				return
			}
			v.cell.Patch(func(merchants []domain.Merchant) []domain.Merchant {
				patched := make([]domain.Merchant, len(merchants))
				for i, m := range merchants {
					if m.ID == event.MerchantID {
						patched[i] = event.Merchant
					} else {
						patched[i] = m
					}
				}
				return patched
			})
		}),
	)
	return v
}

func (v *MerchantsView) Get(ctx context.Context) ([]domain.Merchant, error) {
	return v.cell.Get(ctx)
}

// Close unsubscribes every handler the view registered. A view that is
// discarded without Close leaks subscriptions.
func (v *MerchantsView) Close() {
	for _, sub := range v.subs {
		v.bus.Unsubscribe(sub)
	}
	v.subs = nil
}

// MerchantView caches a single merchant by id. Policy: optimistic patch.
type MerchantView struct {
	cell *cell[domain.Merchant]
	bus  *eventbus.Bus
	subs []eventbus.Subscription
}

func NewMerchantView(svc *service.Service, bus *eventbus.Bus, merchantID string) *MerchantView {
	v := &MerchantView{
		cell: newCell(MerchantTTL, func(ctx context.Context) (domain.Merchant, error) {
			return svc.MerchantByID(ctx, merchantID)
		}),
		bus: bus,
	}
	v.subs = append(v.subs,
		bus.Subscribe(eventbus.TopicMerchantUpdated, func(payload any) {
			event, ok := payload.(eventbus.MerchantUpdated)
			if !ok || event.MerchantID != merchantID {
				return
			}
			v.cell.Patch(func(domain.Merchant) domain.Merchant {
				return event.Merchant
			})
		}),
	)
	return v
}

func (v *MerchantView) Get(ctx context.Context) (domain.Merchant, error) {
	return v.cell.Get(ctx)
}

func (v *MerchantView) Close() {
	for _, sub := range v.subs {
		v.bus.Unsubscribe(sub)
	}
	v.subs = nil
}

// MenuView caches one merchant's menu. Policy: invalidate-and-refetch.
type MenuView struct {
	cell *cell[[]domain.MenuItem]
	bus  *eventbus.Bus
	subs []eventbus.Subscription
}

func NewMenuView(svc *service.Service, bus *eventbus.Bus, merchantID string) *MenuView {
	v := &MenuView{
		cell: newCell(MenuTTL, func(ctx context.Context) ([]domain.MenuItem, error) {
			return svc.Menu(ctx, merchantID)
		}),
		bus: bus,
	}

	invalidate := func(eventMerchantID string) {
		if eventMerchantID == merchantID {
			v.cell.Invalidate()
		}
	}
	v.subs = append(v.subs,
		bus.Subscribe(eventbus.TopicMenuItemAdded, func(payload any) {
			if event, ok := payload.(eventbus.MenuItemAdded); ok {
				invalidate(event.MerchantID)
			}
		}),
		bus.Subscribe(eventbus.TopicMenuItemUpdated, func(payload any) {
			if event, ok := payload.(eventbus.MenuItemUpdated); ok {
				invalidate(event.MerchantID)
			}
		}),
		bus.Subscribe(eventbus.TopicMenuItemDeleted, func(payload any) {
			if event, ok := payload.(eventbus.MenuItemDeleted); ok {
				invalidate(event.MerchantID)
			}
		}),
	)
	return v
}

func (v *MenuView) Get(ctx context.Context) ([]domain.MenuItem, error) {
	return v.cell.Get(ctx)
}

func (v *MenuView) Close() {
	for _, sub := range v.subs {
		v.bus.Unsubscribe(sub)
	}
	v.subs = nil
}

// OrdersView caches the order list for one merchant or one user. Policy:
// invalidate-and-refetch on any order event, regardless of scope — order
// events are rare and cheap to refetch, and scoping the invalidation buys
// nothing but bug surface.
type OrdersView struct {
	cell *cell[[]domain.Order]
	bus  *eventbus.Bus
	subs []eventbus.Subscription
}

func NewMerchantOrdersView(svc *service.Service, bus *eventbus.Bus, merchantID string) *OrdersView {
	return newOrdersView(bus, func(ctx context.Context) ([]domain.Order, error) {
		return svc.OrdersForMerchant(ctx, merchantID)
	})
}

func NewUserOrdersView(svc *service.Service, bus *eventbus.Bus, userID string) *OrdersView {
	return newOrdersView(bus, func(ctx context.Context) ([]domain.Order, error) {
		return svc.OrdersForUser(ctx, userID)
	})
}

func newOrdersView(bus *eventbus.Bus, fetch func(context.Context) ([]domain.Order, error)) *OrdersView {
	v := &OrdersView{
		cell: newCell(OrdersTTL, fetch),
		bus:  bus,
	}
	invalidate := func(any) { v.cell.Invalidate() }
	v.subs = append(v.subs,
		bus.Subscribe(eventbus.TopicOrderAdded, invalidate),
		bus.Subscribe(eventbus.TopicOrderStatusUpdated, invalidate),
	)
	return v
}

func (v *OrdersView) Get(ctx context.Context) ([]domain.Order, error) {
	return v.cell.Get(ctx)
}

func (v *OrdersView) Close() {
	for _, sub := range v.subs {
		v.bus.Unsubscribe(sub)
	}
	v.subs = nil
}
