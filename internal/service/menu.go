package service

import (
	"context"

	"go.uber.org/zap"

	"mealdrop/internal/domain"
	"mealdrop/internal/eventbus"
	"mealdrop/internal/logger"
)

// Menu returns the merchant's items. A merchant without items yields an empty
// list, never an error.
func (s *Service) Menu(ctx context.Context, merchantID string) ([]domain.MenuItem, error) {
	menus := s.store.LoadMenus(ctx)
	items := menus[merchantID]
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

// AddMenuItem assigns a fresh id, appends the item to the merchant's list and
// emits menuItemAdded.
func (s *Service) AddMenuItem(ctx context.Context, merchantID string, item domain.MenuItem) (domain.MenuItem, error) {
	s.mu.Lock()
	menus := s.store.LoadMenus(ctx)
	item.ID = s.newID("m")
	menus[merchantID] = append(menus[merchantID], item)
	s.store.SaveMenus(ctx, menus)
	s.mu.Unlock()

	s.bus.Publish(eventbus.TopicMenuItemAdded, eventbus.MenuItemAdded{
		MerchantID: merchantID,
		Item:       item,
	})
	logger.L().Debug("menu item added",
		zap.String("merchant_id", merchantID), zap.String("item_id", item.ID))
	return item, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, merchantID, itemID string, patch domain.MenuItemPatch) (domain.MenuItem, error) {
	s.mu.Lock()
	menus := s.store.LoadMenus(ctx)
	items := menus[merchantID]
	index := -1
	for i, item := range items {
		if item.ID == itemID {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return domain.MenuItem{}, notFound("menu item", itemID)
	}

	items[index] = patch.Apply(items[index])
	updated := items[index]
	menus[merchantID] = items
	s.store.SaveMenus(ctx, menus)
	s.mu.Unlock()

	s.bus.Publish(eventbus.TopicMenuItemUpdated, eventbus.MenuItemUpdated{
		MerchantID: merchantID,
		ItemID:     itemID,
		Item:       updated,
	})
	logger.L().Debug("menu item updated",
		zap.String("merchant_id", merchantID), zap.String("item_id", itemID))
	return updated, nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, merchantID, itemID string) error {
	s.mu.Lock()
	menus := s.store.LoadMenus(ctx)
	items := menus[merchantID]
	index := -1
	for i, item := range items {
		if item.ID == itemID {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return notFound("menu item", itemID)
	}

	menus[merchantID] = append(items[:index:index], items[index+1:]...)
	s.store.SaveMenus(ctx, menus)
	s.mu.Unlock()

	s.bus.Publish(eventbus.TopicMenuItemDeleted, eventbus.MenuItemDeleted{
		MerchantID: merchantID,
		ItemID:     itemID,
	})
	logger.L().Debug("menu item deleted",
		zap.String("merchant_id", merchantID), zap.String("item_id", itemID))
	return nil
}
