package storage

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"mealdrop/internal/domain"
	"mealdrop/internal/logger"
)

// Snapshot keys. Each key holds one complete JSON-serialized collection.
const (
	KeyMerchants = "merchants"
	KeyUsers     = "users"
	KeyMenus     = "menus"
	KeyOrders    = "orders"

	KeyCart      = "cart"
	KeyFavorites = "favorites"
	KeyProfile   = "profile"

	KeyMerchantSession = "session:merchant"
	KeyUserSession     = "session:user"
)

// Store persists and reloads whole collections as snapshots. Persistence is
// best-effort: a broken medium degrades to seed data on read and to
// in-memory-only behavior on write, never to an error for the caller.
type Store struct {
	medium Medium
}

func NewStore(medium Medium) *Store {
	return &Store{medium: medium}
}

// Load unmarshals the snapshot under key into v. It returns false when the
// key is absent or the stored bytes are corrupt; v is left untouched in that
// case so the caller can fall back to a seeded state.
func (s *Store) Load(ctx context.Context, key string, v any) bool {
	value, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		logger.L().Warn("snapshot load failed, falling back to seed state",
			zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(value, v); err != nil {
		logger.L().Warn("snapshot is corrupt, falling back to seed state",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Save serializes v and replaces the snapshot under key. Failures are logged
// and swallowed: durability is a convenience here, not a guarantee.
func (s *Store) Save(ctx context.Context, key string, v any) {
	value, err := json.Marshal(v)
	if err != nil {
		logger.L().Warn("snapshot marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.medium.Set(ctx, key, value); err != nil {
		logger.L().Warn("snapshot save failed, state is in-memory only",
			zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.medium.Delete(ctx, key); err != nil {
		logger.L().Warn("snapshot delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Typed collection accessors. Every Load* call re-reads the medium so the
// caller always sees the latest snapshot, no matter which component saved it
// last; this is what makes the reload-mutate-save discipline possible.

func (s *Store) LoadMerchants(ctx context.Context) map[string]domain.Merchant {
	merchants := make(map[string]domain.Merchant)
	if !s.Load(ctx, KeyMerchants, &merchants) {
		return SeedMerchants()
	}
	return merchants
}

func (s *Store) SaveMerchants(ctx context.Context, merchants map[string]domain.Merchant) {
	s.Save(ctx, KeyMerchants, merchants)
}

func (s *Store) LoadUsers(ctx context.Context) map[string]domain.User {
	users := make(map[string]domain.User)
	if !s.Load(ctx, KeyUsers, &users) {
		return SeedUsers()
	}
	return users
}

func (s *Store) SaveUsers(ctx context.Context, users map[string]domain.User) {
	s.Save(ctx, KeyUsers, users)
}

func (s *Store) LoadMenus(ctx context.Context) map[string][]domain.MenuItem {
	menus := make(map[string][]domain.MenuItem)
	if !s.Load(ctx, KeyMenus, &menus) {
		return SeedMenus()
	}
	return menus
}

func (s *Store) SaveMenus(ctx context.Context, menus map[string][]domain.MenuItem) {
	s.Save(ctx, KeyMenus, menus)
}

func (s *Store) LoadOrders(ctx context.Context) []domain.Order {
	orders := []domain.Order{}
	if !s.Load(ctx, KeyOrders, &orders) {
		return []domain.Order{}
	}
	return orders
}

func (s *Store) SaveOrders(ctx context.Context, orders []domain.Order) {
	s.Save(ctx, KeyOrders, orders)
}
