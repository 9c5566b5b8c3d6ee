package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"mealdrop/internal/domain"
	"mealdrop/internal/eventbus"
	"mealdrop/internal/logger"
	"mealdrop/internal/storage"
)

// Service is the single source of truth for merchants, menus, users and
// orders. It simulates what a real backend would enforce: every mutation
// reloads the latest snapshot, applies the change, saves the whole
// collection back, and only then emits a bus event. Values returned to
// callers come from freshly deserialized snapshots, so callers can never
// alias the "server's" state.
type Service struct {
	store *storage.Store
	bus   *eventbus.Bus

	// StrictTransitions turns on forward-only order status validation.
	// Off by default: the mock contract accepts any status (a known gap).
	StrictTransitions bool

	// One writer at a time per service. Whole-collection saves make two
	// interleaved mutations a lost-update hazard otherwise.
	mu sync.Mutex

	// Entity ids are time-based; lastID makes them monotonic even when two
	// mutations land in the same millisecond.
	lastID int64
}

func New(store *storage.Store, bus *eventbus.Bus) *Service {
	return &Service{store: store, bus: bus}
}

// newID mints a time-based id with the given prefix ("m" for menu items,
// "o" for orders, ...). Ids only grow; freed ids are never reused.
func (s *Service) newID(prefix string) string {
	ms := time.Now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return prefix + strconv.FormatInt(ms, 10)
}

// AllMerchants lists every merchant, credentials stripped, sorted by id for a
// stable listing.
func (s *Service) AllMerchants(ctx context.Context) ([]domain.Merchant, error) {
	records := s.store.LoadMerchants(ctx)
	merchants := make([]domain.Merchant, 0, len(records))
	for _, m := range records {
		merchants = append(merchants, stripMerchant(m))
	}
	sort.Slice(merchants, func(i, j int) bool { return merchants[i].ID < merchants[j].ID })
	return merchants, nil
}

func (s *Service) MerchantByID(ctx context.Context, id string) (domain.Merchant, error) {
	records := s.store.LoadMerchants(ctx)
	m, ok := records[id]
	if !ok {
		return domain.Merchant{}, notFound("merchant", id)
	}
	return stripMerchant(m), nil
}

// UpdateMerchant merges the patch over the stored record field by field and
// emits merchantUpdated with the result.
func (s *Service) UpdateMerchant(ctx context.Context, id string, patch domain.MerchantPatch) (domain.Merchant, error) {
	s.mu.Lock()
	records := s.store.LoadMerchants(ctx)
	m, ok := records[id]
	if !ok {
		s.mu.Unlock()
		return domain.Merchant{}, notFound("merchant", id)
	}

	m = patch.Apply(m)
	records[id] = m
	s.store.SaveMerchants(ctx, records)
	s.mu.Unlock()

	updated := stripMerchant(m)
	s.bus.Publish(eventbus.TopicMerchantUpdated, eventbus.MerchantUpdated{
		MerchantID: id,
		Merchant:   updated,
	})
	logger.L().Debug("merchant updated", zap.String("merchant_id", id))
	return updated, nil
}

func stripMerchant(m domain.Merchant) domain.Merchant {
	m.Password = ""
	return m
}

func stripUser(u domain.User) domain.User {
	u.Password = ""
	return u
}
