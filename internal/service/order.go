package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mealdrop/internal/domain"
	"mealdrop/internal/eventbus"
	"mealdrop/internal/logger"
)

// forwardTransitions is the legal forward path, consulted only when
// StrictTransitions is on. The mock contract itself accepts any status.
var forwardTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.StatusPending:    {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed:  {domain.StatusPreparing, domain.StatusCancelled},
	domain.StatusPreparing:  {domain.StatusDelivering},
	domain.StatusDelivering: {domain.StatusDelivered},
}

// PlaceOrder assigns a time-based id and prepends the order (most-recent
// first). Retrying with an order that already carries a known id is a no-op
// returning the stored record: no duplicate entry, no duplicate orderAdded.
func (s *Service) PlaceOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	orders := s.store.LoadOrders(ctx)

	if order.ID != "" {
		for _, existing := range orders {
			if existing.ID == order.ID {
				s.mu.Unlock()
				return existing, nil
			}
		}
	}

	if order.ID == "" {
		order.ID = s.newID("o")
	}
	if order.Status == "" {
		order.Status = domain.StatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	orders = append([]domain.Order{order}, orders...)
	s.store.SaveOrders(ctx, orders)
	s.mu.Unlock()

	s.bus.Publish(eventbus.TopicOrderAdded, order)
	logger.L().Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("merchant_id", order.MerchantID),
		zap.String("user_id", order.UserID))
	return order, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	s.mu.Lock()
	orders := s.store.LoadOrders(ctx)
	index := -1
	for i, order := range orders {
		if order.ID == orderID {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return domain.Order{}, notFound("order", orderID)
	}

	if s.StrictTransitions && !transitionAllowed(orders[index].Status, status) {
		s.mu.Unlock()
		return domain.Order{}, ErrInvalidTransition
	}

	orders[index].Status = status
	updated := orders[index]
	s.store.SaveOrders(ctx, orders)
	s.mu.Unlock()

	s.bus.Publish(eventbus.TopicOrderStatusUpdated, eventbus.OrderStatusUpdated{
		OrderID: orderID,
		Status:  status,
		Order:   updated,
	})
	logger.L().Info("order status updated",
		zap.String("order_id", orderID), zap.String("status", string(status)))
	return updated, nil
}

func transitionAllowed(from, to domain.OrderStatus) bool {
	for _, next := range forwardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrdersForMerchant re-reads the durable snapshot on every call, so it
// reflects the latest state no matter which component mutated it last.
func (s *Service) OrdersForMerchant(ctx context.Context, merchantID string) ([]domain.Order, error) {
	return s.filterOrders(ctx, func(o domain.Order) bool { return o.MerchantID == merchantID }), nil
}

func (s *Service) OrdersForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.filterOrders(ctx, func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (s *Service) filterOrders(ctx context.Context, keep func(domain.Order) bool) []domain.Order {
	orders := s.store.LoadOrders(ctx)
	filtered := []domain.Order{}
	for _, order := range orders {
		if keep(order) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}
