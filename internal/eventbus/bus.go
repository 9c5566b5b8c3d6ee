package eventbus

import (
	"sync"

	"mealdrop/internal/domain"
)

type Topic string

const (
	TopicMerchantRegistered Topic = "merchantRegistered"
	TopicMerchantUpdated    Topic = "merchantUpdated"
	TopicUserRegistered     Topic = "userRegistered"
	TopicMenuItemAdded      Topic = "menuItemAdded"
	TopicMenuItemUpdated    Topic = "menuItemUpdated"
	TopicMenuItemDeleted    Topic = "menuItemDeleted"
	TopicOrderAdded         Topic = "orderAdded"
	TopicOrderStatusUpdated Topic = "orderStatusUpdated"
)

// Payload shapes per topic. merchantRegistered, userRegistered and orderAdded
// carry the bare entity (domain.Merchant, domain.User, domain.Order).

type MerchantUpdated struct {
	MerchantID string          `json:"merchantId"`
	Merchant   domain.Merchant `json:"merchant"`
}

type MenuItemAdded struct {
	MerchantID string          `json:"merchantId"`
	Item       domain.MenuItem `json:"item"`
}

type MenuItemUpdated struct {
	MerchantID string          `json:"merchantId"`
	ItemID     string          `json:"itemId"`
	Item       domain.MenuItem `json:"item"`
}

type MenuItemDeleted struct {
	MerchantID string `json:"merchantId"`
	ItemID     string `json:"itemId"`
}

type OrderStatusUpdated struct {
	OrderID string             `json:"orderId"`
	Status  domain.OrderStatus `json:"status"`
	Order   domain.Order       `json:"order"`
}

type Handler func(payload any)

// Subscription identifies one registered handler so it can be removed again.
type Subscription struct {
	topic Topic
	id    uint64
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous in-process publish/subscribe registry. Delivery happens
// on the publisher's goroutine, in subscription order. There is no buffering
// and no replay: a handler registered after Publish returns never sees that
// event.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]registration
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]registration)}
}

func (b *Bus) Subscribe(topic Topic, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[topic] = append(b.subs[topic], registration{id: b.nextID, handler: handler})
	return Subscription{topic: topic, id: b.nextID}
}

func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	regs := b.subs[sub.topic]
	for i, reg := range regs {
		if reg.id == sub.id {
			b.subs[sub.topic] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.Lock()
	regs := append([]registration(nil), b.subs[topic]...)
	b.mu.Unlock()

	// Handlers run outside the lock so they may subscribe or unsubscribe;
	// such changes take effect from the next Publish on.
	for _, reg := range regs {
		reg.handler(payload)
	}
}
