package service_test

import (
	"mealdrop/internal/eventbus"
	"mealdrop/internal/service"
	"mealdrop/internal/storage"
)

func newTestService() (*service.Service, *eventbus.Bus, *storage.Store) {
	store := storage.NewStore(storage.NewMemoryMedium())
	bus := eventbus.NewBus()
	return service.New(store, bus), bus, store
}

// recorder collects every payload published on one topic.
type recorder struct {
	payloads []any
}

func record(bus *eventbus.Bus, topic eventbus.Topic) *recorder {
	r := &recorder{}
	bus.Subscribe(topic, func(payload any) {
		r.payloads = append(r.payloads, payload)
	})
	return r
}
