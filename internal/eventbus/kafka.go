package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"mealdrop/internal/logger"
)

// Envelope is the wire form of a forwarded bus event.
type Envelope struct {
	Type      Topic     `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

var allTopics = []Topic{
	TopicMerchantRegistered,
	TopicMerchantUpdated,
	TopicUserRegistered,
	TopicMenuItemAdded,
	TopicMenuItemUpdated,
	TopicMenuItemDeleted,
	TopicOrderAdded,
	TopicOrderStatusUpdated,
}

// KafkaForwarder taps every bus topic and copies events to a kafka topic for
// out-of-process consumers (dashboards, analytics). Forwarding is
// fire-and-forget: a broker failure is logged and never reaches the code that
// published the event.
type KafkaForwarder struct {
	writer *kafka.Writer
	subs   []Subscription
	bus    *Bus
}

func NewKafkaForwarder(bus *Bus, writer *kafka.Writer) *KafkaForwarder {
	f := &KafkaForwarder{writer: writer, bus: bus}
	for _, topic := range allTopics {
		topic := topic
		f.subs = append(f.subs, bus.Subscribe(topic, func(payload any) {
			f.forward(topic, payload)
		}))
	}
	return f
}

func (f *KafkaForwarder) forward(topic Topic, payload any) {
	value, err := json.Marshal(Envelope{Type: topic, Payload: payload, Timestamp: time.Now()})
	if err != nil {
		logger.L().Warn("event envelope marshal failed", zap.String("topic", string(topic)), zap.Error(err))
		return
	}

	// The bus is synchronous; the broker round-trip must not stall it.
	go func() {
		if err := f.writer.WriteMessages(context.Background(), kafka.Message{
			Key:   []byte(topic),
			Value: value,
		}); err != nil {
			logger.L().Warn("event forward failed", zap.String("topic", string(topic)), zap.Error(err))
		}
	}()
}

// Close detaches the forwarder from the bus and closes the writer.
func (f *KafkaForwarder) Close() error {
	for _, sub := range f.subs {
		f.bus.Unsubscribe(sub)
	}
	return f.writer.Close()
}
