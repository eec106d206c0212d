package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventorysync/internal/logger"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "inventory-sync-events"

const (
	TypeSyncRequested    = "sync.requested"
	TypeReindexRequested = "reindex.requested"
)

var ErrUnknownEvent = errors.New("unknown event type")

type Event struct {
	Type        string    `json:"type"`
	IndexerIDs  []string  `json:"indexer_ids,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Decode parses a message value into an Event.
func Decode(value []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		return Event{}, fmt.Errorf("failed to parse event: %w", err)
	}
	if event.Type == "" {
		return Event{}, fmt.Errorf("failed to parse event: missing type")
	}
	return event, nil
}

// Brokers splits a comma separated broker list.
func Brokers(list string) []string {
	var out []string
	for _, broker := range strings.Split(list, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			out = append(out, broker)
		}
	}
	return out
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
	logger *logger.Logger
}

func NewProducer(brokers, topic string, logger *logger.Logger) *Producer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(Brokers(brokers)...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

// Publish writes event keyed by its type. A zero timestamp is set to now.
func (p *Producer) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type),
		Value: value,
		Time:  event.Timestamp,
	}); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.Debug("Published event: %s", event.Type)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
