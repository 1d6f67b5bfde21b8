package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Topics published by the service.
const (
	TopicEnrollmentCompleted = "enrollment.completed"
	TopicNoticePublished     = "notice.published"
)

// EnrollmentCompletedEvent is emitted after a bulk enrollment finishes.
type EnrollmentCompletedEvent struct {
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Added      int       `json:"added"`
	Failed     int       `json:"failed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NoticePublishedEvent is emitted when a notice goes live.
type NoticePublishedEvent struct {
	NoticeNumber string    `json:"notice_number"`
	AuthorType   string    `json:"author_type"`
	AuthorName   string    `json:"author_name"`
	HasFile      bool      `json:"has_file"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher abstracts the message bus from the services.
type EventPublisher interface {
	Publish(topic string, payload interface{}) error
	Close() error
}

// watermillPublisher publishes JSON payloads over a watermill publisher.
type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewGoChannelPublisher builds an in-process pub/sub backed publisher.
func NewGoChannelPublisher(logger *slog.Logger) EventPublisher {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &watermillPublisher{publisher: pubsub, logger: logger}
}

// NewPublisher wraps an arbitrary watermill publisher (e.g. a broker-backed
// one wired in at bootstrap).
func NewPublisher(publisher message.Publisher, logger *slog.Logger) EventPublisher {
	return &watermillPublisher{publisher: publisher, logger: logger}
}

func (p *watermillPublisher) Publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", topic, err)
	}

	p.logger.Debug("event published", "topic", topic, "message_id", msg.UUID)
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// PublishedEvent records one Publish call on the mock.
type PublishedEvent struct {
	Topic   string
	Payload interface{}
}

// MockEventPublisher captures events for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(topic string, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

// GetPublishedEvents returns a copy of everything published so far.
func (m *MockEventPublisher) GetPublishedEvents() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}
