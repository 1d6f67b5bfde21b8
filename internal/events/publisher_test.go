package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

func TestWatermillPublisher_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := pubsub.Subscribe(ctx, TopicEnrollmentCompleted)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	publisher := NewPublisher(pubsub, logger)
	defer publisher.Close()

	sent := EnrollmentCompletedEvent{
		Role:       "student",
		Department: "CSE",
		Added:      12,
		Failed:     3,
		OccurredAt: time.Now(),
	}
	if err := publisher.Publish(TopicEnrollmentCompleted, sent); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case msg := <-messages:
		var got EnrollmentCompletedEvent
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if got.Department != "CSE" || got.Added != 12 || got.Failed != 3 {
			t.Errorf("unexpected payload %+v", got)
		}
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for the event")
	}
}

func TestMockEventPublisher_Records(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := NewMockEventPublisher(logger)

	if err := mock.Publish(TopicNoticePublished, NoticePublishedEvent{NoticeNumber: "N-1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	events := mock.GetPublishedEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Topic != TopicNoticePublished {
		t.Errorf("unexpected topic %q", events[0].Topic)
	}
	payload, ok := events[0].Payload.(NoticePublishedEvent)
	if !ok || payload.NoticeNumber != "N-1" {
		t.Errorf("unexpected payload %+v", events[0].Payload)
	}
}
