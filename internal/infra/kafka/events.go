package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/config"
)

const schemaVersion = "1.0"

const (
	EventAccountRegistered = "account.registered"
	EventSessionOpened     = "account.session.opened"
	EventSessionClosed     = "account.session.closed"
)

// EventPublisher implements port.EventPublisher using Kafka. Messages are
// keyed by username so one account's events stay ordered within a partition.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Username  string            `json:"username"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, username string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	if eventID == "" {
		eventID = uuid.NewString()
	}

	metadata := map[string]string{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		metadata["trace_id"] = sc.TraceID().String()
	}

	body, err := json.Marshal(eventEnvelope{
		EventID:   eventID,
		EventType: eventType,
		Username:  username,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	})
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Key:   sarama.StringEncoder(username),
		Value: sarama.ByteEncoder(body),
	}

	select {
	case p.producer.Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishAccountRegistered publishes account.registered events.
func (p *EventPublisher) PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error {
	payload := struct {
		Username     string         `json:"username"`
		Email        string         `json:"email"`
		Phone        string         `json:"phone"`
		Status       string         `json:"status"`
		RegisteredAt time.Time      `json:"registered_at"`
		Metadata     map[string]any `json:"metadata,omitempty"`
	}{
		Username:     event.Username,
		Email:        event.Email,
		Phone:        event.Phone,
		Status:       event.Status,
		RegisteredAt: event.RegisteredAt.UTC(),
		Metadata:     event.Metadata,
	}

	return p.publish(ctx, event.EventID, EventAccountRegistered, event.Username, event.RegisteredAt, payload)
}

// PublishSessionOpened publishes account.session.opened events.
func (p *EventPublisher) PublishSessionOpened(ctx context.Context, event domain.SessionOpenedEvent) error {
	payload := struct {
		Username string         `json:"username"`
		OpenedAt time.Time      `json:"opened_at"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}{
		Username: event.Username,
		OpenedAt: event.OpenedAt.UTC(),
		Metadata: event.Metadata,
	}

	return p.publish(ctx, event.EventID, EventSessionOpened, event.Username, event.OpenedAt, payload)
}

// PublishSessionClosed publishes account.session.closed events.
func (p *EventPublisher) PublishSessionClosed(ctx context.Context, event domain.SessionClosedEvent) error {
	payload := struct {
		Username string         `json:"username"`
		ClosedAt time.Time      `json:"closed_at"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}{
		Username: event.Username,
		ClosedAt: event.ClosedAt.UTC(),
		Metadata: event.Metadata,
	}

	return p.publish(ctx, event.EventID, EventSessionClosed, event.Username, event.ClosedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
