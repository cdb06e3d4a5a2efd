package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/infra/logger"
)

// StubPublisher logs events instead of sending them to Kafka. Used when no
// brokers are configured.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a logging event publisher.
func NewStubPublisher(log *zap.Logger) *StubPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &StubPublisher{logger: log}
}

func (p *StubPublisher) logEvent(eventType, username string, at time.Time, fields ...zap.Field) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published", append([]zap.Field{
		zap.String("event_type", eventType),
		zap.String("username", username),
		zap.Time("timestamp", at.UTC()),
	}, fields...)...)
}

// PublishAccountRegistered logs account.registered events.
func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	p.logEvent(EventAccountRegistered, event.Username, event.RegisteredAt,
		zap.String("email", logger.MaskEmail(event.Email)),
		zap.String("phone", logger.MaskPhone(event.Phone)),
		zap.String("status", event.Status),
	)
	return nil
}

// PublishSessionOpened logs account.session.opened events.
func (p *StubPublisher) PublishSessionOpened(_ context.Context, event domain.SessionOpenedEvent) error {
	p.logEvent(EventSessionOpened, event.Username, event.OpenedAt)
	return nil
}

// PublishSessionClosed logs account.session.closed events.
func (p *StubPublisher) PublishSessionClosed(_ context.Context, event domain.SessionClosedEvent) error {
	p.logEvent(EventSessionClosed, event.Username, event.ClosedAt)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
