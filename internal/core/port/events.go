package port

import (
	"context"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
	PublishSessionOpened(ctx context.Context, event domain.SessionOpenedEvent) error
	PublishSessionClosed(ctx context.Context, event domain.SessionClosedEvent) error
}
