package port

import (
	"context"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishCreatorRegistered(ctx context.Context, event domain.CreatorRegisteredEvent) error
	PublishCreatorUpdated(ctx context.Context, event domain.CreatorUpdatedEvent) error
	PublishNameTranslated(ctx context.Context, event domain.NameTranslatedEvent) error
}
