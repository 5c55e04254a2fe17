package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without brokers.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, creatorID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("creator_id", creatorID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishCreatorRegistered logs creators.registered events.
func (p *StubPublisher) PublishCreatorRegistered(_ context.Context, event domain.CreatorRegisteredEvent) error {
	payload := map[string]any{
		"creator_id":    event.CreatorID,
		"external_id":   event.ExternalID,
		"provider":      event.Provider,
		"display_name":  event.DisplayName,
		"registered_at": event.RegisteredAt,
		"metadata":      event.Metadata,
	}
	p.logEvent("creators.registered", event.CreatorID, event.RegisteredAt, payload)
	return nil
}

// PublishCreatorUpdated logs creators.updated events.
func (p *StubPublisher) PublishCreatorUpdated(_ context.Context, event domain.CreatorUpdatedEvent) error {
	payload := map[string]any{
		"creator_id":        event.CreatorID,
		"external_id":       event.ExternalID,
		"provider":          event.Provider,
		"display_name":      event.DisplayName,
		"identity_migrated": event.IdentityMigrated,
		"updated_at":        event.UpdatedAt,
		"metadata":          event.Metadata,
	}
	p.logEvent("creators.updated", event.CreatorID, event.UpdatedAt, payload)
	return nil
}

// PublishNameTranslated logs creators.name.translated events.
func (p *StubPublisher) PublishNameTranslated(_ context.Context, event domain.NameTranslatedEvent) error {
	payload := map[string]any{
		"creator_id":      event.CreatorID,
		"locale":          event.Locale,
		"latinized_name":  event.LatinizedName,
		"translated_name": event.TranslatedName,
		"translated_at":   event.TranslatedAt,
		"metadata":        event.Metadata,
	}
	p.logEvent("creators.name.translated", event.CreatorID, event.TranslatedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
