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

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	CreatorID string           `json:"creator_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, creatorID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		CreatorID: creatorID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Key:   sarama.StringEncoder(creatorID),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishCreatorRegistered publishes creators.registered events.
func (p *EventPublisher) PublishCreatorRegistered(ctx context.Context, event domain.CreatorRegisteredEvent) error {
	payload := struct {
		CreatorID    string         `json:"creator_id"`
		ExternalID   string         `json:"external_id"`
		Provider     string         `json:"provider"`
		DisplayName  *string        `json:"display_name,omitempty"`
		RegisteredAt time.Time      `json:"registered_at"`
		Metadata     map[string]any `json:"metadata,omitempty"`
	}{
		CreatorID:    event.CreatorID,
		ExternalID:   event.ExternalID,
		Provider:     event.Provider,
		DisplayName:  event.DisplayName,
		RegisteredAt: event.RegisteredAt.UTC(),
		Metadata:     event.Metadata,
	}

	return p.publish(ctx, event.EventID, "creators.registered", event.CreatorID, event.RegisteredAt, payload)
}

// PublishCreatorUpdated publishes creators.updated events.
func (p *EventPublisher) PublishCreatorUpdated(ctx context.Context, event domain.CreatorUpdatedEvent) error {
	payload := struct {
		CreatorID        string         `json:"creator_id"`
		ExternalID       string         `json:"external_id"`
		Provider         string         `json:"provider"`
		DisplayName      *string        `json:"display_name,omitempty"`
		IdentityMigrated bool           `json:"identity_migrated"`
		UpdatedAt        time.Time      `json:"updated_at"`
		Metadata         map[string]any `json:"metadata,omitempty"`
	}{
		CreatorID:        event.CreatorID,
		ExternalID:       event.ExternalID,
		Provider:         event.Provider,
		DisplayName:      event.DisplayName,
		IdentityMigrated: event.IdentityMigrated,
		UpdatedAt:        event.UpdatedAt.UTC(),
		Metadata:         event.Metadata,
	}

	return p.publish(ctx, event.EventID, "creators.updated", event.CreatorID, event.UpdatedAt, payload)
}

// PublishNameTranslated publishes creators.name.translated events.
func (p *EventPublisher) PublishNameTranslated(ctx context.Context, event domain.NameTranslatedEvent) error {
	payload := struct {
		CreatorID      string         `json:"creator_id"`
		Locale         string         `json:"locale"`
		LatinizedName  string         `json:"latinized_name"`
		TranslatedName string         `json:"translated_name"`
		TranslatedAt   time.Time      `json:"translated_at"`
		Metadata       map[string]any `json:"metadata,omitempty"`
	}{
		CreatorID:      event.CreatorID,
		Locale:         event.Locale,
		LatinizedName:  event.LatinizedName,
		TranslatedName: event.TranslatedName,
		TranslatedAt:   event.TranslatedAt.UTC(),
		Metadata:       event.Metadata,
	}

	return p.publish(ctx, event.EventID, "creators.name.translated", event.CreatorID, event.TranslatedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
