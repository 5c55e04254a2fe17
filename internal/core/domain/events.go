package domain

import "time"

// CreatorRegisteredEvent represents the payload for creators.registered messages.
type CreatorRegisteredEvent struct {
	EventID      string
	CreatorID    string
	ExternalID   string
	Provider     string
	DisplayName  *string
	RegisteredAt time.Time
	Metadata     map[string]any
}

// CreatorUpdatedEvent represents the payload for creators.updated messages.
type CreatorUpdatedEvent struct {
	EventID          string
	CreatorID        string
	ExternalID       string
	Provider         string
	DisplayName      *string
	IdentityMigrated bool
	UpdatedAt        time.Time
	Metadata         map[string]any
}

// NameTranslatedEvent represents the payload for creators.name.translated messages.
type NameTranslatedEvent struct {
	EventID        string
	CreatorID      string
	Locale         string
	LatinizedName  string
	TranslatedName string
	TranslatedAt   time.Time
	Metadata       map[string]any
}
