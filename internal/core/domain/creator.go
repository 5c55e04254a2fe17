package domain

import "time"

// Provider enumerates the identity schemes a creator can authenticate with.
type Provider string

const (
	// ProviderParadox is a launcher-issued account identifier.
	ProviderParadox Provider = "paradox"
	// ProviderLocal is an identifier generated on the player's machine.
	ProviderLocal Provider = "local"
	// ProviderMinecraftOfficial is a Minecraft account proven through the profile API.
	ProviderMinecraftOfficial Provider = "minecraft_official"
	// ProviderMinecraftOffline is a self-declared Minecraft identity.
	ProviderMinecraftOffline Provider = "minecraft_offline"
)

// KnownProvider reports whether the tag is a supported identity scheme.
func KnownProvider(p Provider) bool {
	switch p {
	case ProviderParadox, ProviderLocal, ProviderMinecraftOfficial, ProviderMinecraftOffline:
		return true
	}
	return false
}

// Creator mirrors the persisted representation in the creators table.
type Creator struct {
	ID                 string
	ExternalID         string
	Provider           Provider
	DisplayName        *string
	DisplayNameSlug    *string
	MinecraftUUID      *string
	AllowIdentityReset bool
	DeviceHistory      []string
	IPHistory          []string
	NeedsTranslation   bool
	Locale             *string
	LatinizedName      *string
	TranslatedName     *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NameTranslation holds the derived fields produced by the translation service.
type NameTranslation struct {
	Locale         string
	LatinizedName  string
	TranslatedName string
}
