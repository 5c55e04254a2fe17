package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/identity"
	"github.com/arklim/hall-of-fame-creators/internal/infra/logger"
	"github.com/arklim/hall-of-fame-creators/internal/repository"
)

var (
	// ErrInvalidExternalID indicates the claimed external id is not a canonical v4 identifier.
	ErrInvalidExternalID = errors.New("invalid external id")
	// ErrInvalidLinkedUUID indicates the self-declared minecraft uuid could not be normalized.
	ErrInvalidLinkedUUID = errors.New("invalid linked minecraft uuid")
	// ErrInvalidDisplayName indicates the display name failed validation.
	ErrInvalidDisplayName = errors.New("invalid display name")
	// ErrMissingCredential indicates the provider-specific credential is absent.
	ErrMissingCredential = errors.New("missing provider credential")
	// ErrUnsupportedProvider indicates an unknown identity provider tag.
	ErrUnsupportedProvider = errors.New("unsupported identity provider")
	// ErrAuthenticationFailed indicates the profile verifier could not prove account ownership.
	ErrAuthenticationFailed = errors.New("minecraft authentication failed")
	// ErrNameAlreadyClaimed indicates a different creator already owns the claimed display name.
	ErrNameAlreadyClaimed = errors.New("display name already claimed")
	// ErrIdentityMismatch indicates the claim matched a creator whose stored
	// external id differs and no identity reset was authorized.
	ErrIdentityMismatch = errors.New("external id does not match the stored identity")
	// ErrIdentityConflict indicates the identity index returned a combination of
	// matches that violates the uniqueness invariants. Data integrity bug, not
	// bad input.
	ErrIdentityConflict = errors.New("conflicting identity matches")
)

// AuthClaim carries the untrusted identity assertion sent by the mod client.
type AuthClaim struct {
	Provider    domain.Provider
	ExternalID  string
	DisplayName string
	DeviceID    string
	IP          string
	// BearerToken authenticates minecraft_official claims.
	BearerToken string
	// MinecraftUUID is the self-declared identity of minecraft_offline claims.
	MinecraftUUID string
}

// Outcome tags how a claim was reconciled against the store.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
)

// IdentityService resolves authentication claims to creators, creating,
// migrating, or updating accounts as required.
type IdentityService struct {
	creators     port.CreatorRepository
	verifier     port.ProfileVerifier
	translations port.TranslationScheduler
	events       port.EventPublisher
	reporter     port.ErrorReporter
	logger       *zap.Logger
}

// NewIdentityService constructs the identity resolution service.
func NewIdentityService(
	creators port.CreatorRepository,
	verifier port.ProfileVerifier,
	translations port.TranslationScheduler,
	events port.EventPublisher,
	reporter port.ErrorReporter,
	logger *zap.Logger,
) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{
		creators:     creators,
		verifier:     verifier,
		translations: translations,
		events:       events,
		reporter:     reporter,
		logger:       logger,
	}
}

// resolution is the immutable context shared by the create and update
// branches once the claim has been verified and normalized.
type resolution struct {
	provider      domain.Provider
	externalID    string
	displayName   string // raw claim, empty when no name was supplied
	slug          string
	minecraftUUID string
	deviceID      string
	ip            string
}

// AuthenticateForMod resolves the claim to exactly one creator. When the
// insert loses a concurrent registration of the same external id the whole
// resolution is retried once, so the loser finds the winner's row instead of
// surfacing a conflict. A second duplicate-key failure propagates.
func (s *IdentityService) AuthenticateForMod(ctx context.Context, claim AuthClaim) (domain.Creator, Outcome, error) {
	creator, outcome, err := s.resolveOnce(ctx, claim)
	if err != nil && errors.Is(err, repository.ErrDuplicateKey) {
		s.logger.Info("creator insert lost a concurrent registration, re-resolving",
			zap.String("provider", string(claim.Provider)),
			zap.String("external_id", logger.MaskString(claim.ExternalID)),
		)
		creator, outcome, err = s.resolveOnce(ctx, claim)
	}
	return creator, outcome, err
}

func (s *IdentityService) resolveOnce(ctx context.Context, claim AuthClaim) (domain.Creator, Outcome, error) {
	res, err := s.resolveClaim(ctx, claim)
	if err != nil {
		return domain.Creator{}, "", err
	}

	query := port.IdentityQuery{ExternalID: res.externalID}
	if res.displayName != "" {
		query.DisplayName = &res.displayName
		query.DisplayNameSlug = &res.slug
	}
	if res.minecraftUUID != "" {
		query.MinecraftUUID = &res.minecraftUUID
	}

	matches, err := s.creators.FindByAnyIdentity(ctx, query)
	if err != nil {
		return domain.Creator{}, "", fmt.Errorf("query creators: %w", err)
	}

	switch len(matches) {
	case 0:
		creator, err := s.create(ctx, res)
		if err != nil {
			return domain.Creator{}, "", err
		}
		return creator, OutcomeCreated, nil
	case 1:
		return s.update(ctx, res, matches[0])
	default:
		return domain.Creator{}, "", s.rejectConflict(ctx, res, matches)
	}
}

// resolveClaim performs the provider-specific half of the resolution and
// normalizes the effective identity.
func (s *IdentityService) resolveClaim(ctx context.Context, claim AuthClaim) (resolution, error) {
	res := resolution{
		provider:    claim.Provider,
		externalID:  strings.TrimSpace(claim.ExternalID),
		displayName: strings.TrimSpace(claim.DisplayName),
		deviceID:    strings.TrimSpace(claim.DeviceID),
		ip:          strings.TrimSpace(claim.IP),
	}

	switch claim.Provider {
	case domain.ProviderMinecraftOfficial:
		if strings.TrimSpace(claim.BearerToken) == "" {
			return resolution{}, fmt.Errorf("%w: bearer token required for %s", ErrMissingCredential, claim.Provider)
		}
		profile, err := s.verifier.Verify(ctx, claim.BearerToken)
		if err != nil {
			if errors.Is(err, port.ErrVerifierRequestFailed) ||
				errors.Is(err, port.ErrVerifierInvalidCredential) ||
				errors.Is(err, port.ErrVerifierMalformedResponse) {
				return resolution{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
			}
			return resolution{}, err
		}
		res.externalID = profile.UUID
		res.minecraftUUID = profile.UUID
		if res.displayName == "" {
			res.displayName = strings.TrimSpace(profile.Username)
		}
	case domain.ProviderMinecraftOffline:
		if strings.TrimSpace(claim.MinecraftUUID) == "" {
			return resolution{}, fmt.Errorf("%w: minecraft uuid required for %s", ErrMissingCredential, claim.Provider)
		}
		normalized, err := identity.NormalizeMinecraftUUID(claim.MinecraftUUID)
		if err != nil {
			return resolution{}, fmt.Errorf("%w: %v", ErrInvalidLinkedUUID, err)
		}
		res.minecraftUUID = normalized
	case domain.ProviderParadox, domain.ProviderLocal:
	default:
		return resolution{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, claim.Provider)
	}

	externalID, err := identity.ValidateExternalID(res.externalID)
	if err != nil {
		return resolution{}, fmt.Errorf("%w: %v", ErrInvalidExternalID, err)
	}
	res.externalID = externalID
	res.slug = identity.Slugify(res.displayName)

	return res, nil
}

func (s *IdentityService) create(ctx context.Context, res resolution) (domain.Creator, error) {
	name, err := identity.NormalizeDisplayName(res.displayName)
	if err != nil {
		return domain.Creator{}, fmt.Errorf("%w: %v", ErrInvalidDisplayName, err)
	}

	now := time.Now().UTC()
	creator := domain.Creator{
		ID:               uuid.NewString(),
		ExternalID:       res.externalID,
		Provider:         res.provider,
		NeedsTranslation: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if name != "" {
		slug := identity.Slugify(name)
		creator.DisplayName = &name
		creator.DisplayNameSlug = &slug
	}
	if res.minecraftUUID != "" {
		mcUUID := res.minecraftUUID
		creator.MinecraftUUID = &mcUUID
	}
	if res.deviceID != "" {
		creator.DeviceHistory = []string{res.deviceID}
	}
	if res.ip != "" {
		creator.IPHistory = []string{res.ip}
	}

	if err := s.creators.Create(ctx, creator); err != nil {
		// ErrDuplicateKey must stay inspectable for the retry in AuthenticateForMod.
		return domain.Creator{}, fmt.Errorf("insert creator: %w", err)
	}

	s.publishRegistered(ctx, creator)
	if s.translations != nil {
		s.translations.ScheduleRefresh(creator)
	}

	return creator, nil
}

func (s *IdentityService) update(ctx context.Context, res resolution, stored domain.Creator) (domain.Creator, Outcome, error) {
	// Re-authentication through an unchanged platform identity is always
	// permitted even when the external id migrated.
	sameMinecraftUUID := stored.MinecraftUUID != nil &&
		res.minecraftUUID != "" &&
		*stored.MinecraftUUID == res.minecraftUUID

	if stored.ExternalID != res.externalID && !stored.AllowIdentityReset && !sameMinecraftUUID {
		return domain.Creator{}, "", fmt.Errorf("%w: creator %s", ErrIdentityMismatch, stored.ID)
	}

	// An absent display name is "no name claim": the stored name is kept.
	nameChanged := res.displayName != "" &&
		(stored.DisplayName == nil || *stored.DisplayName != res.displayName ||
			stored.DisplayNameSlug == nil || *stored.DisplayNameSlug != res.slug)
	deviceChanged := res.deviceID != "" &&
		(len(stored.DeviceHistory) == 0 || stored.DeviceHistory[0] != res.deviceID)
	ipChanged := res.ip != "" &&
		(len(stored.IPHistory) == 0 || stored.IPHistory[0] != res.ip)
	externalChanged := stored.ExternalID != res.externalID
	uuidChanged := res.minecraftUUID != "" &&
		(stored.MinecraftUUID == nil || *stored.MinecraftUUID != res.minecraftUUID)
	providerChanged := stored.Provider != res.provider

	if !nameChanged && !deviceChanged && !ipChanged && !externalChanged && !uuidChanged && !providerChanged {
		return stored, OutcomeUnchanged, nil
	}

	updated := stored
	if nameChanged {
		// Stable names are never re-validated so legacy names predating
		// stricter validation keep working.
		normalized, err := identity.NormalizeDisplayName(res.displayName)
		if err != nil {
			return domain.Creator{}, "", fmt.Errorf("%w: %v", ErrInvalidDisplayName, err)
		}
		if normalized == "" {
			updated.DisplayName = nil
			updated.DisplayNameSlug = nil
		} else {
			slug := identity.Slugify(normalized)
			updated.DisplayName = &normalized
			updated.DisplayNameSlug = &slug
		}
		updated.NeedsTranslation = true
	}
	if res.deviceID != "" {
		updated.DeviceHistory = identity.MergeRecent(stored.DeviceHistory, res.deviceID)
	}
	if res.ip != "" {
		updated.IPHistory = identity.MergeRecent(stored.IPHistory, res.ip)
	}
	if res.minecraftUUID != "" {
		mcUUID := res.minecraftUUID
		updated.MinecraftUUID = &mcUUID
	}
	updated.ExternalID = res.externalID
	updated.Provider = res.provider
	updated.AllowIdentityReset = false
	updated.UpdatedAt = time.Now().UTC()

	if err := s.creators.Update(ctx, updated); err != nil {
		return domain.Creator{}, "", fmt.Errorf("update creator: %w", err)
	}

	s.publishUpdated(ctx, updated, externalChanged)
	if nameChanged && s.translations != nil {
		s.translations.ScheduleRefresh(updated)
	}

	return updated, OutcomeUpdated, nil
}

// rejectConflict classifies a multi-match result. Two matches where one owns
// the claimed external id and another owns the claimed name is an ordinary
// name collision; everything else means the uniqueness invariants are broken.
func (s *IdentityService) rejectConflict(ctx context.Context, res resolution, matches []domain.Creator) error {
	if len(matches) == 2 && res.displayName != "" {
		var ownsExternalID, ownsName bool
		for i := range matches {
			if matches[i].ExternalID == res.externalID {
				ownsExternalID = true
				continue
			}
			if matchesName(&matches[i], res) {
				ownsName = true
			}
		}
		if ownsExternalID && ownsName {
			return fmt.Errorf("%w: %q", ErrNameAlreadyClaimed, res.displayName)
		}
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	err := fmt.Errorf("%w: claim matched %d creators", ErrIdentityConflict, len(matches))
	s.logger.Error("identity index returned conflicting matches",
		zap.Strings("creator_ids", ids),
		zap.String("provider", string(res.provider)),
		zap.String("external_id", logger.MaskString(res.externalID)),
	)
	if s.reporter != nil {
		s.reporter.Report(ctx, err, map[string]string{
			"provider":    string(res.provider),
			"creator_ids": strings.Join(ids, ","),
		})
	}
	return err
}

func matchesName(creator *domain.Creator, res resolution) bool {
	if creator.DisplayName != nil && *creator.DisplayName == res.displayName {
		return true
	}
	return creator.DisplayNameSlug != nil && res.slug != "" && *creator.DisplayNameSlug == res.slug
}

func (s *IdentityService) publishRegistered(ctx context.Context, creator domain.Creator) {
	if s.events == nil {
		return
	}
	event := domain.CreatorRegisteredEvent{
		CreatorID:    creator.ID,
		ExternalID:   creator.ExternalID,
		Provider:     string(creator.Provider),
		DisplayName:  creator.DisplayName,
		RegisteredAt: creator.CreatedAt,
	}
	if err := s.events.PublishCreatorRegistered(ctx, event); err != nil {
		s.logger.Warn("publish creator registered event", zap.Error(err))
	}
}

func (s *IdentityService) publishUpdated(ctx context.Context, creator domain.Creator, migrated bool) {
	if s.events == nil {
		return
	}
	event := domain.CreatorUpdatedEvent{
		CreatorID:        creator.ID,
		ExternalID:       creator.ExternalID,
		Provider:         string(creator.Provider),
		DisplayName:      creator.DisplayName,
		IdentityMigrated: migrated,
		UpdatedAt:        creator.UpdatedAt,
	}
	if err := s.events.PublishCreatorUpdated(ctx, event); err != nil {
		s.logger.Warn("publish creator updated event", zap.Error(err))
	}
}
