package port

import (
	"context"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
)

// IdentityQuery is the disjunctive match filter used during claim resolution:
// a creator matches when any present term matches.
type IdentityQuery struct {
	ExternalID      string
	DisplayName     *string
	DisplayNameSlug *string
	MinecraftUUID   *string
}

// CreatorRepository exposes persistence behavior for creators. Create must
// signal a violation of the external-id uniqueness constraint as
// repository.ErrDuplicateKey so callers can retry the resolution.
type CreatorRepository interface {
	Create(ctx context.Context, creator domain.Creator) error
	GetByID(ctx context.Context, id string) (*domain.Creator, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Creator, error)
	FindByAnyIdentity(ctx context.Context, query IdentityQuery) ([]domain.Creator, error)
	Update(ctx context.Context, creator domain.Creator) error
	UpdateNetworkHistory(ctx context.Context, id string, deviceHistory, ipHistory []string) error
	UpdateTranslation(ctx context.Context, id string, needsTranslation bool, translation *domain.NameTranslation) error
	SetIdentityReset(ctx context.Context, id string, allowed bool) error
}
