package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/repository"
)

// CreatorAdminService performs administrator-authorized account maintenance.
type CreatorAdminService struct {
	creators port.CreatorRepository
	logger   *zap.Logger
}

// NewCreatorAdminService constructs the admin service.
func NewCreatorAdminService(creators port.CreatorRepository, logger *zap.Logger) *CreatorAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreatorAdminService{creators: creators, logger: logger}
}

// AuthorizeIdentityReset flags the creator so its next successful
// authentication may change the stored external id. One-shot: the resolver
// clears the flag when it is consumed.
func (s *CreatorAdminService) AuthorizeIdentityReset(ctx context.Context, creatorID string) (domain.Creator, error) {
	creator, err := s.creators.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Creator{}, ErrCreatorNotFound
		}
		return domain.Creator{}, fmt.Errorf("lookup creator: %w", err)
	}

	if err := s.creators.SetIdentityReset(ctx, creator.ID, true); err != nil {
		return domain.Creator{}, fmt.Errorf("authorize identity reset: %w", err)
	}

	s.logger.Info("identity reset authorized", zap.String("creator_id", creator.ID))

	creator.AllowIdentityReset = true
	return *creator, nil
}
