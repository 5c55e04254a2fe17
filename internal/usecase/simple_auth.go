package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/identity"
	"github.com/arklim/hall-of-fame-creators/internal/repository"
)

// ErrCreatorNotFound indicates no creator owns the claimed external id.
var ErrCreatorNotFound = errors.New("creator not found")

// SimpleAuthService is the lightweight key-style authentication path: an
// exact external-id lookup plus IP bookkeeping, never account creation.
type SimpleAuthService struct {
	creators port.CreatorRepository
	logger   *zap.Logger
}

// NewSimpleAuthService constructs the simple authenticator.
func NewSimpleAuthService(creators port.CreatorRepository, logger *zap.Logger) *SimpleAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimpleAuthService{creators: creators, logger: logger}
}

// Authenticate looks up the creator owning externalID and folds ip into its
// bounded history. No write happens when ip already heads the history.
func (s *SimpleAuthService) Authenticate(ctx context.Context, externalID, ip string) (domain.Creator, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return domain.Creator{}, ErrCreatorNotFound
	}

	creator, err := s.creators.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Creator{}, ErrCreatorNotFound
		}
		return domain.Creator{}, fmt.Errorf("lookup creator: %w", err)
	}

	ip = strings.TrimSpace(ip)
	if ip == "" || (len(creator.IPHistory) > 0 && creator.IPHistory[0] == ip) {
		return *creator, nil
	}

	creator.IPHistory = identity.MergeRecent(creator.IPHistory, ip)
	if err := s.creators.UpdateNetworkHistory(ctx, creator.ID, creator.DeviceHistory, creator.IPHistory); err != nil {
		return domain.Creator{}, fmt.Errorf("persist ip history: %w", err)
	}

	return *creator, nil
}
