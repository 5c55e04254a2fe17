package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
)

const defaultRefreshTimeout = 15 * time.Second

// TranslationService maintains the derived translation fields for creator
// display names. Refreshes are advisory metadata: they run off the
// authentication critical path and their failures never reach the client.
type TranslationService struct {
	creators   port.CreatorRepository
	translator port.NameTranslator
	events     port.EventPublisher
	reporter   port.ErrorReporter
	logger     *zap.Logger
	timeout    time.Duration
	wg         sync.WaitGroup
}

// NewTranslationService constructs the translation refresh service.
func NewTranslationService(
	creators port.CreatorRepository,
	translator port.NameTranslator,
	events port.EventPublisher,
	reporter port.ErrorReporter,
	logger *zap.Logger,
) *TranslationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranslationService{
		creators:   creators,
		translator: translator,
		events:     events,
		reporter:   reporter,
		logger:     logger,
		timeout:    defaultRefreshTimeout,
	}
}

// Refresh resolves the translation state of the creator's current display
// name. It reports whether a translation was produced and returns the
// refreshed creator.
func (s *TranslationService) Refresh(ctx context.Context, creator domain.Creator) (bool, domain.Creator, error) {
	if creator.DisplayName == nil || !s.translator.IsEligible(*creator.DisplayName) {
		if err := s.creators.UpdateTranslation(ctx, creator.ID, false, nil); err != nil {
			return false, domain.Creator{}, fmt.Errorf("clear translation: %w", err)
		}
		creator.NeedsTranslation = false
		creator.Locale = nil
		creator.LatinizedName = nil
		creator.TranslatedName = nil
		return false, creator, nil
	}

	translation, err := s.translator.Translate(ctx, creator.ID, *creator.DisplayName)
	if err != nil {
		return false, domain.Creator{}, fmt.Errorf("translate name: %w", err)
	}

	if err := s.creators.UpdateTranslation(ctx, creator.ID, false, &translation); err != nil {
		return false, domain.Creator{}, fmt.Errorf("persist translation: %w", err)
	}

	creator.NeedsTranslation = false
	creator.Locale = &translation.Locale
	creator.LatinizedName = &translation.LatinizedName
	creator.TranslatedName = &translation.TranslatedName

	s.publishTranslated(ctx, creator, translation)

	return true, creator, nil
}

// ScheduleRefresh runs Refresh on its own supervised goroutine. Failures are
// logged and reported, never retried, and never surfaced to the caller.
func (s *TranslationService) ScheduleRefresh(creator domain.Creator) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("translation refresh panicked",
					zap.String("creator_id", creator.ID),
					zap.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if _, _, err := s.Refresh(ctx, creator); err != nil {
			s.logger.Warn("translation refresh failed",
				zap.String("creator_id", creator.ID),
				zap.Error(err),
			)
			if s.reporter != nil {
				s.reporter.Report(ctx, err, map[string]string{
					"task":       "translation_refresh",
					"creator_id": creator.ID,
				})
			}
		}
	}()
}

// Wait blocks until every scheduled refresh has finished. Used on shutdown.
func (s *TranslationService) Wait() {
	s.wg.Wait()
}

func (s *TranslationService) publishTranslated(ctx context.Context, creator domain.Creator, translation domain.NameTranslation) {
	if s.events == nil {
		return
	}
	event := domain.NameTranslatedEvent{
		CreatorID:      creator.ID,
		Locale:         translation.Locale,
		LatinizedName:  translation.LatinizedName,
		TranslatedName: translation.TranslatedName,
		TranslatedAt:   time.Now().UTC(),
	}
	if err := s.events.PublishNameTranslated(ctx, event); err != nil {
		s.logger.Warn("publish name translated event", zap.Error(err))
	}
}

var _ port.TranslationScheduler = (*TranslationService)(nil)
