package port

import (
	"context"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
)

// NameTranslator is the collaborator enriching display names with locale,
// latinized, and translated forms.
type NameTranslator interface {
	// IsEligible reports whether the name needs translation at all.
	IsEligible(name string) bool
	Translate(ctx context.Context, creatorID, name string) (domain.NameTranslation, error)
}

// TranslationScheduler hands a creator off for a background translation
// refresh without blocking the caller.
type TranslationScheduler interface {
	ScheduleRefresh(creator domain.Creator)
}
