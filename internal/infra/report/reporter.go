// Package report is the logging-backed error sink for background task
// failures.
package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/arklim/hall-of-fame-creators/internal/core/port"
)

// Reporter records background failures at error severity so they surface in
// log-based alerting. It never fails the caller.
type Reporter struct {
	logger *zap.Logger
}

// New constructs a Reporter.
func New(logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{logger: logger}
}

// Report logs the failure with its tags.
func (r *Reporter) Report(_ context.Context, err error, fields map[string]string) {
	zapFields := make([]zap.Field, 0, len(fields)+1)
	zapFields = append(zapFields, zap.Error(err))
	for key, value := range fields {
		zapFields = append(zapFields, zap.String(key, value))
	}
	r.logger.Error("background task failure", zapFields...)
}

var _ port.ErrorReporter = (*Reporter)(nil)
