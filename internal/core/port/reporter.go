package port

import "context"

// ErrorReporter forwards background-task failures to an error-tracking sink.
// Reporting is best-effort and must never fail the surrounding operation.
type ErrorReporter interface {
	Report(ctx context.Context, err error, fields map[string]string)
}
