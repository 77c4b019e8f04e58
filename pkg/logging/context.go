package logging

import "context"

type contextKey int

const runIDKey contextKey = iota

// WithRunID returns a context carrying the identifier of an evolution run.
// Every log entry written with this context includes the run ID, so
// interleaved output from concurrent runs stays attributable.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID extracts the run identifier from the context, if any.
func GetRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}
