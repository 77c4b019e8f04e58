// FlightRecorder integration for Go 1.25+. Long evolution runs are
// CPU-bound spins; the flight recorder keeps a cheap ring buffer of
// recent runtime trace data that can be dumped when a run misbehaves
// (e.g. a rejection loop hits its attempt budget).
package logging

import (
	"context"
	"os"
	"runtime/trace"
	"sync"
	"time"
)

// defaultTraceMinAge bounds how much history the ring buffer keeps when the
// caller does not say otherwise.
const defaultTraceMinAge = 10 * time.Second

// FlightRecorder wraps Go 1.25's runtime/trace.FlightRecorder.
// It maintains a ring buffer of recent trace data that can be dumped
// on-demand.
//
// Usage:
//
//	fr := NewFlightRecorder(WithMinAge(10 * time.Second))
//	fr.Start()
//	defer fr.Stop()
//
//	// When a run stalls or fails:
//	fr.Snapshot("run_failed.trace")
type FlightRecorder struct {
	recorder *trace.FlightRecorder
	mu       sync.Mutex
	running  bool
	config   trace.FlightRecorderConfig
}

// FlightRecorderOption configures a FlightRecorder.
type FlightRecorderOption func(*FlightRecorder)

// WithMinAge sets the minimum age of events to keep in the trace buffer.
// Longer durations capture more history but use more memory.
func WithMinAge(d time.Duration) FlightRecorderOption {
	return func(fr *FlightRecorder) {
		fr.config.MinAge = d
	}
}

// WithMaxBytes caps the trace buffer size, taking precedence over MinAge.
// Zero leaves the maximum implementation defined.
func WithMaxBytes(n uint64) FlightRecorderOption {
	return func(fr *FlightRecorder) {
		fr.config.MaxBytes = n
	}
}

// NewFlightRecorder creates a FlightRecorder. The recorder is inert until
// Start is called.
func NewFlightRecorder(opts ...FlightRecorderOption) *FlightRecorder {
	fr := &FlightRecorder{}
	fr.config.MinAge = defaultTraceMinAge
	for _, opt := range opts {
		opt(fr)
	}
	fr.recorder = trace.NewFlightRecorder(fr.config)
	return fr
}

// Start begins recording trace data into the ring buffer. Starting an
// already running recorder is a no-op.
func (fr *FlightRecorder) Start() error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.running {
		return nil
	}
	err := fr.recorder.Start()
	if err == nil {
		fr.running = true
	}
	return err
}

// Stop ends recording. Stopping a recorder that is not running is a no-op.
func (fr *FlightRecorder) Stop() {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.running {
		fr.recorder.Stop()
		fr.running = false
	}
}

// Enabled reports whether the recorder is currently capturing trace data.
func (fr *FlightRecorder) Enabled() bool {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.running && fr.recorder.Enabled()
}

// Snapshot writes the current trace buffer to a file. Call this when a
// run fails or stalls to capture what led up to that moment. A recorder
// that is not running writes nothing.
func (fr *FlightRecorder) Snapshot(filename string) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if !fr.running {
		return nil
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	_, writeErr := fr.recorder.WriteTo(f)
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	return writeErr
}

// SnapshotOnError takes a snapshot when err is non-nil and passes err
// through for chaining.
//
// Example:
//
//	if err := engine.Run(ctx, opts); err != nil {
//	    return fr.SnapshotOnError(err, "run_error.trace")
//	}
func (fr *FlightRecorder) SnapshotOnError(err error, filename string) error {
	if err == nil {
		return nil
	}
	_ = fr.Snapshot(filename)
	return err
}

var (
	globalRecorder     *FlightRecorder
	globalRecorderOnce sync.Once
)

// GlobalFlightRecorder returns the shared FlightRecorder, or nil before
// InitGlobalFlightRecorder runs.
func GlobalFlightRecorder() *FlightRecorder {
	return globalRecorder
}

// InitGlobalFlightRecorder creates and starts the shared FlightRecorder.
// Only the first call has any effect.
func InitGlobalFlightRecorder(opts ...FlightRecorderOption) {
	globalRecorderOnce.Do(func() {
		globalRecorder = NewFlightRecorder(opts...)
		_ = globalRecorder.Start()
	})
}

// TraceRegion opens a named region at the current point and returns its
// end function.
//
// Example:
//
//	defer TraceRegion(ctx, "Recombine")()
func TraceRegion(ctx context.Context, name string) func() {
	return trace.StartRegion(ctx, name).End
}

// TraceTask groups related regions under one named task. The returned
// context carries the task; the second value ends it.
//
// Example:
//
//	ctx, endTask := TraceTask(ctx, "EvolutionRun")
//	defer endTask()
func TraceTask(ctx context.Context, name string) (context.Context, func()) {
	taskCtx, task := trace.NewTask(ctx, name)
	return taskCtx, task.End
}

// TraceLog logs a message to the trace at the current point.
// Useful for marking significant events, such as archive improvements.
func TraceLog(ctx context.Context, category, message string) {
	trace.Log(ctx, category, message)
}
