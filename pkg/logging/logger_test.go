package logging

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockOutput struct {
	entries []LogEntry
	mu      sync.Mutex
	closed  bool
}

func NewMockOutput() *MockOutput {
	return &MockOutput{
		entries: make([]LogEntry, 0),
	}
}

func (m *MockOutput) Write(entry LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("output is closed")
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockOutput) Sync() error {
	return nil
}

func (m *MockOutput) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockOutput) GetEntries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries
}

func TestNewLogger(t *testing.T) {
	mockOutput := NewMockOutput()
	defaultFields := map[string]interface{}{
		"service": "test",
		"version": "1.0",
	}

	cfg := Config{
		Severity:      INFO,
		Outputs:       []Output{mockOutput},
		DefaultFields: defaultFields,
	}

	logger := NewLogger(cfg)

	assert.Equal(t, INFO, logger.severity)
	assert.Equal(t, defaultFields, logger.fields)
}

func TestSeverityFiltering(t *testing.T) {
	mockOutput := NewMockOutput()
	logger := NewLogger(Config{
		Severity: WARN,
		Outputs:  []Output{mockOutput},
	})

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	entries := mockOutput.GetEntries()
	assert.Len(t, entries, 2)
	assert.Equal(t, WARN, entries[0].Severity)
	assert.Equal(t, ERROR, entries[1].Severity)
}

func TestRunIDPropagation(t *testing.T) {
	mockOutput := NewMockOutput()
	logger := NewLogger(Config{
		Severity: DEBUG,
		Outputs:  []Output{mockOutput},
	})

	ctx := WithRunID(context.Background(), "run-42")
	logger.Info(ctx, "with run id")
	logger.Info(context.Background(), "without run id")

	entries := mockOutput.GetEntries()
	assert.Equal(t, "run-42", entries[0].RunID)
	assert.Empty(t, entries[1].RunID)

	id, ok := GetRunID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "run-42", id)

	_, ok = GetRunID(context.Background())
	assert.False(t, ok)
}

func TestGenerationLogging(t *testing.T) {
	mockOutput := NewMockOutput()
	logger := NewLogger(Config{
		Severity: DEBUG,
		Outputs:  []Output{mockOutput},
	})

	logger.Generation(context.Background(), 7, 0.9125, 5)

	entries := mockOutput.GetEntries()
	assert.NotEmpty(t, entries)
	lastEntry := entries[len(entries)-1]
	assert.Contains(t, lastEntry.Message, "generation 7")
	assert.Contains(t, lastEntry.Message, "best_fitness=0.9125")
	assert.Contains(t, lastEntry.Message, "archive_size=5")

	// Filtered out above DEBUG
	quiet := NewLogger(Config{Severity: INFO, Outputs: []Output{mockOutput}})
	before := len(mockOutput.GetEntries())
	quiet.Generation(context.Background(), 8, 1.0, 5)
	assert.Len(t, mockOutput.GetEntries(), before)
}

func TestGlobalLogger(t *testing.T) {
	// Test default logger creation
	logger1 := GetLogger()
	assert.NotNil(t, logger1)

	// Test setting custom logger
	mockOutput := NewMockOutput()
	customLogger := NewLogger(Config{
		Severity: DEBUG,
		Outputs:  []Output{mockOutput},
	})
	SetLogger(customLogger)

	logger2 := GetLogger()
	assert.Equal(t, customLogger, logger2)
}

func TestConcurrentLogging(t *testing.T) {
	mockOutput := NewMockOutput()
	logger := NewLogger(Config{
		Severity: DEBUG,
		Outputs:  []Output{mockOutput},
	})

	var wg sync.WaitGroup
	numGoroutines := 100
	messagesPerGoroutine := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				logger.Info(context.Background(), "message from routine %d: %d", routineID, j)
			}
		}(i)
	}

	wg.Wait()

	entries := mockOutput.GetEntries()
	assert.Equal(t, numGoroutines*messagesPerGoroutine, len(entries))
}

func TestFieldTruncation(t *testing.T) {
	longText := strings.Repeat("a", 200)
	fields := map[string]interface{}{
		"genes": longText,
	}

	formatted := formatFields(fields)
	assert.True(t, len(formatted) < len(longText))
	assert.Contains(t, formatted, "...")
}
