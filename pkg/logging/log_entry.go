package logging

// LogEntry represents a structured log record. Run-scoped fields are
// populated from the context when present.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Run-scoped fields
	RunID string // Identifier of the evolution run that produced this entry

	// General structured data
	Fields map[string]interface{}
}
