package models

import (
	"time"

	"github.com/google/uuid"
)

// RunContext holds the identity of a single scan invocation. It is built once
// at scan start and shared read-only by every file task.
type RunContext struct {
	ScanID    uuid.UUID
	Hostname  string
	Username  string
	OS        string
	OSVersion string
	StartedAt time.Time
	RootPath  string // Absolute scan root
	RootName  string // Base name of the scan root
}

// Timestamp returns the scan timestamp in the format used by records
func (r *RunContext) Timestamp() string {
	return FormatTime(r.StartedAt)
}

// FormatTime renders a timestamp as ISO-8601 in local time
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339Nano)
}
