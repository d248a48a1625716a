package domain

import "time"

// Severity classifies a notice for the UI surfaces consuming the bus.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a user-facing report about a rejected or degraded action.
// Notices are emitted by the reducer alongside the new state and published
// by the dispatch loop only after the state swap commits, so listeners never
// observe a notice ahead of the state it describes.
type Notice struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// NoticeFromError maps the domain error taxonomy onto a severity:
// structural problems are errors, missing references are warnings, and
// empty batch intersections are informational.
func NoticeFromError(id string, err error, at time.Time) Notice {
	severity := SeverityError
	switch {
	case IsDomainError(err, ErrCodeNotFound):
		severity = SeverityWarning
	case IsDomainError(err, ErrCodeEmptyBatch):
		severity = SeverityInfo
	}
	return Notice{
		ID:        id,
		Message:   err.Error(),
		Severity:  severity,
		Timestamp: at,
	}
}
