package account

import (
	"fmt"
	"strings"
)

// Outcome markers that prefix every bulk update result message.
const (
	SuccessMarker = "✅"
	FailureMarker = "❌"
)

// Severity classifies a user-visible notification.
type Severity string

// Notification severities.
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Outcome is the structured reading of a single result message.
type Outcome struct {
	ID      string
	Success bool
	Message string
}

// FormatOutcome builds the marker-prefixed message a backend returns for one id.
func FormatOutcome(id string, ok bool, detail string) string {
	marker := FailureMarker
	if ok {
		marker = SuccessMarker
	}
	return fmt.Sprintf("%s %s %s", marker, id, detail)
}

// ParseOutcome classifies a result message by its leading marker.
// Any message without the success marker is a failure. The id is the first
// token after the marker, when present.
func ParseOutcome(msg string) Outcome {
	out := Outcome{Message: msg, Success: strings.HasPrefix(msg, SuccessMarker)}

	rest := msg
	switch {
	case out.Success:
		rest = strings.TrimPrefix(msg, SuccessMarker)
	case strings.HasPrefix(msg, FailureMarker):
		rest = strings.TrimPrefix(msg, FailureMarker)
	default:
		return out
	}

	if fields := strings.Fields(rest); len(fields) > 0 {
		out.ID = strings.TrimSuffix(fields[0], ":")
	}
	return out
}

// SeverityOf returns the notification severity for a result message.
func SeverityOf(msg string) Severity {
	if strings.HasPrefix(msg, SuccessMarker) {
		return SeveritySuccess
	}
	return SeverityError
}
