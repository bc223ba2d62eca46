package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TTL configuration constants and defaults.
const (
	// DefaultTTLSeconds is the default snapshot TTL (1 minute).
	DefaultTTLSeconds = 60

	// MaxTTLSeconds is the maximum allowed TTL (1 day).
	MaxTTLSeconds = 86400

	// EnvTTLSeconds is the environment variable for overriding the TTL.
	EnvTTLSeconds = "ACCOUNTDESK_CACHE_TTL_SECONDS"
)

// ErrInvalidTTL is returned for TTLs outside [0, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between 0 and %d seconds", MaxTTLSeconds)

// ValidateTTL checks a TTL in seconds. Zero disables caching.
func ValidateTTL(seconds int) error {
	if seconds < 0 || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

// TTLFromEnv returns the TTL from EnvTTLSeconds, or fallback when the variable
// is unset or invalid.
func TTLFromEnv(fallback time.Duration) time.Duration {
	raw := os.Getenv(EnvTTLSeconds)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || ValidateTTL(seconds) != nil {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// FormatDuration formats a TTL for display (e.g. "45s", "5m", "2h").
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
