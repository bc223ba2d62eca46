package cache

import (
	"time"

	"github.com/rshade/accountdesk/internal/account"
)

// Entry is a cached account snapshot with TTL metadata.
type Entry struct {
	// Records is the cached account set.
	Records []account.Account

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time

	// ExpiresAt is when the snapshot stops being served.
	ExpiresAt time.Time
}

// NewEntry creates an entry taken at now that lives for ttl.
func NewEntry(records []account.Account, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Records:   account.CloneAll(records),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry has expired at now.
func (e *Entry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Age returns how long ago the snapshot was taken.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 if already expired.
func (e *Entry) TimeUntilExpiration(now time.Time) time.Duration {
	remaining := e.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
