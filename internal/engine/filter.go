package engine

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/accountdesk/internal/account"
)

// Filter field names sent by the rendering layer.
const (
	FilterFieldName  = "name"
	FilterFieldPhone = "phone"
	FilterFieldOwner = "owner"
)

// ErrUnknownFilterField is returned when a filter edit names an unsupported field.
var ErrUnknownFilterField = errors.New("unknown filter field")

// FilterCriteria holds the three independent account predicates.
// An empty criterion does not filter.
type FilterCriteria struct {
	// Name matches as a case-insensitive substring.
	Name string
	// Phone matches as a case-sensitive substring.
	Phone string
	// OwnerID matches exactly.
	OwnerID string
}

// IsEmpty reports whether no criterion is active.
func (c FilterCriteria) IsEmpty() bool {
	return c.Name == "" && c.Phone == "" && c.OwnerID == ""
}

// Set applies a single filter edit from the rendering layer.
// Name edits are stored lower-cased.
func (c *FilterCriteria) Set(field, value string) error {
	switch field {
	case FilterFieldName:
		c.Name = cases.Lower(language.Und).String(value)
	case FilterFieldPhone:
		c.Phone = value
	case FilterFieldOwner:
		c.OwnerID = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilterField, field)
	}
	return nil
}

// Filter returns the records satisfying every active criterion, in input order.
// Missing fields never match a non-empty criterion.
func Filter(records []account.Account, criteria FilterCriteria) []account.Account {
	lower := cases.Lower(language.Und)
	name := lower.String(criteria.Name)

	out := make([]account.Account, 0, len(records))
	for _, rec := range records {
		if name != "" && (rec.Name == "" || !strings.Contains(lower.String(rec.Name), name)) {
			continue
		}
		if criteria.Phone != "" && (rec.Phone == "" || !strings.Contains(rec.Phone, criteria.Phone)) {
			continue
		}
		if criteria.OwnerID != "" && rec.OwnerID != criteria.OwnerID {
			continue
		}
		out = append(out, rec)
	}
	return out
}
