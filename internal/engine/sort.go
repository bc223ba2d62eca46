package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/pagination"
)

// Direction is the sort order of a SortSpec.
type Direction string

// Sort directions.
const (
	Ascending  Direction = pagination.SortOrderAsc
	Descending Direction = pagination.SortOrderDesc
)

// ErrInvalidDirection is returned for directions other than asc and desc.
var ErrInvalidDirection = errors.New("sort direction must be 'asc' or 'desc'")

// ParseDirection converts a rendering-layer direction string.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidDirection, s)
	}
}

// SortSpec selects the single active sort field and its direction.
type SortSpec struct {
	Field     string
	Direction Direction
}

// DefaultSortSpec sorts by account name, ascending.
func DefaultSortSpec() SortSpec {
	return SortSpec{Field: account.FieldName, Direction: Ascending}
}

// ParseSortSpec parses "field" or "field:order".
// An empty string yields the default spec.
func ParseSortSpec(s string) (SortSpec, error) {
	field, order, err := pagination.ParseSort(s)
	if err != nil {
		return SortSpec{}, err
	}
	if field == "" {
		return DefaultSortSpec(), nil
	}
	return SortSpec{Field: field, Direction: Direction(order)}, nil
}

// String renders the sort spec as "field:order".
func (s SortSpec) String() string {
	return s.Field + ":" + string(s.Direction)
}

type keyedAccount struct {
	key string
	rec account.Account
}

// Sort returns a new slice ordered by the lower-cased string value of
// spec.Field. Missing values sort as "". The sort is stable: ties keep their
// input order in both directions. The input is never modified.
func Sort(records []account.Account, spec SortSpec) []account.Account {
	lower := cases.Lower(language.Und)
	keyed := make([]keyedAccount, len(records))
	for i, rec := range records {
		val, _ := rec.Field(spec.Field)
		keyed[i] = keyedAccount{key: lower.String(val), rec: rec}
	}

	sign := 1
	if spec.Direction == Descending {
		sign = -1
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return sign*strings.Compare(keyed[i].key, keyed[j].key) < 0
	})

	sorted := make([]account.Account, len(keyed))
	for i, k := range keyed {
		sorted[i] = k.rec
	}
	return sorted
}
