package source

import (
	"errors"
	"fmt"

	"github.com/rshade/accountdesk/internal/account"
)

// Reasons a record cannot be promoted by UpdateMany.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountLocked    = errors.New("locked")
	ErrAlreadyPromoted  = errors.New("already at " + string(account.Level2))
	ErrLevelNotEligible = errors.New("level not eligible for promotion")
)

// CheckPromotable reports why acc cannot move from Level 1 to Level 2, or nil.
func CheckPromotable(acc account.Account, locked bool) error {
	switch {
	case locked:
		return ErrAccountLocked
	case acc.Level == account.Level2:
		return ErrAlreadyPromoted
	case acc.Level != account.Level1:
		return fmt.Errorf("%w: %q", ErrLevelNotEligible, acc.Level)
	default:
		return nil
	}
}

// Promote returns acc moved to Level 2 and stamped with actor.
func Promote(acc account.Account, actor string) account.Account {
	acc = acc.Clone()
	acc.Level = account.Level2
	acc.LastModifiedBy = &account.User{Name: actor}
	return acc
}

// OutcomeMessage formats the per-record result line for id.
func OutcomeMessage(id string, err error) string {
	if err != nil {
		return account.FormatOutcome(id, false, "failed: "+err.Error())
	}
	return account.FormatOutcome(id, true, "updated")
}

// FinishPartial settles a chunked UpdateMany that stopped at err after
// committing the outcomes in done, which line up with the head of ids.
// With nothing committed the call fails as a whole; otherwise every id that
// was not reached gets a failure outcome and the call succeeds.
func FinishPartial(ids, done []string, err error) ([]string, error) {
	if len(done) == 0 {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	out = append(out, done...)
	for _, id := range ids[len(done):] {
		out = append(out, OutcomeMessage(id, err))
	}
	return out, nil
}
