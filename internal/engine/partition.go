package engine

import "github.com/rshade/accountdesk/internal/account"

// Levels is the result of partitioning records by their level field.
// Within a level, records keep the order they had in the input.
type Levels struct {
	order   []account.Level
	byLevel map[account.Level][]account.Account
}

// Partition splits records into the known account levels.
func Partition(records []account.Account) Levels {
	return PartitionBy(records, account.Levels()...)
}

// PartitionBy splits records into the given categories.
// Records whose level is not listed are dropped.
func PartitionBy(records []account.Account, known ...account.Level) Levels {
	l := Levels{
		order:   append([]account.Level(nil), known...),
		byLevel: make(map[account.Level][]account.Account, len(known)),
	}
	for _, level := range known {
		l.byLevel[level] = []account.Account{}
	}
	for _, rec := range records {
		if bucket, ok := l.byLevel[rec.Level]; ok {
			l.byLevel[rec.Level] = append(bucket, rec)
		}
	}
	return l
}

// Get returns the records of one level, or an empty slice.
func (l Levels) Get(level account.Level) []account.Account {
	if recs, ok := l.byLevel[level]; ok {
		return recs
	}
	return []account.Account{}
}

// Level1 returns the "Level 1" records.
func (l Levels) Level1() []account.Account { return l.Get(account.Level1) }

// Level2 returns the "Level 2" records.
func (l Levels) Level2() []account.Account { return l.Get(account.Level2) }

// Names returns the categories in partition order.
func (l Levels) Names() []account.Level {
	return append([]account.Level(nil), l.order...)
}

// Len returns the total number of partitioned records.
func (l Levels) Len() int {
	n := 0
	for _, recs := range l.byLevel {
		n += len(recs)
	}
	return n
}
