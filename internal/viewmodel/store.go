package viewmodel

import "github.com/rshade/accountdesk/internal/account"

// Selection is an insertion-ordered set of account ids.
type Selection struct {
	ids []string
	set map[string]struct{}
}

// NewSelection builds a selection, dropping duplicates and empty ids.
func NewSelection(ids ...string) Selection {
	s := Selection{set: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Selection) add(id string) {
	if id == "" {
		return
	}
	if s.set == nil {
		s.set = map[string]struct{}{}
	}
	if _, ok := s.set[id]; ok {
		return
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Len returns the number of selected ids.
func (s Selection) Len() int { return len(s.ids) }

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return len(s.ids) == 0 }

// Contains reports whether id is selected.
func (s Selection) Contains(id string) bool {
	_, ok := s.set[id]
	return ok
}

// IDs returns the selected ids in selection order.
func (s Selection) IDs() []string {
	return append([]string{}, s.ids...)
}

// Toggle adds id when absent and removes it when present.
func (s Selection) Toggle(id string) Selection {
	if !s.Contains(id) {
		next := NewSelection(s.ids...)
		next.add(id)
		return next
	}
	kept := make([]string, 0, len(s.ids))
	for _, existing := range s.ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return NewSelection(kept...)
}

// Store is the Record Store: the full unfiltered account set and the last
// selection. Records are replaced wholesale, never edited in place.
type Store struct {
	records   []account.Account
	selection Selection
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{selection: NewSelection()}
}

// Records returns the current account set.
func (s *Store) Records() []account.Account { return s.records }

// Replace swaps in a new account set.
func (s *Store) Replace(records []account.Account) {
	s.records = account.CloneAll(records)
}

// Len returns the number of stored accounts.
func (s *Store) Len() int { return len(s.records) }

// Selection returns the current selection.
func (s *Store) Selection() Selection { return s.selection }

// Select replaces the selection.
func (s *Store) Select(sel Selection) { s.selection = sel }

// ClearSelection empties the selection.
func (s *Store) ClearSelection() { s.selection = NewSelection() }
