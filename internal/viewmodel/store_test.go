package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/accountdesk/internal/account"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection("a", "b")

	s2 := s.Toggle("c")
	assert.Equal(t, []string{"a", "b", "c"}, s2.IDs())
	assert.Equal(t, []string{"a", "b"}, s.IDs(), "toggle does not mutate the receiver")

	s3 := s2.Toggle("a")
	assert.Equal(t, []string{"b", "c"}, s3.IDs())
	assert.False(t, s3.Contains("a"))

	var zero Selection
	assert.True(t, zero.IsEmpty())
	assert.Equal(t, []string{"x"}, zero.Toggle("x").IDs())
}

func TestStore_ReplaceCopies(t *testing.T) {
	st := NewStore()
	recs := []account.Account{{ID: "001", Name: "Acme", LastModifiedBy: &account.User{Name: "Ann"}}}

	st.Replace(recs)
	recs[0].Name = "changed"
	recs[0].LastModifiedBy.Name = "changed"

	assert.Equal(t, "Acme", st.Records()[0].Name)
	assert.Equal(t, "Ann", st.Records()[0].LastModifiedByName())
	assert.Equal(t, 1, st.Len())
}

func TestStore_Selection(t *testing.T) {
	st := NewStore()
	st.Select(NewSelection("001"))
	assert.Equal(t, 1, st.Selection().Len())

	st.ClearSelection()
	assert.True(t, st.Selection().IsEmpty())
}
