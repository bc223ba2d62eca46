package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/accountdesk/internal/account"
)

func TestPartition(t *testing.T) {
	levels := Partition(sampleAccounts())

	assert.Equal(t, []string{"001", "004", "006"}, ids(levels.Level1()))
	assert.Equal(t, []string{"002", "003"}, ids(levels.Level2()))
	// "Level 3" is dropped
	assert.Equal(t, 5, levels.Len())
	assert.Equal(t, []account.Level{account.Level1, account.Level2}, levels.Names())
}

func TestPartition_Completeness(t *testing.T) {
	recs := sampleAccounts()
	levels := Partition(recs)

	seen := map[string]int{}
	for _, level := range levels.Names() {
		for _, r := range levels.Get(level) {
			assert.Equal(t, level, r.Level)
			seen[r.ID]++
		}
	}
	for _, r := range recs {
		if r.Level.IsKnown() {
			assert.Equal(t, 1, seen[r.ID], "record %s", r.ID)
		} else {
			assert.Zero(t, seen[r.ID], "record %s", r.ID)
		}
	}
}

func TestPartition_KeepsSortOrder(t *testing.T) {
	sorted := Sort(sampleAccounts(), SortSpec{Field: account.FieldName, Direction: Descending})
	levels := Partition(sorted)
	assert.Equal(t, []string{"006", "001", "004"}, ids(levels.Level1()))
	assert.Equal(t, []string{"002", "003"}, ids(levels.Level2()))
}

func TestPartitionBy_CustomCategories(t *testing.T) {
	levels := PartitionBy(sampleAccounts(), "Level 3")
	assert.Equal(t, []string{"005"}, ids(levels.Get("Level 3")))
	assert.Empty(t, levels.Level1())
	assert.Empty(t, levels.Get("Level 9"))
}

func TestPartition_Empty(t *testing.T) {
	levels := Partition(nil)
	assert.Empty(t, levels.Level1())
	assert.Empty(t, levels.Level2())
	assert.Equal(t, 0, levels.Len())
}
