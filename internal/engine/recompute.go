package engine

import (
	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/pagination"
)

// State is the input of the pipeline: the working set plus the criteria the
// user controls.
type State struct {
	Records  []account.Account
	Criteria FilterCriteria
	Sort     SortSpec
	Page     pagination.Cursor
}

// View is the derived, read-only output consumed by the rendering layer.
type View struct {
	Filtered         []account.Account
	Levels           Levels
	Level1Page       []account.Account
	Level2Page       []account.Account
	TotalPagesLevel1 int
	TotalPagesLevel2 int
	Page             pagination.Cursor
}

// Recompute runs filter, sort, partition and pagination over s.
func Recompute(s State) View {
	filtered := Sort(Filter(s.Records, s.Criteria), s.Sort)
	levels := Partition(filtered)

	return View{
		Filtered:         filtered,
		Levels:           levels,
		Level1Page:       pagination.Page(levels.Level1(), s.Page.Number, s.Page.Size),
		Level2Page:       pagination.Page(levels.Level2(), s.Page.Number, s.Page.Size),
		TotalPagesLevel1: pagination.TotalPages(len(levels.Level1()), s.Page.Size),
		TotalPagesLevel2: pagination.TotalPages(len(levels.Level2()), s.Page.Size),
		Page:             s.Page,
	}
}

// PageOf returns the current page of any level.
func (v View) PageOf(level account.Level) []account.Account {
	return pagination.Page(v.Levels.Get(level), v.Page.Number, v.Page.Size)
}

// Meta returns the pagination metadata of one level.
func (v View) Meta(level account.Level) pagination.Meta {
	return pagination.NewMeta(v.Page, len(v.Levels.Get(level)))
}

// Totals returns the total page count of every level, in partition order.
func (v View) Totals() []int {
	names := v.Levels.Names()
	totals := make([]int, len(names))
	for i, level := range names {
		totals[i] = pagination.TotalPages(len(v.Levels.Get(level)), v.Page.Size)
	}
	return totals
}
