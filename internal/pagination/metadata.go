package pagination

// Meta contains metadata about one paginated list.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates pagination metadata for a list of totalCount items viewed
// through cursor.
func NewMeta(cursor Cursor, totalCount int) Meta {
	totalPages := TotalPages(totalCount, cursor.Size)
	return Meta{
		CurrentPage: cursor.Number,
		PageSize:    cursor.Size,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: cursor.Number > 1,
		HasNext:     cursor.Number < totalPages,
	}
}
