package account

// Column describes a table column for the rendering layer.
type Column struct {
	Label     string `json:"label"`
	FieldName string `json:"fieldName"`
	Sortable  bool   `json:"sortable"`
}

// DefaultColumns returns the account table columns.
func DefaultColumns() []Column {
	return []Column{
		{Label: "Account Name", FieldName: FieldName, Sortable: true},
		{Label: "Phone Number", FieldName: FieldPhone},
		{Label: "Last Modified By", FieldName: FieldLastModifiedByName, Sortable: true},
	}
}

// FindColumn looks up a column by field name.
func FindColumn(columns []Column, fieldName string) (Column, bool) {
	for _, c := range columns {
		if c.FieldName == fieldName {
			return c, true
		}
	}
	return Column{}, false
}
