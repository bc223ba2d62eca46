package report

import (
	"encoding/json"
	"io"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/engine"
	"github.com/rshade/accountdesk/internal/pagination"
)

// Document is the JSON form of a view.
type Document struct {
	Matched int             `json:"matched"`
	Levels  []LevelDocument `json:"levels"`
}

// LevelDocument is one level table.
type LevelDocument struct {
	Level      account.Level     `json:"level"`
	Pagination pagination.Meta   `json:"pagination"`
	Accounts   []account.Account `json:"accounts"`
}

// NewDocument builds the JSON document of view.
func NewDocument(view engine.View) Document {
	doc := Document{Matched: len(view.Filtered)}
	for _, level := range Levels() {
		page := view.PageOf(level)
		if page == nil {
			page = []account.Account{}
		}
		doc.Levels = append(doc.Levels, LevelDocument{
			Level:      level,
			Pagination: view.Meta(level),
			Accounts:   page,
		})
	}
	return doc
}

// RenderJSON writes view as indented JSON.
func RenderJSON(w io.Writer, view engine.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(view))
}
