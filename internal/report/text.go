package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/engine"
)

const tabwriterPadding = 2

// emptyCell stands in for missing field values.
const emptyCell = "-"

// Levels lists the tables a report renders, in order.
func Levels() []account.Level {
	return account.Levels()
}

// CellValue returns the display value of a column for acc.
func CellValue(acc account.Account, col account.Column) string {
	v, ok := acc.Field(col.FieldName)
	if !ok || v == "" {
		return emptyCell
	}
	return v
}

// LevelHeading is the title line above a level table.
func LevelHeading(view engine.View, level account.Level) string {
	meta := view.Meta(level)
	return fmt.Sprintf("%s (page %d/%d, total %d)", level, meta.CurrentPage, max(meta.TotalPages, 1), meta.TotalItems)
}

// RenderText writes one aligned table per level showing the current page.
func RenderText(w io.Writer, view engine.View, cols []account.Column) error {
	for i, level := range Levels() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, LevelHeading(view, level)); err != nil {
			return fmt.Errorf("writing heading: %w", err)
		}
		if err := renderTable(w, view.PageOf(level), cols); err != nil {
			return fmt.Errorf("writing %s table: %w", level, err)
		}
	}
	return nil
}

func renderTable(w io.Writer, rows []account.Account, cols []account.Column) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	upper := cases.Upper(language.Und)

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, col := range cols {
		header[i] = upper.String(col.Label)
		rule[i] = strings.Repeat("-", utf8.RuneCountInString(header[i]))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, strings.Join(rule, "\t")); err != nil {
		return err
	}

	for _, acc := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = CellValue(acc, col)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(no accounts)")
		return err
	}
	return nil
}
