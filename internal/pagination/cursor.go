package pagination

// Cursor is one page position shared by several lists that are paged with
// the same page size. Number is always >= 1.
type Cursor struct {
	Number int
	Size   int
}

// NewCursor creates a cursor on the first page.
func NewCursor(size int) Cursor {
	if size < MinPageSize {
		size = DefaultPageSize
	}
	return Cursor{Number: DefaultPage, Size: size}
}

// Next advances the cursor when the new page exists in at least one of the
// lists described by totals (their total page counts). Otherwise the cursor
// is left unchanged. It reports whether the cursor moved.
func (c *Cursor) Next(totals ...int) bool {
	next := c.Number + 1
	for _, total := range totals {
		if next <= total {
			c.Number = next
			return true
		}
	}
	return false
}

// Prev moves back one page unless the cursor is on the first page.
func (c *Cursor) Prev() bool {
	if c.Number <= MinPage {
		return false
	}
	c.Number--
	return true
}

// Reset moves the cursor back to the first page.
func (c *Cursor) Reset() {
	c.Number = DefaultPage
}

// Offset returns the index of the first item on the current page.
func (c Cursor) Offset() int {
	return (c.Number - 1) * c.Size
}
