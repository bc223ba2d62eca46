// Package listview provides the scrolling row list used by each account
// level table.
//
// A Model holds one page of rows, a cursor and a viewport. Only the rows in
// the viewport (plus a small buffer) are rendered, so a large page size does
// not slow the terminal down.
package listview
