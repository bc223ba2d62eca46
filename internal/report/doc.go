// Package report renders the derived account view for non-interactive
// output: aligned text tables, JSON, and PDF exports.
package report
