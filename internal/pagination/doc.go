// Package pagination provides page slicing, page counting, and the shared page
// cursor used by the account level tables.
//
// This package contains:
//   - Page / TotalPages: clamped slicing of any sequence into fixed-size pages
//   - Cursor: a single page cursor shared by several independently sized lists
//   - Meta: response metadata for paginated results
//   - ParseSort: "field" or "field:order" parsing for CLI flags
package pagination
