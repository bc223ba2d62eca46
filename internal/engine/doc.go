// Package engine implements the pure account pipeline behind the level tables.
//
// Every function in this package is side-effect free and returns new slices:
//
//	records -> Filter -> Sort -> Partition -> (pagination.Page per level)
//
// Recompute runs the whole pipeline over a State and returns the derived View.
// Callers hold the State and call Recompute after every mutation; nothing here
// tracks dependencies implicitly.
package engine
