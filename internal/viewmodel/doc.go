// Package viewmodel holds the account tables' state and orchestrates the bulk
// update workflow.
//
// A ViewModel owns the Record Store (the full account set and the current
// selection), the filter criteria, the sort spec and the shared page cursor.
// Every mutator recomputes the derived engine.View before returning.
//
// The bulk update is split so it fits a cooperative event loop:
//
//	pending, err := vm.BeginUpdate(ctx) // validate, mark busy
//	result := pending.Run(ctx)          // off-loop: delay, UpdateMany, Refresh
//	err = vm.CompleteUpdate(ctx, result) // notify, clear selection, replace store
//
// SubmitUpdate chains the three steps for callers without an event loop.
// A ViewModel is not safe for concurrent use; PendingUpdate.Run touches no
// ViewModel state and may run on any goroutine.
package viewmodel
