package viewmodel

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by ViewModel operations.
var (
	// ErrEmptySelection is the validation error for submitting no accounts.
	ErrEmptySelection = errors.New("no accounts selected")
	// ErrUpdateInFlight is returned when a submission arrives while one is running.
	ErrUpdateInFlight = errors.New("an update is already in progress")
	// ErrNotSortable is returned for sort requests on unknown or non-sortable columns.
	ErrNotSortable = errors.New("column is not sortable")
	// ErrNoPendingUpdate is returned when completing an update that was never begun.
	ErrNoPendingUpdate = errors.New("no update in progress")
)

// FetchError reports a failed initial load or refresh. The store keeps its
// previous contents.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s accounts: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UpdateTransportError reports that the bulk update call itself failed.
// The selection is preserved so the user can retry.
type UpdateTransportError struct {
	SubmissionID string
	Err          error
}

func (e *UpdateTransportError) Error() string {
	return fmt.Sprintf("update %s failed: %v", e.SubmissionID, e.Err)
}

func (e *UpdateTransportError) Unwrap() error { return e.Err }
