package viewmodel

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
)

// PendingUpdate is a bulk update that has been accepted but not yet run.
type PendingUpdate struct {
	SubmissionID string
	IDs          []string

	delay   Delay
	updater source.Updater
	fetcher source.Fetcher
}

// UpdateResult is everything PendingUpdate.Run observed.
type UpdateResult struct {
	SubmissionID string
	// Messages are the per-record outcomes, in the order received.
	Messages []string
	// Err is set when the update call (or the delay before it) failed.
	Err error
	// Records is the account set fetched after a successful update.
	Records []account.Account
	// RefreshErr is set when the post-update refresh failed.
	RefreshErr error
}

// Run waits for the delay policy, sends every id in one UpdateMany call and,
// when that succeeds, refreshes the account set. It does not touch the
// ViewModel and may run on any goroutine.
func (p *PendingUpdate) Run(ctx context.Context) UpdateResult {
	res := UpdateResult{SubmissionID: p.SubmissionID}

	if err := p.delay.Wait(ctx); err != nil {
		res.Err = err
		return res
	}

	msgs, err := p.updater.UpdateMany(ctx, p.IDs)
	if err != nil {
		res.Err = err
		return res
	}
	res.Messages = msgs

	res.Records, res.RefreshErr = p.fetcher.Refresh(ctx)
	return res
}

// BeginUpdate validates the selection and marks the ViewModel busy.
//
// An empty selection emits one error notification and returns
// ErrEmptySelection without calling anything. A submission while another is
// in flight returns ErrUpdateInFlight.
func (vm *ViewModel) BeginUpdate(ctx context.Context) (*PendingUpdate, error) {
	if vm.busy {
		return nil, ErrUpdateInFlight
	}

	vm.busy = true
	sel := vm.store.Selection()
	if sel.IsEmpty() {
		vm.notifier.Notify(Notification{
			Title:    TitleError,
			Message:  MessageEmptySelection,
			Severity: account.SeverityError,
		})
		vm.busy = false
		return nil, ErrEmptySelection
	}

	p := &PendingUpdate{
		SubmissionID: ulid.Make().String(),
		IDs:          sel.IDs(),
		delay:        vm.delay,
		updater:      vm.updater,
		fetcher:      vm.fetcher,
	}
	vm.pending = p.SubmissionID

	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("component", "viewmodel").
		Str("operation", "submit_update").
		Str("submission_id", p.SubmissionID).
		Int("selected", len(p.IDs)).
		Msg("bulk update submitted")

	return p, nil
}

// CompleteUpdate applies the result of a PendingUpdate.
//
// On success it emits one notification per outcome message, clears the
// selection and installs the refreshed account set. On transport failure it
// emits one generic error notification and keeps the selection. The busy
// flag is cleared last on every path.
func (vm *ViewModel) CompleteUpdate(ctx context.Context, res UpdateResult) error {
	if !vm.busy || res.SubmissionID != vm.pending {
		return ErrNoPendingUpdate
	}
	defer func() {
		vm.pending = ""
		vm.busy = false
	}()

	log := logging.FromContext(ctx)

	if res.Err != nil {
		log.Error().Ctx(ctx).
			Str("component", "viewmodel").
			Str("operation", "complete_update").
			Str("submission_id", res.SubmissionID).
			Err(res.Err).
			Msg("bulk update failed")
		vm.notifier.Notify(Notification{
			Title:    TitleError,
			Message:  MessageUpdateTransport,
			Severity: account.SeverityError,
		})
		return &UpdateTransportError{SubmissionID: res.SubmissionID, Err: res.Err}
	}

	succeeded := 0
	for _, msg := range res.Messages {
		sev := account.SeverityOf(msg)
		if sev == account.SeveritySuccess {
			succeeded++
		}
		vm.notifier.Notify(Notification{Title: TitleResult, Message: msg, Severity: sev})
	}

	log.Info().Ctx(ctx).
		Str("component", "viewmodel").
		Str("operation", "complete_update").
		Str("submission_id", res.SubmissionID).
		Int("outcomes", len(res.Messages)).
		Int("succeeded", succeeded).
		Msg("bulk update completed")

	vm.store.ClearSelection()
	return vm.applyFetch(ctx, "refresh", res.Records, res.RefreshErr)
}

// SubmitUpdate runs BeginUpdate, Run and CompleteUpdate in sequence.
func (vm *ViewModel) SubmitUpdate(ctx context.Context) error {
	p, err := vm.BeginUpdate(ctx)
	if err != nil {
		return err
	}
	return vm.CompleteUpdate(ctx, p.Run(ctx))
}
