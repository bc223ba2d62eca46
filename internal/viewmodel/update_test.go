package viewmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/accountdesk/internal/account"
)

func TestSubmitUpdate_MixedOutcomes(t *testing.T) {
	src := &fakeSource{
		records:  accounts(3, 0),
		messages: []string{"✅ 001 updated", "❌ 002 failed: locked"},
	}
	rec := &Recorder{}
	vm := New(src, WithNotifier(rec))
	require.NoError(t, vm.Load(context.Background()))
	vm.SetSelection([]string{"001", "002"})

	require.NoError(t, vm.SubmitUpdate(context.Background()))

	assert.Equal(t, 1, src.updateCalls)
	assert.Equal(t, []string{"001", "002"}, src.lastIDs)
	assert.Equal(t, 1, src.refreshCalls)
	assert.Equal(t, 1, rec.Count(account.SeveritySuccess))
	assert.Equal(t, 1, rec.Count(account.SeverityError))
	for _, n := range rec.All() {
		assert.Equal(t, TitleResult, n.Title)
	}
	assert.Equal(t, "✅ 001 updated", rec.All()[0].Message)
	assert.True(t, vm.Selection().IsEmpty())
	assert.False(t, vm.Busy())
}

func TestSubmitUpdate_OutcomesRenderedAsReceived(t *testing.T) {
	tests := []struct {
		name        string
		selected    []string
		messages    []string
		wantSuccess int
		wantError   int
	}{
		{
			name:        "duplicate messages",
			selected:    []string{"100", "101"},
			messages:    []string{"✅ 100 updated", "✅ 100 updated", "❌ 101 failed: locked"},
			wantSuccess: 2,
			wantError:   1,
		},
		{
			name:        "more messages than ids",
			selected:    []string{"100"},
			messages:    []string{"✅ 100 updated", "✅ 101 updated", "❌ 102 failed: locked", "note"},
			wantSuccess: 2,
			wantError:   2,
		},
		{
			name:     "no messages for two ids",
			selected: []string{"100", "101"},
			messages: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{records: accounts(3, 0), messages: tt.messages}
			rec := &Recorder{}
			vm := New(src, WithNotifier(rec))
			require.NoError(t, vm.Load(context.Background()))
			vm.SetSelection(tt.selected)

			require.NoError(t, vm.SubmitUpdate(context.Background()))

			require.Len(t, rec.All(), len(tt.messages))
			for i, n := range rec.All() {
				assert.Equal(t, TitleResult, n.Title)
				assert.Equal(t, tt.messages[i], n.Message)
			}
			assert.Equal(t, tt.wantSuccess, rec.Count(account.SeveritySuccess))
			assert.Equal(t, tt.wantError, rec.Count(account.SeverityError))
			assert.True(t, vm.Selection().IsEmpty())
			assert.Equal(t, 1, src.updateCalls)
			assert.Equal(t, 1, src.refreshCalls)
			assert.False(t, vm.Busy())
		})
	}
}

func TestSubmitUpdate_EmptySelection(t *testing.T) {
	src := &fakeSource{records: accounts(2, 0)}
	rec := &Recorder{}
	vm := New(src, WithNotifier(rec))

	err := vm.SubmitUpdate(context.Background())

	require.ErrorIs(t, err, ErrEmptySelection)
	assert.Zero(t, src.updateCalls)
	assert.Zero(t, src.refreshCalls)
	require.Len(t, rec.All(), 1)
	assert.Equal(t, Notification{
		Title:    TitleError,
		Message:  MessageEmptySelection,
		Severity: account.SeverityError,
	}, rec.All()[0])
	assert.False(t, vm.Busy())
}

func TestSubmitUpdate_TransportFailure(t *testing.T) {
	src := &fakeSource{records: accounts(2, 0), updateErr: errors.New("503 service unavailable")}
	rec := &Recorder{}
	vm := New(src, WithNotifier(rec))
	require.NoError(t, vm.Load(context.Background()))
	vm.SetSelection([]string{"100"})

	err := vm.SubmitUpdate(context.Background())

	var transportErr *UpdateTransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotEmpty(t, transportErr.SubmissionID)
	assert.Zero(t, src.refreshCalls)
	require.Len(t, rec.All(), 1)
	assert.Equal(t, MessageUpdateTransport, rec.All()[0].Message)
	assert.Equal(t, account.SeverityError, rec.All()[0].Severity)
	assert.Equal(t, []string{"100"}, vm.Selection().IDs(), "selection kept for retry")
	assert.False(t, vm.Busy())
}

func TestSubmitUpdate_RefreshFailure(t *testing.T) {
	src := &fakeSource{records: accounts(2, 0), messages: []string{"✅ 100 updated"}}
	rec := &Recorder{}
	vm := New(src, WithNotifier(rec))
	require.NoError(t, vm.Load(context.Background()))
	vm.SetSelection([]string{"100"})
	src.refreshErr = errors.New("timeout")

	err := vm.SubmitUpdate(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, rec.Count(account.SeveritySuccess))
	assert.True(t, vm.Selection().IsEmpty())
	assert.Len(t, vm.Records(), 2)
	assert.False(t, vm.Busy())
}

func TestSubmitUpdate_BusyDuringCall(t *testing.T) {
	src := &fakeSource{records: accounts(1, 0), messages: []string{"✅ 100 updated"}}
	vm := New(src)
	vm.SetSelection([]string{"100"})

	var busyInside bool
	src.onUpdate = func([]string) { busyInside = vm.Busy() }

	require.NoError(t, vm.SubmitUpdate(context.Background()))
	assert.True(t, busyInside)
	assert.False(t, vm.Busy())
}

func TestBeginUpdate_RejectsConcurrentSubmission(t *testing.T) {
	src := &fakeSource{records: accounts(1, 0), messages: []string{"✅ 100 updated"}}
	vm := New(src)
	vm.SetSelection([]string{"100"})

	pending, err := vm.BeginUpdate(context.Background())
	require.NoError(t, err)
	assert.True(t, vm.Busy())
	assert.Equal(t, []string{"100"}, pending.IDs)

	_, err = vm.BeginUpdate(context.Background())
	require.ErrorIs(t, err, ErrUpdateInFlight)

	require.NoError(t, vm.CompleteUpdate(context.Background(), pending.Run(context.Background())))
	assert.False(t, vm.Busy())
	assert.Equal(t, 1, src.updateCalls)
}

func TestCompleteUpdate_WithoutBegin(t *testing.T) {
	vm := New(&fakeSource{})

	err := vm.CompleteUpdate(context.Background(), UpdateResult{SubmissionID: "x"})
	assert.ErrorIs(t, err, ErrNoPendingUpdate)
}

func TestPendingUpdate_DelayCancelled(t *testing.T) {
	src := &fakeSource{records: accounts(1, 0)}
	rec := &Recorder{}
	vm := New(src, WithNotifier(rec), WithDelay(FixedDelay(time.Hour)))
	vm.SetSelection([]string{"100"})

	pending, err := vm.BeginUpdate(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := pending.Run(ctx)

	require.ErrorIs(t, res.Err, context.Canceled)
	assert.Zero(t, src.updateCalls)

	err = vm.CompleteUpdate(context.Background(), res)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, rec.Count(account.SeverityError))
	assert.False(t, vm.Busy())
}
