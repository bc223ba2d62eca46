package viewmodel

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/engine"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/pagination"
	"github.com/rshade/accountdesk/internal/source"
)

// ViewModel is the state container behind the two account level tables.
type ViewModel struct {
	fetcher  source.Fetcher
	updater  source.Updater
	notifier Notifier
	delay    Delay
	columns  []account.Column
	logger   zerolog.Logger

	store    *Store
	criteria engine.FilterCriteria
	sort     engine.SortSpec
	page     pagination.Cursor
	busy     bool
	pending  string

	view engine.View
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithPageSize sets the fixed page size shared by both levels.
func WithPageSize(size int) Option {
	return func(vm *ViewModel) { vm.page = pagination.NewCursor(size) }
}

// WithDelay sets the scheduling policy applied before each bulk update.
func WithDelay(d Delay) Option {
	return func(vm *ViewModel) {
		if d != nil {
			vm.delay = d
		}
	}
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(vm *ViewModel) {
		if n != nil {
			vm.notifier = n
		}
	}
}

// WithColumns overrides the table column metadata.
func WithColumns(cols []account.Column) Option {
	return func(vm *ViewModel) { vm.columns = cols }
}

// WithLogger sets the logger used by mutators that take no context.
func WithLogger(l zerolog.Logger) Option {
	return func(vm *ViewModel) { vm.logger = logging.ComponentLogger(l, "viewmodel") }
}

// WithSort sets the initial sort spec.
func WithSort(spec engine.SortSpec) Option {
	return func(vm *ViewModel) { vm.sort = spec }
}

// New creates an empty ViewModel backed by src.
func New(src source.Source, opts ...Option) *ViewModel {
	vm := &ViewModel{
		fetcher:  src,
		updater:  src,
		notifier: NotifierFunc(func(Notification) {}),
		delay:    NoDelay(),
		columns:  account.DefaultColumns(),
		logger:   logging.ComponentLogger(*logging.FromContext(context.Background()), "viewmodel"),
		store:    NewStore(),
		sort:     engine.DefaultSortSpec(),
		page:     pagination.NewCursor(pagination.DefaultPageSize),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.recompute()
	return vm
}

// recompute derives the view from the current state. Every mutator calls it.
func (vm *ViewModel) recompute() {
	vm.view = engine.Recompute(engine.State{
		Records:  vm.store.Records(),
		Criteria: vm.criteria,
		Sort:     vm.sort,
		Page:     vm.page,
	})
}

// Load performs the initial fetch. On failure the store keeps its contents.
func (vm *ViewModel) Load(ctx context.Context) error {
	recs, err := vm.fetcher.FetchAll(ctx)
	return vm.applyFetch(ctx, "load", recs, err)
}

// Refresh forces a reload from the fetcher. On failure the store keeps its contents.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	recs, err := vm.fetcher.Refresh(ctx)
	return vm.applyFetch(ctx, "refresh", recs, err)
}

// ApplyFetch installs the result of a fetch performed elsewhere (e.g. by a
// background command). op names the fetch in logs and errors.
func (vm *ViewModel) ApplyFetch(ctx context.Context, op string, recs []account.Account, err error) error {
	return vm.applyFetch(ctx, op, recs, err)
}

func (vm *ViewModel) applyFetch(ctx context.Context, op string, recs []account.Account, err error) error {
	log := logging.FromContext(ctx)
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "viewmodel").
			Str("operation", op).
			Int("retained_records", vm.store.Len()).
			Err(err).
			Msg("account fetch failed")
		return &FetchError{Op: op, Err: err}
	}

	vm.ReplaceRecords(recs)
	log.Debug().Ctx(ctx).
		Str("component", "viewmodel").
		Str("operation", op).
		Int("records", len(recs)).
		Int("level1", len(vm.view.Levels.Level1())).
		Int("level2", len(vm.view.Levels.Level2())).
		Msg("accounts loaded")
	return nil
}

// ReplaceRecords swaps the whole account set and recomputes.
func (vm *ViewModel) ReplaceRecords(recs []account.Account) {
	vm.store.Replace(recs)
	vm.recompute()
}

// SetFilter applies one filter edit ({fieldName, value}) from the rendering layer.
func (vm *ViewModel) SetFilter(field, value string) error {
	if err := vm.criteria.Set(field, value); err != nil {
		return err
	}
	vm.recompute()
	vm.logger.Debug().
		Str("operation", "set_filter").
		Str("field", field).
		Int("matched", len(vm.view.Filtered)).
		Msg("filter applied")
	return nil
}

// SetCriteria replaces all filter criteria at once.
func (vm *ViewModel) SetCriteria(c engine.FilterCriteria) {
	vm.criteria = c
	vm.recompute()
}

// SetSort applies a sort request ({fieldName, sortDirection}).
// Only sortable columns are accepted; otherwise the sort order is unchanged.
func (vm *ViewModel) SetSort(field, direction string) error {
	col, ok := account.FindColumn(vm.columns, field)
	if !ok || !col.Sortable {
		return fmt.Errorf("%w: %q", ErrNotSortable, field)
	}
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return err
	}
	vm.sort = engine.SortSpec{Field: field, Direction: dir}
	vm.recompute()
	return nil
}

// SetSelection replaces the selection with ids (row-selection event).
func (vm *ViewModel) SetSelection(ids []string) {
	vm.store.Select(NewSelection(ids...))
}

// ToggleSelection flips the selection state of one id.
func (vm *ViewModel) ToggleSelection(id string) {
	vm.store.Select(vm.store.Selection().Toggle(id))
}

// NextPage advances the shared cursor when at least one level has the next page.
func (vm *ViewModel) NextPage() bool {
	moved := vm.page.Next(vm.view.TotalPagesLevel1, vm.view.TotalPagesLevel2)
	vm.recompute()
	return moved
}

// PrevPage moves the shared cursor back unless it is on page 1.
func (vm *ViewModel) PrevPage() bool {
	moved := vm.page.Prev()
	vm.recompute()
	return moved
}

// View returns the derived view.
func (vm *ViewModel) View() engine.View { return vm.view }

// Columns returns the table column metadata.
func (vm *ViewModel) Columns() []account.Column { return vm.columns }

// Records returns the full, unfiltered account set.
func (vm *ViewModel) Records() []account.Account { return vm.store.Records() }

// Selection returns the current selection.
func (vm *ViewModel) Selection() Selection { return vm.store.Selection() }

// Criteria returns the active filter criteria.
func (vm *ViewModel) Criteria() engine.FilterCriteria { return vm.criteria }

// Sort returns the active sort spec.
func (vm *ViewModel) Sort() engine.SortSpec { return vm.sort }

// Page returns the shared page cursor.
func (vm *ViewModel) Page() pagination.Cursor { return vm.page }

// Busy reports whether a bulk update is in flight.
func (vm *ViewModel) Busy() bool { return vm.busy }
