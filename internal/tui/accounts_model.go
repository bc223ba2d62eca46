package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/engine"
	"github.com/rshade/accountdesk/internal/logging"
	"github.com/rshade/accountdesk/internal/source"
	listview "github.com/rshade/accountdesk/internal/tui/list"
	"github.com/rshade/accountdesk/internal/viewmodel"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 40
	// chromeHeight is the space taken by everything but the two tables.
	chromeHeight = 16
	minRows      = 3
)

// accountsLoadedMsg carries the result of a fetch run off the event loop.
type accountsLoadedMsg struct {
	op      string
	records []account.Account
	err     error
}

// updateFinishedMsg carries the result of a bulk update run off the event loop.
type updateFinishedMsg struct {
	result viewmodel.UpdateResult
}

// filterInput is one text box of the filter bar.
type filterInput struct {
	field string
	label string
	input textinput.Model
}

// AccountsModel is the Bubble Tea model of the two account level tables.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AccountsModel struct {
	ctx context.Context
	src source.Source
	vm  *viewmodel.ViewModel

	state  ViewState
	tables []*listview.Model[account.Account]
	levels []account.Level
	focus  int

	filters     []filterInput
	filterFocus int
	showFilter  bool

	toasts  *toastStack
	loading *LoadingState
	status  string

	width  int
	height int
}

// NewAccountsModel creates the accounts screen over src. opts configure the
// underlying ViewModel; its notifier is replaced by the screen's toast stack
// (fanned out to the context logger).
func NewAccountsModel(ctx context.Context, src source.Source, opts ...viewmodel.Option) AccountsModel {
	toasts := newToastStack()
	logger := logging.ComponentLogger(*logging.FromContext(ctx), "tui")

	vmOpts := append([]viewmodel.Option{}, opts...)
	vmOpts = append(vmOpts, viewmodel.WithNotifier(viewmodel.MultiNotifier(
		toasts.Notifier(),
		viewmodel.LogNotifier{Logger: logger},
	)))

	m := AccountsModel{
		ctx:     ctx,
		src:     src,
		vm:      viewmodel.New(src, vmOpts...),
		state:   ViewStateLoading,
		levels:  account.Levels(),
		filters: newFilterInputs(),
		toasts:  toasts,
		loading: NewLoadingState("Loading accounts..."),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	for range m.levels {
		t := listview.New(nil, m.tableHeight(), m.renderRow)
		t.SetEmptyText(SubtleStyle.Render("(no accounts)"))
		m.tables = append(m.tables, t)
	}
	m.tables[0].Focus()

	return m
}

func newFilterInputs() []filterInput {
	defs := []struct{ field, label string }{
		{engine.FilterFieldName, "Name"},
		{engine.FilterFieldPhone, "Phone"},
		{engine.FilterFieldOwner, "Owner"},
	}
	out := make([]filterInput, len(defs))
	for i, d := range defs {
		ti := textinput.New()
		ti.Placeholder = d.label
		ti.CharLimit = 80
		ti.Width = 20
		out[i] = filterInput{field: d.field, label: d.label, input: ti}
	}
	return out
}

// ViewModel exposes the state container behind the screen.
func (m AccountsModel) ViewModel() *viewmodel.ViewModel {
	return m.vm
}

// State returns the current view state.
func (m AccountsModel) State() ViewState {
	return m.state
}

// Init starts the spinner and the initial fetch (Bubble Tea interface).
func (m AccountsModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd("load"))
}

// fetchCmd runs FetchAll or Refresh off the event loop.
func (m AccountsModel) fetchCmd(op string) tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		var (
			recs []account.Account
			err  error
		)
		if op == "refresh" {
			recs, err = src.Refresh(ctx)
		} else {
			recs, err = src.FetchAll(ctx)
		}
		return accountsLoadedMsg{op: op, records: recs, err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, t := range m.tables {
			t.SetHeight(m.tableHeight())
		}
		return m, nil
	case spinner.TickMsg:
		if m.state != ViewStateLoading && !m.vm.Busy() {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case accountsLoadedMsg:
		return m.handleLoaded(msg)
	case updateFinishedMsg:
		return m.handleUpdateFinished(msg)
	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return m, nil
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateList:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.handleListKeypress(keyMsg)
		}
		return m, nil
	case ViewStateLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && isQuitKey(keyMsg) {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, nil
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func isQuitKey(msg tea.KeyMsg) bool {
	s := msg.String()
	return s == keyQuit || s == keyCtrlC
}

func (m AccountsModel) handleLoaded(msg accountsLoadedMsg) (tea.Model, tea.Cmd) {
	m.state = ViewStateList
	if err := m.vm.ApplyFetch(m.ctx, msg.op, msg.records, msg.err); err != nil {
		m.status = ErrorStyle.Render(fmt.Sprintf("Could not %s accounts: %v", msg.op, msg.err))
	} else {
		m.status = fmt.Sprintf("%d accounts loaded", len(msg.records))
	}
	m.syncTables()
	return m, nil
}

func (m AccountsModel) handleUpdateFinished(msg updateFinishedMsg) (tea.Model, tea.Cmd) {
	err := m.vm.CompleteUpdate(m.ctx, msg.result)

	var fetchErr *viewmodel.FetchError
	switch {
	case err == nil:
		m.status = fmt.Sprintf("%d outcomes received", len(msg.result.Messages))
	case errors.As(err, &fetchErr):
		m.status = ErrorStyle.Render("Update applied, but the refresh failed: " + fetchErr.Err.Error())
	case errors.Is(err, viewmodel.ErrNoPendingUpdate):
		m.status = ""
	default:
		m.status = ErrorStyle.Render(err.Error())
	}

	m.syncTables()
	return m, m.toasts.drain()
}

func (m AccountsModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.filters[m.filterFocus].input.Blur()
			return m, nil
		case keyTab:
			m.filters[m.filterFocus].input.Blur()
			m.filterFocus = (m.filterFocus + 1) % len(m.filters)
			return m, m.filters[m.filterFocus].input.Focus()
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	f := &m.filters[m.filterFocus]
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		if err := m.vm.SetFilter(f.field, f.input.Value()); err != nil {
			m.status = ErrorStyle.Render(err.Error())
		}
		m.syncTables()
	}
	return m, cmd
}

//nolint:cyclop // One branch per key binding.
func (m AccountsModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyTab:
		m.tables[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.tables)
		m.tables[m.focus].Focus()
		return m, nil
	case keySlash:
		m.showFilter = true
		return m, m.filters[m.filterFocus].input.Focus()
	case keyEsc:
		m.clearFilters()
		return m, nil
	case keySpace:
		if acc, ok := m.tables[m.focus].Current(); ok {
			m.vm.ToggleSelection(acc.ID)
		}
		return m, nil
	case keyA:
		m.toggleSelectPage()
		return m, nil
	case keyS:
		m.cycleSort()
		return m, nil
	case keyR:
		m.reverseSort()
		return m, nil
	case keyN, keyRight:
		if m.vm.NextPage() {
			m.syncTables()
		}
		return m, nil
	case keyP, keyLeft:
		if m.vm.PrevPage() {
			m.syncTables()
		}
		return m, nil
	case keyU:
		return m.submitUpdate()
	case keyRefresh:
		m.status = "Refreshing..."
		return m, m.fetchCmd("refresh")
	default:
		m.tables[m.focus].HandleKey(keyMsg)
		return m, nil
	}
}

// submitUpdate begins a bulk update and runs it as a command.
func (m AccountsModel) submitUpdate() (tea.Model, tea.Cmd) {
	pending, err := m.vm.BeginUpdate(m.ctx)
	if err != nil {
		if errors.Is(err, viewmodel.ErrUpdateInFlight) {
			m.status = SubtleStyle.Render("An update is already running")
		}
		return m, m.toasts.drain()
	}

	m.loading.SetMessage(fmt.Sprintf("Updating %d accounts...", len(pending.IDs)))
	m.status = ""
	ctx := m.ctx
	run := func() tea.Msg {
		return updateFinishedMsg{result: pending.Run(ctx)}
	}
	return m, tea.Batch(m.loading.Init(), run)
}

// toggleSelectPage selects every row of the focused table, or clears them if
// all are already selected.
func (m *AccountsModel) toggleSelectPage() {
	rows := m.tables[m.focus].Items()
	if len(rows) == 0 {
		return
	}

	sel := m.vm.Selection()
	all := true
	for _, acc := range rows {
		if !sel.Contains(acc.ID) {
			all = false
			break
		}
	}

	ids := sel.IDs()
	if all {
		onPage := make(map[string]struct{}, len(rows))
		for _, acc := range rows {
			onPage[acc.ID] = struct{}{}
		}
		kept := ids[:0]
		for _, id := range ids {
			if _, ok := onPage[id]; !ok {
				kept = append(kept, id)
			}
		}
		ids = kept
	} else {
		for _, acc := range rows {
			ids = append(ids, acc.ID)
		}
	}
	m.vm.SetSelection(ids)
}

// sortableColumns returns the columns the user may sort by.
func (m AccountsModel) sortableColumns() []account.Column {
	var out []account.Column
	for _, c := range m.vm.Columns() {
		if c.Sortable {
			out = append(out, c)
		}
	}
	return out
}

// cycleSort advances to the next sortable column, keeping the direction.
func (m *AccountsModel) cycleSort() {
	cols := m.sortableColumns()
	if len(cols) == 0 {
		return
	}
	cur := m.vm.Sort()
	next := cols[0]
	for i, c := range cols {
		if c.FieldName == cur.Field {
			next = cols[(i+1)%len(cols)]
			break
		}
	}
	m.applySort(next.FieldName, string(cur.Direction))
}

// reverseSort flips the direction of the active sort.
func (m *AccountsModel) reverseSort() {
	cur := m.vm.Sort()
	dir := engine.Descending
	if cur.Direction == engine.Descending {
		dir = engine.Ascending
	}
	m.applySort(cur.Field, string(dir))
}

func (m *AccountsModel) applySort(field, direction string) {
	if err := m.vm.SetSort(field, direction); err != nil {
		m.status = ErrorStyle.Render(err.Error())
		return
	}
	m.syncTables()
}

func (m *AccountsModel) clearFilters() {
	if m.vm.Criteria().IsEmpty() {
		return
	}
	for i := range m.filters {
		m.filters[i].input.SetValue("")
	}
	m.vm.SetCriteria(engine.FilterCriteria{})
	m.syncTables()
}

// syncTables copies the current page of every level into its table.
func (m *AccountsModel) syncTables() {
	view := m.vm.View()
	for i, level := range m.levels {
		m.tables[i].SetItems(view.PageOf(level))
	}
}

func (m AccountsModel) tableHeight() int {
	h := (m.height - chromeHeight) / len(account.Levels())
	if h < minRows {
		return minRows
	}
	return h
}
