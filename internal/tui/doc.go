// Package tui renders the account level tables in the terminal with Bubble Tea.
//
// The screen is a thin layer over viewmodel.ViewModel: keys become ViewModel
// mutators, fetches and bulk updates run as tea.Cmds off the event loop, and
// their results are applied back on the loop. Notifications raised by the
// ViewModel are shown as toasts that expire after a few seconds.
package tui
