// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI mirrors the three screens of the movie list client:
//  1. [AuthView] : Log in or register
//  2. [DiscoveryView] : Browse the catalog, add entries or mark them watched
//  3. [AccountView] : Manage the signed-in user's list
//
// Screen state lives in the controllers of package tasks; the [Model] only routes between them.
// Every service call runs as a [tea.Cmd] and comes back as a Msg carrying the issuing screen's mount
// id, so results for a screen that has since unmounted are dropped by its controller.
//
// Session teardown (logout or expiry on any screen) reaches the model through a subscription
// channel and always lands on the auth view.
//
// Rating/review, new-movie and delete dialogs are huh forms embedded as modal sub-models. Esc
// cancels a dialog.
package ui
