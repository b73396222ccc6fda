package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	next    key.Binding
	toggle  key.Binding
	tab     key.Binding
	add     key.Binding
	watched key.Binding
	create  key.Binding
	status  key.Binding
	review  key.Binding
	remove  key.Binding
	filter  key.Binding
	search  key.Binding
	refresh key.Binding
	login   key.Binding
	logout  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		next:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		toggle:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch screen")),
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to list")),
		watched: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "mark watched")),
		create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new movie")),
		status:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle status")),
		review:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "review")),
		remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		refresh: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "reload")),
		login:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log in")),
		logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.add, k.watched, k.tab},
		{k.create, k.status, k.review, k.remove},
		{k.filter, k.search, k.refresh, k.logout, k.quit},
	}
}
