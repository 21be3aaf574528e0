package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	pagePrev key.Binding
	pageNext key.Binding
	enter    key.Binding
	back     key.Binding
	search   key.Binding
	auth     key.Binding
	logout   key.Binding
	nextIn   key.Binding
	prevIn   key.Binding
	switchTo key.Binding
	reveal   key.Binding
	play     key.Binding
	browser  key.Binding
	quit     key.Binding
	forceQ   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		pagePrev: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "scroll back")),
		pageNext: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "scroll on")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		auth:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "sign in")),
		logout:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "log out")),
		nextIn:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prevIn:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		switchTo: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch tab")),
		reveal:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "show password")),
		play:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		browser:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "open backdrop")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQ:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.enter},
		{k.search, k.auth, k.logout, k.back},
		{k.switchTo, k.reveal, k.play, k.browser, k.quit},
	}
}
