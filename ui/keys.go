package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Freeze    key.Binding
	Live      key.Binding
	PanLeft   key.Binding
	PanRight  key.Binding
	PageLeft  key.Binding
	PageRight key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Autoscale key.Binding
	RangeIn   key.Binding
	RangeOut  key.Binding
	TimeMode  key.Binding
	CapUp     key.Binding
	CapDown   key.Binding
	Clear     key.Binding
	CSV       key.Binding
	PNG       key.Binding
	Page      key.Binding
	Up        key.Binding
	Down      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Freeze: key.NewBinding(
		key.WithKeys(" ", "f"),
		key.WithHelp("space", "freeze/resume"),
	),
	Live: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "jump to live"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "pan older"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "pan newer"),
	),
	PageLeft: key.NewBinding(
		key.WithKeys("shift+left", "H"),
		key.WithHelp("shift+←", "page older"),
	),
	PageRight: key.NewBinding(
		key.WithKeys("shift+right", "L"),
		key.WithHelp("shift+→", "page newer"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Autoscale: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "autoscale"),
	),
	RangeIn: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "narrow y range"),
	),
	RangeOut: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "widen y range"),
	),
	TimeMode: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "abs/rel time"),
	),
	CapUp: key.NewBinding(
		key.WithKeys(">"),
		key.WithHelp(">", "double capacity"),
	),
	CapDown: key.NewBinding(
		key.WithKeys("<"),
		key.WithHelp("<", "halve capacity"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear history"),
	),
	CSV: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "export csv"),
	),
	PNG: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "export png"),
	),
	Page: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "scope/channels"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev channel"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next channel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Freeze, k.ZoomIn, k.ZoomOut, k.CSV, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Freeze, k.Live, k.PanLeft, k.PanRight, k.PageLeft, k.PageRight},
		{k.ZoomIn, k.ZoomOut, k.Autoscale, k.RangeIn, k.RangeOut, k.TimeMode},
		{k.CapUp, k.CapDown, k.Clear, k.CSV, k.PNG},
		{k.Page, k.Up, k.Down, k.Help, k.Quit},
	}
}
