package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	purple = "#7D56F4"
	green  = "#04B575"
	red    = "#FF0000"
	orange = "#FFA500"
	gray   = "#626262"
	gold   = "#FFD700"
)

var styles = NewPalette(purple, green, red, orange, gray)

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	stars lipgloss.Style
	tab   lipgloss.Style
	badge lipgloss.Style
}

var _ Painter = (*Palette)(nil)

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		stars: NewStyle(gold),
		tab:   NewBold("#FFFFFF").Background(lipgloss.Color(t)).Padding(0, 1),
		badge: NewStyle(h).Padding(0, 1),
	}
}

func (p *Palette) On(s string, bg lipgloss.Color) string {
	return lipgloss.NewStyle().Background(bg).Render(s)
}

func (p *Palette) As(s string, fg lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(fg).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// dialogTheme returns the [huh.Theme] used by every modal, matched to the palette.
func dialogTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = NewBold(purple).MarginBottom(1)
	t.Group.Description = NewEm(gray).MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color(purple))
	t.Focused.Title = NewBold(purple)
	t.Focused.Description = NewStyle(gray)
	t.Focused.ErrorIndicator = NewStyle(red).SetString(" *")
	t.Focused.ErrorMessage = NewStyle(red)
	t.Focused.SelectSelector = NewStyle(purple).SetString("> ")
	t.Focused.SelectedOption = NewBold(green)
	t.Focused.TextInput.Cursor = NewStyle(purple)
	t.Focused.TextInput.Placeholder = NewStyle(gray)
	t.Focused.TextInput.Prompt = NewStyle(purple)
	t.Focused.FocusedButton = NewBold("#FFFFFF").
		Background(lipgloss.Color(purple)).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = NewStyle(gray).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = NewStyle(gray)
	t.Blurred.SelectSelector = NewStyle(gray).SetString("  ")

	return t
}
