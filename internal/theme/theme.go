package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading       *lipgloss.Style
	Header        *lipgloss.Style
	UserInfo      *lipgloss.Style
	DayHeader     *lipgloss.Style
	DaySelected   *lipgloss.Style
	Entry         *lipgloss.Style
	EntrySelected *lipgloss.Style
	Total         *lipgloss.Style
	Error         *lipgloss.Style
	Warning       *lipgloss.Style
	Info          *lipgloss.Style
	Footer        *lipgloss.Style
	FormLabel     *lipgloss.Style
	FormFocused   *lipgloss.Style
	FormValue     *lipgloss.Style
	PanelTitle    *lipgloss.Style
	PanelBody     *lipgloss.Style
	Confirm       *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	UserInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	DayHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
	),
	DaySelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Entry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	EntrySelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Total: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Warning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	FormLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	FormFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	FormValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Confirm: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
