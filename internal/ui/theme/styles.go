package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	// Page frame
	Page         lipgloss.Style
	FocusedBox   lipgloss.Style
	UnfocusedBox lipgloss.Style

	// Text styles
	Heading    lipgloss.Style
	Subheading lipgloss.Style
	Section    lipgloss.Style
	Label      lipgloss.Style
	LabelFocus lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Hint       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style

	// Select
	Option         lipgloss.Style
	OptionSelected lipgloss.Style
	Placeholder    lipgloss.Style

	// Submit control
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonLoading  lipgloss.Style

	// Lists
	Selected  lipgloss.Style
	StatusBar lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	button := lipgloss.NewStyle().Padding(0, 2).Bold(true)
	return Styles{
		Page: lipgloss.NewStyle().Padding(1, 2),
		FocusedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Heading:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Subheading: lipgloss.NewStyle().Foreground(t.Subtext),
		Section:    lipgloss.NewStyle().Foreground(t.Text).Bold(true).Underline(true),
		Label:      lipgloss.NewStyle().Foreground(t.Subtext),
		LabelFocus: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Normal:     lipgloss.NewStyle().Foreground(t.Text),
		Muted:      lipgloss.NewStyle().Foreground(t.Muted),
		Hint:       lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Error:      lipgloss.NewStyle().Foreground(t.Red),
		Success:    lipgloss.NewStyle().Foreground(t.Green),

		Option:         lipgloss.NewStyle().Foreground(t.Text),
		OptionSelected: lipgloss.NewStyle().Foreground(t.Base).Background(t.Accent).Bold(true),
		Placeholder:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),

		Button:         button.Foreground(t.Base).Background(t.Green),
		ButtonFocused:  button.Foreground(t.Base).Background(t.Accent).Underline(true),
		ButtonDisabled: button.Foreground(t.Muted).Background(t.Surface),
		ButtonLoading:  button.Foreground(t.Base).Background(t.Yellow),

		Selected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Padding(0, 1),
	}
}
