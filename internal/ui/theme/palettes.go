package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMocha is the default dark theme.
var CatppuccinMocha = Theme{
	Name:    "Catppuccin Mocha",
	Base:    lipgloss.Color("#1e1e2e"),
	Surface: lipgloss.Color("#313244"),
	Overlay: lipgloss.Color("#45475a"),

	Text:    lipgloss.Color("#cdd6f4"),
	Subtext: lipgloss.Color("#a6adc8"),
	Muted:   lipgloss.Color("#585b70"),

	Accent: lipgloss.Color("#cba6f7"),
	Red:    lipgloss.Color("#f38ba8"),
	Green:  lipgloss.Color("#a6e3a1"),
	Yellow: lipgloss.Color("#f9e2af"),
	Blue:   lipgloss.Color("#89b4fa"),
	Teal:   lipgloss.Color("#94e2d5"),

	BorderFocused:   lipgloss.Color("#cba6f7"),
	BorderUnfocused: lipgloss.Color("#585b70"),
}

var CatppuccinLatte = Theme{
	Name:    "Catppuccin Latte",
	Base:    lipgloss.Color("#eff1f5"),
	Surface: lipgloss.Color("#ccd0da"),
	Overlay: lipgloss.Color("#9ca0b0"),

	Text:    lipgloss.Color("#4c4f69"),
	Subtext: lipgloss.Color("#6c6f85"),
	Muted:   lipgloss.Color("#8c8fa1"),

	Accent: lipgloss.Color("#8839ef"),
	Red:    lipgloss.Color("#d20f39"),
	Green:  lipgloss.Color("#40a02b"),
	Yellow: lipgloss.Color("#df8e1d"),
	Blue:   lipgloss.Color("#1e66f5"),
	Teal:   lipgloss.Color("#179299"),

	BorderFocused:   lipgloss.Color("#8839ef"),
	BorderUnfocused: lipgloss.Color("#8c8fa1"),
}

var Nord = Theme{
	Name:    "Nord",
	Base:    lipgloss.Color("#2e3440"),
	Surface: lipgloss.Color("#3b4252"),
	Overlay: lipgloss.Color("#434c5e"),

	Text:    lipgloss.Color("#eceff4"),
	Subtext: lipgloss.Color("#d8dee9"),
	Muted:   lipgloss.Color("#4c566a"),

	Accent: lipgloss.Color("#88c0d0"),
	Red:    lipgloss.Color("#bf616a"),
	Green:  lipgloss.Color("#a3be8c"),
	Yellow: lipgloss.Color("#ebcb8b"),
	Blue:   lipgloss.Color("#5e81ac"),
	Teal:   lipgloss.Color("#8fbcbb"),

	BorderFocused:   lipgloss.Color("#88c0d0"),
	BorderUnfocused: lipgloss.Color("#4c566a"),
}

var Dracula = Theme{
	Name:    "Dracula",
	Base:    lipgloss.Color("#282a36"),
	Surface: lipgloss.Color("#44475a"),
	Overlay: lipgloss.Color("#6272a4"),

	Text:    lipgloss.Color("#f8f8f2"),
	Subtext: lipgloss.Color("#d0d0d0"),
	Muted:   lipgloss.Color("#6272a4"),

	Accent: lipgloss.Color("#bd93f9"),
	Red:    lipgloss.Color("#ff5555"),
	Green:  lipgloss.Color("#50fa7b"),
	Yellow: lipgloss.Color("#f1fa8c"),
	Blue:   lipgloss.Color("#6272a4"),
	Teal:   lipgloss.Color("#8be9fd"),

	BorderFocused:   lipgloss.Color("#bd93f9"),
	BorderUnfocused: lipgloss.Color("#6272a4"),
}

var GruvboxDark = Theme{
	Name:    "Gruvbox Dark",
	Base:    lipgloss.Color("#282828"),
	Surface: lipgloss.Color("#3c3836"),
	Overlay: lipgloss.Color("#504945"),

	Text:    lipgloss.Color("#ebdbb2"),
	Subtext: lipgloss.Color("#d5c4a1"),
	Muted:   lipgloss.Color("#665c54"),

	Accent: lipgloss.Color("#d79921"),
	Red:    lipgloss.Color("#cc241d"),
	Green:  lipgloss.Color("#98971a"),
	Yellow: lipgloss.Color("#d79921"),
	Blue:   lipgloss.Color("#458588"),
	Teal:   lipgloss.Color("#689d6a"),

	BorderFocused:   lipgloss.Color("#d79921"),
	BorderUnfocused: lipgloss.Color("#665c54"),
}
