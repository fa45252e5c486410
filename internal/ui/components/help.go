package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/bizadvisor/internal/ui/theme"
)

type helpSection struct {
	Title    string
	Bindings []helpBinding
}

type helpBinding struct {
	Key  string
	Desc string
}

var helpSections = []helpSection{
	{
		Title: "General",
		Bindings: []helpBinding{
			{"Ctrl+C", "Quit"},
			{"?", "Toggle this help"},
			{"Ctrl+S", "Submit profile"},
			{"Ctrl+P", "Toggle record preview"},
			{"Ctrl+R", "Submission history"},
			{"Ctrl+N", "Start a new profile"},
			{"Ctrl+Y", "Copy record as JSON"},
			{"Ctrl+F", "Switch preview JSON / YAML"},
			{"PgUp / PgDn", "Scroll preview"},
		},
	},
	{
		Title: "Form",
		Bindings: []helpBinding{
			{"Tab / Shift+Tab", "Next / previous field"},
			{"↓ / ↑", "Next / previous field"},
			{"← / →", "Choose option"},
			{"a-z", "Search options"},
			{"Backspace", "Clear selection"},
			{"Enter", "Edit text / submit on button"},
			{"Esc", "Stop editing text"},
		},
	},
	{
		Title: "History",
		Bindings: []helpBinding{
			{"j / k", "Move cursor down / up"},
			{"Enter", "Load profile into form"},
			{"Esc", "Close history"},
		},
	},
}

const helpBoxWidth = 64

// Help is an overlay listing keybindings.
type Help struct {
	Visible  bool
	viewport viewport.Model
	theme    theme.Theme
	width    int
	height   int
}

// NewHelp creates a new help overlay.
func NewHelp(t theme.Theme) Help {
	return Help{theme: t}
}

// SetSize sets the terminal dimensions for centering.
func (m *Help) SetSize(w, h int) {
	m.width = w
	m.height = h
	if m.Visible {
		m.build()
	}
}

// Toggle toggles help visibility.
func (m *Help) Toggle() {
	m.Visible = !m.Visible
	if m.Visible {
		m.build()
	}
}

func (m *Help) build() {
	contentWidth := helpBoxWidth - 6

	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Bold(true).
		Width(16).
		Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	sectionStyle := lipgloss.NewStyle().Foreground(m.theme.Blue).Bold(true).MarginTop(1)
	sepStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var lines []string
	for _, section := range helpSections {
		lines = append(lines, sectionStyle.Render(section.Title))
		lines = append(lines, sepStyle.Render(strings.Repeat("─", contentWidth)))
		for _, b := range section.Bindings {
			lines = append(lines, keyStyle.Render(b.Key)+sepStyle.Render(" │ ")+descStyle.Render(b.Desc))
		}
	}

	vpHeight := m.height - 8
	if vpHeight < 10 {
		vpHeight = 10
	}
	m.viewport = viewport.New(contentWidth, vpHeight)
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// Update handles scrolling and closing. It reports closing by setting Visible
// to false; the caller restores its mode.
func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "?", "q":
			m.Visible = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the help overlay.
func (m Help) View() string {
	if !m.Visible {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(helpBoxWidth - 6).
		Align(lipgloss.Center).
		Render("Keyboard Shortcuts")

	return lipgloss.NewStyle().
		Width(helpBoxWidth).
		Background(m.theme.Surface).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Accent).
		Padding(1, 2).
		Render(title + "\n" + m.viewport.View())
}
