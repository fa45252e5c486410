package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/bizadvisor/internal/ui/msgs"
	"github.com/sadopc/bizadvisor/internal/ui/theme"
)

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	mode      msgs.AppMode
	message   string
	filled    int
	required  int
	lastSent  time.Time
	pageWidth float64
	width     int
	theme     theme.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme) StatusBar {
	return StatusBar{
		theme: t,
		mode:  msgs.ModeNormal,
	}
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a temporary status message.
func (m *StatusBar) SetMessage(text string) {
	m.message = text
}

// Message returns the current status message.
func (m StatusBar) Message() string {
	return m.message
}

// SetProgress records how many required fields are filled.
func (m *StatusBar) SetProgress(filled, required int) {
	m.filled = filled
	m.required = required
}

// SetLastSubmitted records the time of the last successful submission.
func (m *StatusBar) SetLastSubmitted(t time.Time) {
	m.lastSent = t
}

// SetPageWidth records the current layout parameter for display.
func (m *StatusBar) SetPageWidth(w float64) {
	m.pageWidth = w
}

// View renders the status bar.
func (m StatusBar) View() string {
	barStyle := lipgloss.NewStyle().
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Width(m.width)

	seg := func(fg lipgloss.Color, s string) string {
		return lipgloss.NewStyle().Foreground(fg).Background(m.theme.Surface).Render(s)
	}

	var leftParts []string
	if m.message != "" {
		leftParts = append(leftParts, seg(m.theme.Text, m.message))
	} else {
		color := m.theme.Yellow
		if m.required > 0 && m.filled == m.required {
			color = m.theme.Green
		}
		leftParts = append(leftParts, seg(color, fmt.Sprintf("%d/%d required", m.filled, m.required)))
		if !m.lastSent.IsZero() {
			leftParts = append(leftParts, seg(m.theme.Subtext, "sent "+humanize.Time(m.lastSent)))
		}
		if m.pageWidth > 0 {
			leftParts = append(leftParts, seg(m.theme.Muted, fmt.Sprintf("w=%g", m.pageWidth)))
		}
	}
	left := strings.Join(leftParts, " │ ")

	modeStr := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Background(m.theme.Surface).
		Bold(true).
		Render("[" + m.mode.String() + "]")

	hint := seg(m.theme.Muted, "?:help  Ctrl+S:submit")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(modeStr)
	rightWidth := lipgloss.Width(hint)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent+2 >= m.width {
		return barStyle.Render(" " + left + " " + modeStr + " " + hint)
	}

	remaining := m.width - totalContent - 2
	gap1 := remaining / 2
	gap2 := remaining - gap1

	line := " " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint

	return barStyle.Render(line)
}
