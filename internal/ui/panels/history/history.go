package history

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	corehistory "github.com/sadopc/bizadvisor/internal/core/history"
	"github.com/sadopc/bizadvisor/internal/ui/msgs"
	"github.com/sadopc/bizadvisor/internal/ui/theme"
)

// Model lists past submissions.
type Model struct {
	entries  []corehistory.Entry
	filtered []int // indices into entries that match the filter
	cursor   int   // index into filtered
	err      error

	width  int
	height int

	filtering   bool
	filterInput textinput.Model

	styles theme.Styles
}

// New creates an empty history panel.
func New(s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return Model{
		styles:      s,
		filterInput: ti,
	}
}

// SetEntries replaces the listed submissions, newest first.
func (m *Model) SetEntries(entries []corehistory.Entry, err error) {
	m.entries = entries
	m.err = err
	m.applyFilter()
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Len returns the number of visible entries.
func (m Model) Len() int {
	return len(m.filtered)
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (corehistory.Entry, bool) {
	if len(m.filtered) == 0 {
		return corehistory.Entry{}, false
	}
	return m.entries[m.filtered[m.cursor]], true
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.filtering
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.filterInput.Width = max(w-4, 1)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.String() {
	case "esc", "q":
		return m, func() tea.Msg { return msgs.ToggleHistoryMsg{} }
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	}

	if len(m.filtered) == 0 {
		return m, nil
	}

	switch km.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.filtered) - 1
	case "enter", "l":
		entry := m.entries[m.filtered[m.cursor]]
		return m, func() tea.Msg {
			return msgs.HistorySelectedMsg{Entry: entry}
		}
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if km.String() == "esc" {
				m.filterInput.SetValue("")
				m.applyFilter()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	return m, cmd
}

func (m *Model) applyFilter() {
	query := strings.ToLower(m.filterInput.Value())
	m.filtered = m.filtered[:0]
	for i, e := range m.entries {
		if query == "" {
			m.filtered = append(m.filtered, i)
			continue
		}
		hay := strings.ToLower(e.Record.BusinessType + " " + e.Record.TimeConsumingTasks + " " + e.Record.CurrentSoftware)
		if strings.Contains(hay, query) {
			m.filtered = append(m.filtered, i)
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	lines := []string{m.styles.Section.Render("Past submissions"), ""}

	switch {
	case m.err != nil:
		lines = append(lines, m.styles.Error.Render("  "+m.err.Error()))
	case len(m.filtered) == 0:
		lines = append(lines, m.styles.Muted.Render("  No submissions yet"))
	default:
		// Keep the cursor visible when the list is taller than the panel.
		avail := innerH - len(lines)
		if m.filtering {
			avail--
		}
		start := 0
		if avail > 0 && m.cursor >= avail {
			start = m.cursor - avail + 1
		}
		for vi := start; vi < len(m.filtered); vi++ {
			if avail > 0 && vi-start >= avail {
				break
			}
			lines = append(lines, m.renderEntry(m.entries[m.filtered[vi]], vi == m.cursor, innerW))
		}
	}

	if m.filtering {
		lines = append(lines, m.filterInput.View())
	}

	return m.styles.FocusedBox.
		Width(innerW).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderEntry(e corehistory.Entry, isCursor bool, maxWidth int) string {
	r := e.Record
	when := humanize.Time(e.SubmittedAt)
	text := r.BusinessType + " · " + r.EmployeeCount + " employees · " + r.AnnualRevenue
	line := m.styles.Normal.Render(text) + "  " + m.styles.Muted.Render(when)

	if isCursor {
		plain := text + "  " + when
		if lipgloss.Width(plain) > maxWidth {
			plain = string([]rune(plain)[:max(maxWidth-1, 0)]) + "…"
		}
		return m.styles.Selected.Width(maxWidth).Render(plain)
	}
	return line
}
