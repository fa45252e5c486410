package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/sadopc/bizadvisor/internal/ui/theme"
)

// Select is a dropdown over a fixed list of options. The empty value is the
// placeholder and is always reachable by cycling.
type Select struct {
	options     []string
	value       string
	placeholder string
	query       string
	styles      theme.Styles
}

// NewSelect creates a select with no value chosen.
func NewSelect(options []string, placeholder string, s theme.Styles) Select {
	return Select{
		options:     options,
		placeholder: placeholder,
		styles:      s,
	}
}

// Value returns the chosen option, or "" when nothing is chosen.
func (m Select) Value() string {
	return m.value
}

// SetValue sets the value directly. Values outside the option list are kept
// as-is; the select never validates.
func (m *Select) SetValue(v string) {
	m.value = v
	m.query = ""
}

// Clear resets the select to its placeholder.
func (m *Select) Clear() {
	m.SetValue("")
}

// Options returns the option list.
func (m Select) Options() []string {
	return m.options
}

// Query returns the pending fuzzy-jump query.
func (m Select) Query() string {
	return m.query
}

// index returns the position of the value in the cycle [placeholder, options...].
func (m Select) index() int {
	if m.value == "" {
		return 0
	}
	for i, o := range m.options {
		if o == m.value {
			return i + 1
		}
	}
	return 0
}

// CycleNext moves to the next option, wrapping through the placeholder.
func (m *Select) CycleNext() {
	n := len(m.options) + 1
	m.setIndex((m.index() + 1) % n)
}

// CyclePrev moves to the previous option, wrapping through the placeholder.
func (m *Select) CyclePrev() {
	n := len(m.options) + 1
	m.setIndex((m.index() - 1 + n) % n)
}

func (m *Select) setIndex(i int) {
	m.query = ""
	if i == 0 {
		m.value = ""
		return
	}
	m.value = m.options[i-1]
}

// Jump selects the best fuzzy match for query. It reports whether anything
// matched; on no match the value is unchanged.
func (m *Select) Jump(query string) bool {
	if query == "" {
		return false
	}
	matches := fuzzy.Find(query, m.options)
	if len(matches) == 0 {
		return false
	}
	m.value = m.options[matches[0].Index]
	return true
}

// Init implements tea.Model.
func (m Select) Init() tea.Cmd {
	return nil
}

// Update handles keys while the select is focused.
func (m Select) Update(msg tea.Msg) (Select, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.Type {
	case tea.KeyRight:
		m.CycleNext()
		return m, nil
	case tea.KeyLeft:
		m.CyclePrev()
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		if m.query != "" {
			r := []rune(m.query)
			m.query = string(r[:len(r)-1])
			m.Jump(m.query)
			return m, nil
		}
		m.Clear()
		return m, nil
	case tea.KeyEsc:
		m.query = ""
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		q := m.query + string(km.Runes)
		if km.Type == tea.KeySpace {
			q = m.query + " "
		}
		if m.Jump(q) {
			m.query = q
		}
		return m, nil
	}
	return m, nil
}

// View renders the select at the given width.
func (m Select) View(focused bool, width int) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}

	var text string
	if m.value == "" {
		text = m.styles.Placeholder.Render(truncate(m.placeholder, inner-2))
	} else {
		text = m.styles.Normal.Render(truncate(m.value, inner-2))
	}
	pad := inner - 2 - lipgloss.Width(text)
	if pad < 0 {
		pad = 0
	}
	line := text + strings.Repeat(" ", pad) + " ▾"

	box := m.styles.UnfocusedBox
	if focused {
		box = m.styles.FocusedBox
	}
	out := box.Width(inner + 2).Render(line)

	if focused {
		hint := "←/→ choose · type to search · backspace clear"
		if m.query != "" {
			hint = "search: " + m.query
		}
		out += "\n" + m.styles.Hint.Render(truncate(hint, width))
	}
	return out
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
