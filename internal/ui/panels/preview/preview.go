package preview

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/sadopc/bizadvisor/internal/core/profile"
	"github.com/sadopc/bizadvisor/internal/ui/theme"
)

// Format selects how the record is rendered.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Model shows the record that a submit would send.
type Model struct {
	viewport viewport.Model
	record   profile.Record
	format   Format
	styles   theme.Styles
	width    int
	height   int
}

// New creates an empty preview.
func New(s theme.Styles) Model {
	return Model{
		viewport: viewport.New(0, 0),
		styles:   s,
	}
}

// SetRecord replaces the previewed record.
func (m *Model) SetRecord(r profile.Record) {
	m.record = r
	m.render()
}

// Record returns the previewed record.
func (m Model) Record() profile.Record {
	return m.record
}

// Format returns the current output format.
func (m Model) Format() Format {
	return m.format
}

// SetSize updates the viewport dimensions. Two lines are kept for the title.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h-2, 1)
	m.render()
}

// Source returns the unhighlighted document for the current format.
func (m Model) Source() string {
	src, _ := encode(m.record, m.format)
	return src
}

func (m *Model) render() {
	src, lexer := encode(m.record, m.format)
	m.viewport.SetContent(highlight(src, lexer))
}

func encode(r profile.Record, f Format) (string, string) {
	if f == FormatYAML {
		data, err := yaml.Marshal(r)
		if err != nil {
			return err.Error(), "text"
		}
		return string(data), "yaml"
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err.Error(), "text"
	}
	return string(pretty.Pretty(data)), "json"
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "f", "ctrl+f":
			if m.format == FormatJSON {
				m.format = FormatYAML
			} else {
				m.format = FormatJSON
			}
			m.render()
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := m.styles.Section.Render("Submission preview") + " " +
		m.styles.Muted.Render("("+m.format.String()+", f to switch)")

	status := m.styles.Success.Render("ready to submit")
	if missing := profile.FromRecord(m.record).Missing(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, f := range missing {
			labels[i] = f.Key()
		}
		status = m.styles.Error.Render("missing: " + strings.Join(labels, ", "))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status)
	return header + "\n\n" + m.viewport.View()
}

// highlight applies chroma syntax highlighting to source.
func highlight(source, lexerName string) string {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return buf.String()
}
