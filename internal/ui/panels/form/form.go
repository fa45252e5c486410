package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/bizadvisor/internal/core/profile"
	"github.com/sadopc/bizadvisor/internal/ui/components"
	"github.com/sadopc/bizadvisor/internal/ui/layout"
	"github.com/sadopc/bizadvisor/internal/ui/msgs"
	"github.com/sadopc/bizadvisor/internal/ui/theme"
)

const (
	submitIdle    = "Get AI Recommendations"
	submitLoading = "Generating Recommendations..."
	sectionTitle  = "Tell us about your business"

	// pairBreakpoint is the page width at which dropdowns sit two per row.
	pairBreakpoint = 60
)

// SubmitFunc receives the record when the user submits. The returned command
// is handed back to Bubble Tea; the form never inspects it.
type SubmitFunc func(profile.Record) tea.Cmd

func areaIndex(f profile.Field) int {
	return int(f - profile.TimeConsumingTasks)
}

// focusSubmit is the focus slot after the six fields.
var focusSubmit = len(profile.Fields)

// Model is the business profile form.
type Model struct {
	state profile.FormState

	// Dropdowns are indexed by field, text areas by field - TimeConsumingTasks.
	selects [4]components.Select
	areas   [2]textarea.Model

	focus   int
	editing bool
	loading bool

	onSubmit SubmitFunc
	tracker  *layout.Tracker
	spinner  spinner.Model

	cols   int
	height int
	theme  theme.Theme
	styles theme.Styles
}

// New creates an empty form and mounts its width tracker on src.
func New(src layout.Source, params layout.Params, onSubmit SubmitFunc, t theme.Theme, s theme.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Base)

	m := Model{
		onSubmit: onSubmit,
		tracker:  layout.NewTracker(params),
		spinner:  sp,
		theme:    t,
		styles:   s,
	}

	for _, f := range profile.Fields {
		if f.FreeText() {
			ta := textarea.New()
			ta.Placeholder = f.Placeholder()
			ta.ShowLineNumbers = false
			ta.CharLimit = 0
			ta.SetHeight(3)
			if f == profile.CurrentSoftware {
				ta.SetHeight(2)
			}
			m.areas[areaIndex(f)] = ta
			continue
		}
		m.selects[f] = components.NewSelect(f.Options(), f.Placeholder(), s)
	}

	m.tracker.Mount(src)
	m.applyWidth()
	return m
}

// Unmount releases the resize listener. Safe to call more than once.
func (m Model) Unmount() {
	m.tracker.Unmount()
}

// Mounted reports whether the form is still tracking viewport resizes.
func (m Model) Mounted() bool {
	return m.tracker.Mounted()
}

// PageWidth returns the current layout parameter.
func (m Model) PageWidth() float64 {
	return m.tracker.Width()
}

// Columns returns the rendered page width in terminal columns.
func (m Model) Columns() int {
	return m.cols
}

// State returns a copy of the current form values.
func (m Model) State() profile.FormState {
	return m.state
}

// Record returns the six-field record for the current values.
func (m Model) Record() profile.Record {
	return m.state.Record()
}

// Heading returns the page title.
func (m Model) Heading() string {
	return m.state.Heading()
}

// Subheading returns the line under the title.
func (m Model) Subheading() string {
	return m.state.Subheading()
}

// IsSubmittable reports whether every required field is filled.
func (m Model) IsSubmittable() bool {
	return m.state.IsSubmittable()
}

// Loading reports the externally controlled in-flight flag.
func (m Model) Loading() bool {
	return m.loading
}

// CanSubmit reports whether the submit control is enabled.
func (m Model) CanSubmit() bool {
	return !m.loading && m.state.IsSubmittable()
}

// Editing reports whether a text area has keyboard focus.
func (m Model) Editing() bool {
	return m.editing
}

// FocusedField returns the focused field, or false when the submit control
// has focus.
func (m Model) FocusedField() (profile.Field, bool) {
	if m.focus == focusSubmit {
		return 0, false
	}
	return profile.Fields[m.focus], true
}

// SetField sets a field by its record key. Values are not validated.
func (m *Model) SetField(name, value string) error {
	f, err := profile.ParseField(name)
	if err != nil {
		return err
	}
	m.set(f, value)
	return nil
}

// Set sets a field value. Values are not validated.
func (m *Model) Set(f profile.Field, value string) {
	m.set(f, value)
}

func (m *Model) set(f profile.Field, value string) {
	m.state.Set(f, value)
	if f.FreeText() {
		m.areas[areaIndex(f)].SetValue(value)
		return
	}
	m.selects[f].SetValue(value)
}

// Load replaces every field with the record's values.
func (m *Model) Load(r profile.Record) {
	s := profile.FromRecord(r)
	for _, f := range profile.Fields {
		m.set(f, s.Get(f))
	}
}

// Reset clears every field and moves focus to the first one.
func (m *Model) Reset() {
	for _, f := range profile.Fields {
		m.set(f, "")
	}
	m.blurArea()
	m.focus = 0
}

// SetLoading applies the caller's in-flight flag. While loading the submit
// control is disabled and shows a spinner.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// Submit hands the record to the submit handler when the control is enabled.
// When disabled it does nothing and returns nil.
func (m Model) Submit() tea.Cmd {
	if !m.CanSubmit() || m.onSubmit == nil {
		return nil
	}
	return m.onSubmit(m.state.Record())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.applyWidth()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case msgs.SubmitMsg:
		return m, m.Submit()

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg)
	}

	if m.editing {
		i := areaIndex(profile.Fields[m.focus])
		var cmd tea.Cmd
		m.areas[i], cmd = m.areas[i].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		if m.focus == focusSubmit {
			return m, m.Submit()
		}
		f := profile.Fields[m.focus]
		if f.FreeText() {
			return m, m.focusArea()
		}
		m.moveFocus(1)
		return m, nil
	}

	if m.focus == focusSubmit {
		return m, nil
	}

	f := profile.Fields[m.focus]
	if f.FreeText() {
		// Typing on a text field starts editing it.
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			focusCmd := m.focusArea()
			var editCmd tea.Cmd
			m, editCmd = m.updateEditing(msg)
			return m, tea.Batch(focusCmd, editCmd)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.selects[f], cmd = m.selects[f].Update(msg)
	return m, tea.Batch(cmd, m.sync(f, m.selects[f].Value()))
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurArea()
		return m, nil
	case "tab":
		m.blurArea()
		m.moveFocus(1)
		return m, nil
	case "shift+tab":
		m.blurArea()
		m.moveFocus(-1)
		return m, nil
	}

	f := profile.Fields[m.focus]
	i := areaIndex(f)
	var cmd tea.Cmd
	m.areas[i], cmd = m.areas[i].Update(msg)
	return m, tea.Batch(cmd, m.sync(f, m.areas[i].Value()))
}

// sync copies a widget value into the form state and reports the change.
func (m *Model) sync(f profile.Field, value string) tea.Cmd {
	if m.state.Get(f) == value {
		return nil
	}
	m.state.Set(f, value)
	return func() tea.Msg {
		return msgs.FieldChangedMsg{Field: f, Value: value}
	}
}

func (m *Model) moveFocus(delta int) {
	n := focusSubmit + 1
	m.focus = (m.focus + delta + n) % n
}

func (m *Model) focusArea() tea.Cmd {
	cmd := m.areas[areaIndex(profile.Fields[m.focus])].Focus()
	m.editing = true
	return cmd
}

func (m *Model) blurArea() {
	if !m.editing {
		return
	}
	m.areas[areaIndex(profile.Fields[m.focus])].Blur()
	m.editing = false
}

func (m *Model) applyWidth() {
	m.cols = m.tracker.Columns()
	inner := m.cols - 4
	if inner < 10 {
		inner = 10
	}
	for i := range m.areas {
		m.areas[i].SetWidth(inner)
	}
}

// View renders the form at the current page width.
func (m Model) View() string {
	w := m.cols
	var b strings.Builder

	b.WriteString(m.styles.Heading.Render(m.state.Heading()))
	b.WriteString("\n")
	b.WriteString(m.styles.Subheading.Render(m.state.Subheading()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Section.Render(sectionTitle))
	b.WriteString("\n\n")

	dropdowns := []profile.Field{profile.BusinessType, profile.EmployeeCount, profile.AnnualRevenue, profile.BudgetForAI}
	if w >= pairBreakpoint {
		half := (w - 2) / 2
		for i := 0; i < len(dropdowns); i += 2 {
			left := m.renderField(dropdowns[i], half)
			right := m.renderField(dropdowns[i+1], half)
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
			b.WriteString("\n")
		}
	} else {
		for _, f := range dropdowns {
			b.WriteString(m.renderField(f, w))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderField(profile.TimeConsumingTasks, w))
	b.WriteString("\n")
	b.WriteString(m.renderField(profile.CurrentSoftware, w))
	b.WriteString("\n\n")
	b.WriteString(m.renderSubmit())

	if missing := m.state.Missing(); len(missing) > 0 && !m.loading {
		labels := make([]string, len(missing))
		for i, f := range missing {
			labels[i] = f.Label()
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Hint.Width(w).Render("Still needed: " + strings.Join(labels, ", ")))
	}

	return lipgloss.NewStyle().Width(w).Render(b.String())
}

func (m Model) renderField(f profile.Field, width int) string {
	focused := m.focus < focusSubmit && profile.Fields[m.focus] == f

	label := f.Label()
	if f.Required() {
		label += " *"
	}
	labelStyle := m.styles.Label
	if focused {
		labelStyle = m.styles.LabelFocus
	}
	out := labelStyle.Render(label) + "\n"

	if !f.FreeText() {
		return out + m.selects[f].View(focused, width)
	}

	box := m.styles.UnfocusedBox
	if focused {
		box = m.styles.FocusedBox
	}
	out += box.Width(width - 2).Render(m.areas[areaIndex(f)].View())
	if focused && !m.editing {
		out += "\n" + m.styles.Hint.Render("enter or start typing to edit")
	}
	return out
}

func (m Model) renderSubmit() string {
	focused := m.focus == focusSubmit
	switch {
	case m.loading:
		return m.styles.ButtonLoading.Render(m.spinner.View() + " " + submitLoading)
	case !m.state.IsSubmittable():
		return m.styles.ButtonDisabled.Render(submitIdle)
	case focused:
		return m.styles.ButtonFocused.Render("▶ " + submitIdle)
	default:
		return m.styles.Button.Render(submitIdle)
	}
}
