package form

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/bizadvisor/internal/core/profile"
	"github.com/sadopc/bizadvisor/internal/ui/layout"
	"github.com/sadopc/bizadvisor/internal/ui/msgs"
	"github.com/sadopc/bizadvisor/internal/ui/theme"
	"github.com/sadopc/bizadvisor/internal/ui/viewport"
)

// recorder counts submit callback invocations.
type recorder struct {
	calls   int
	records []profile.Record
}

func (r *recorder) submit(rec profile.Record) tea.Cmd {
	r.calls++
	r.records = append(r.records, rec)
	return nil
}

func newTestForm(t *testing.T, width int) (Model, *viewport.Viewport, *recorder) {
	t.Helper()
	th := theme.Default()
	v := viewport.New(width, 40)
	rec := &recorder{}
	m := New(v, layout.DefaultParams(), rec.submit, th, theme.NewStyles(th))
	t.Cleanup(m.Unmount)
	return m, v, rec
}

func fillRequired(t *testing.T, m *Model) {
	t.Helper()
	values := map[string]string{
		"businessType":       "Retail",
		"employeeCount":      "1-5",
		"annualRevenue":      "Under $100k",
		"budgetForAI":        "Under $1k",
		"timeConsumingTasks": "invoicing",
	}
	for k, v := range values {
		if err := m.SetField(k, v); err != nil {
			t.Fatalf("SetField(%q) error: %v", k, err)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestNew_EmptyAndMounted(t *testing.T) {
	m, v, _ := newTestForm(t, 1000)

	if m.Record() != (profile.Record{}) {
		t.Fatalf("new form should be empty, got %+v", m.Record())
	}
	if m.CanSubmit() {
		t.Fatal("empty form should not be submittable")
	}
	if !m.Mounted() {
		t.Fatal("form should be mounted after New")
	}
	if v.ListenerCount() != 1 {
		t.Fatalf("ListenerCount() = %d, want 1", v.ListenerCount())
	}
}

func TestPageWidth_TracksViewport(t *testing.T) {
	m, v, _ := newTestForm(t, 1000)
	if got := m.PageWidth(); got != 600 {
		t.Fatalf("PageWidth() = %v, want 600", got)
	}

	v.Resize(2000, 40)
	if got := m.PageWidth(); got != 1024 {
		t.Fatalf("PageWidth() after resize = %v, want 1024", got)
	}
}

func TestUnmount_ReleasesListener(t *testing.T) {
	m, v, _ := newTestForm(t, 1000)

	m.Unmount()
	m.Unmount()

	if v.ListenerCount() != 0 {
		t.Fatalf("ListenerCount() after unmount = %d, want 0", v.ListenerCount())
	}
	v.Resize(2000, 40)
	if got := m.PageWidth(); got != 600 {
		t.Fatalf("PageWidth() changed after unmount: %v", got)
	}
}

func TestRemountedFormsDoNotLeakListeners(t *testing.T) {
	th := theme.Default()
	v := viewport.New(120, 40)
	for i := 0; i < 5; i++ {
		m := New(v, layout.DefaultParams(), nil, th, theme.NewStyles(th))
		m.Unmount()
	}
	if v.ListenerCount() != 0 {
		t.Fatalf("ListenerCount() = %d, want 0", v.ListenerCount())
	}
}

func TestCanSubmit_RequiredCombinations(t *testing.T) {
	required := []profile.Field{
		profile.BusinessType, profile.EmployeeCount, profile.AnnualRevenue,
		profile.BudgetForAI, profile.TimeConsumingTasks,
	}

	for mask := 0; mask < 1<<len(required); mask++ {
		for _, software := range []string{"", "Excel"} {
			m, _, _ := newTestForm(t, 120)
			for i, f := range required {
				if mask&(1<<i) != 0 {
					m.Set(f, "x")
				}
			}
			m.Set(profile.CurrentSoftware, software)

			want := mask == 1<<len(required)-1
			if got := m.CanSubmit(); got != want {
				t.Fatalf("mask=%05b software=%q: CanSubmit() = %v, want %v", mask, software, got, want)
			}
		}
	}
}

func TestHeading_FollowsBusinessType(t *testing.T) {
	m, _, _ := newTestForm(t, 200)

	if !strings.Contains(m.View(), "Small Business AI Advisor") {
		t.Fatal("generic heading missing")
	}

	m.Set(profile.BusinessType, "Construction")
	view := m.View()
	if !strings.Contains(view, "AI Advisor for Construction") {
		t.Fatal("heading should include the business type")
	}
	if !strings.Contains(view, "your Construction business") {
		t.Fatal("subheading should include the business type")
	}

	m.Set(profile.BusinessType, "")
	if m.Heading() != "Small Business AI Advisor" {
		t.Fatalf("Heading() after clear = %q", m.Heading())
	}
}

func TestSubmit_InvokesCallbackOnceWithRecord(t *testing.T) {
	m, _, rec := newTestForm(t, 120)
	fillRequired(t, &m)

	m.Submit()

	if rec.calls != 1 {
		t.Fatalf("callback called %d times, want 1", rec.calls)
	}
	want := profile.Record{
		BusinessType:       "Retail",
		EmployeeCount:      "1-5",
		AnnualRevenue:      "Under $100k",
		BudgetForAI:        "Under $1k",
		TimeConsumingTasks: "invoicing",
		CurrentSoftware:    "",
	}
	if rec.records[0] != want {
		t.Fatalf("record = %+v, want %+v", rec.records[0], want)
	}
}

func TestSubmit_IncompleteDoesNothing(t *testing.T) {
	m, _, rec := newTestForm(t, 120)
	fillRequired(t, &m)
	m.Set(profile.BudgetForAI, "")

	if cmd := m.Submit(); cmd != nil {
		t.Fatal("Submit() on incomplete form should return nil")
	}
	if rec.calls != 0 {
		t.Fatalf("callback called %d times, want 0", rec.calls)
	}
}

func TestSubmit_BlockedWhileLoading(t *testing.T) {
	m, _, rec := newTestForm(t, 120)
	fillRequired(t, &m)

	if cmd := m.SetLoading(true); cmd == nil {
		t.Fatal("SetLoading(true) should start the spinner")
	}
	if m.CanSubmit() {
		t.Fatal("CanSubmit() should be false while loading")
	}

	m.Submit()
	m, _ = m.Update(msgs.SubmitMsg{})
	m.focus = focusSubmit
	m, _ = m.Update(key(tea.KeyEnter))

	if rec.calls != 0 {
		t.Fatalf("callback called %d times while loading, want 0", rec.calls)
	}
	if !strings.Contains(m.View(), "Generating Recommendations...") {
		t.Fatal("loading label missing")
	}

	m.SetLoading(false)
	m.Submit()
	if rec.calls != 1 {
		t.Fatalf("callback called %d times after loading cleared, want 1", rec.calls)
	}
}

func TestSubmitMsg(t *testing.T) {
	m, _, rec := newTestForm(t, 120)
	fillRequired(t, &m)

	m, _ = m.Update(msgs.SubmitMsg{})
	if rec.calls != 1 {
		t.Fatalf("callback called %d times, want 1", rec.calls)
	}
}

func TestSetField_UnknownName(t *testing.T) {
	m, _, _ := newTestForm(t, 120)
	if err := m.SetField("phone", "555"); err == nil {
		t.Fatal("SetField(unknown) should error")
	}
}

func TestKeys_SelectAndType(t *testing.T) {
	m, _, rec := newTestForm(t, 120)

	// Business type: fuzzy search.
	for _, r := range "Salon" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	if got := m.State().Get(profile.BusinessType); got != "Salon/Spa" {
		t.Fatalf("BusinessType = %q, want Salon/Spa", got)
	}

	// Employee count: arrow through options.
	m, _ = m.Update(key(tea.KeyTab))
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyRight))
	if got := m.State().Get(profile.EmployeeCount); got != "6-10" {
		t.Fatalf("EmployeeCount = %q, want 6-10", got)
	}

	m, _ = m.Update(key(tea.KeyTab))
	m, _ = m.Update(key(tea.KeyRight))
	m, _ = m.Update(key(tea.KeyTab))
	m, _ = m.Update(key(tea.KeyLeft))
	if got := m.State().Get(profile.BudgetForAI); got != "$25k+" {
		t.Fatalf("BudgetForAI = %q, want $25k+", got)
	}

	// Tasks: typing starts editing.
	m, _ = m.Update(key(tea.KeyTab))
	for _, r := range "payroll" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	if !m.Editing() {
		t.Fatal("typing on a text field should enter editing")
	}
	if got := m.State().Get(profile.TimeConsumingTasks); got != "payroll" {
		t.Fatalf("TimeConsumingTasks = %q, want payroll", got)
	}

	// Esc leaves the text area; tab twice reaches the submit control.
	m, _ = m.Update(key(tea.KeyEsc))
	if m.Editing() {
		t.Fatal("esc should stop editing")
	}
	m, _ = m.Update(key(tea.KeyTab))
	m, _ = m.Update(key(tea.KeyTab))
	if _, ok := m.FocusedField(); ok {
		t.Fatal("submit control should be focused")
	}

	m, _ = m.Update(key(tea.KeyEnter))
	if rec.calls != 1 {
		t.Fatalf("callback called %d times, want 1", rec.calls)
	}
	if rec.records[0].CurrentSoftware != "" {
		t.Fatalf("CurrentSoftware = %q, want empty", rec.records[0].CurrentSoftware)
	}
}

func TestKeys_FocusWraps(t *testing.T) {
	m, _, _ := newTestForm(t, 120)

	m, _ = m.Update(key(tea.KeyShiftTab))
	if _, ok := m.FocusedField(); ok {
		t.Fatal("shift+tab from first field should wrap to submit")
	}
	m, _ = m.Update(key(tea.KeyTab))
	if f, ok := m.FocusedField(); !ok || f != profile.BusinessType {
		t.Fatalf("tab from submit should wrap to business type, got %v %v", f, ok)
	}
}

func TestLoadAndReset(t *testing.T) {
	m, _, _ := newTestForm(t, 120)
	rec := profile.Record{
		BusinessType:       "Manufacturing",
		EmployeeCount:      "51-100",
		AnnualRevenue:      "$5M+",
		BudgetForAI:        "$10k-$25k",
		TimeConsumingTasks: "inventory",
		CurrentSoftware:    "SAP",
	}

	m.Load(rec)
	if m.Record() != rec {
		t.Fatalf("Record() = %+v, want %+v", m.Record(), rec)
	}
	if !strings.Contains(m.View(), "SAP") {
		t.Fatal("loaded text should render in its text area")
	}

	m.Reset()
	if m.Record() != (profile.Record{}) {
		t.Fatalf("Record() after Reset = %+v", m.Record())
	}
	if f, ok := m.FocusedField(); !ok || f != profile.BusinessType {
		t.Fatal("Reset should focus the first field")
	}
}

func TestEditing_KeepsLongText(t *testing.T) {
	m, _, rec := newTestForm(t, 120)
	long := strings.Repeat("a", 2500)
	m.Load(profile.Record{
		BusinessType:       "Retail",
		EmployeeCount:      "1-5",
		AnnualRevenue:      "Under $100k",
		BudgetForAI:        "Under $1k",
		TimeConsumingTasks: long,
	})

	for i := 0; i < 4; i++ {
		m, _ = m.Update(key(tea.KeyTab))
	}
	if f, ok := m.FocusedField(); !ok || f != profile.TimeConsumingTasks {
		t.Fatalf("focused %v %v, want timeConsumingTasks", f, ok)
	}
	m, _ = m.Update(keyRunes("b"))

	want := long + "b"
	if got := m.State().Get(profile.TimeConsumingTasks); got != want {
		t.Fatalf("TimeConsumingTasks has %d chars after edit, want %d", len(got), len(want))
	}
	m.Submit()
	if rec.calls != 1 {
		t.Fatalf("callback called %d times, want 1", rec.calls)
	}
	if got := rec.records[0].TimeConsumingTasks; got != want {
		t.Fatalf("submitted %d chars, want %d", len(got), len(want))
	}
}

func TestView_NarrowStacksDropdowns(t *testing.T) {
	m, _, _ := newTestForm(t, 80) // 48 columns
	view := m.View()
	for _, f := range profile.Fields {
		if !strings.Contains(view, f.Label()) {
			t.Fatalf("view missing label %q", f.Label())
		}
	}
	if !strings.Contains(view, "Still needed") {
		t.Fatal("empty form should list missing fields")
	}
}

func TestFieldChangedMsg(t *testing.T) {
	m, _, _ := newTestForm(t, 120)

	_, cmd := m.Update(key(tea.KeyRight))
	if cmd == nil {
		t.Fatal("changing a field should emit a command")
	}
	var found bool
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if fc, ok := c().(msgs.FieldChangedMsg); ok && fc.Field == profile.BusinessType && fc.Value == "Retail" {
				found = true
			}
		}
	} else if fc, ok := cmd().(msgs.FieldChangedMsg); ok && fc.Value == "Retail" {
		found = true
	}
	if !found {
		t.Fatal("expected FieldChangedMsg for business type")
	}
}
