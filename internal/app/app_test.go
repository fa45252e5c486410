package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"

	"github.com/sadopc/bizadvisor/internal/config"
	"github.com/sadopc/bizadvisor/internal/core/history"
	"github.com/sadopc/bizadvisor/internal/core/profile"
	"github.com/sadopc/bizadvisor/internal/submit"
	"github.com/sadopc/bizadvisor/internal/ui/msgs"
)

// recordingHandler records every submission it receives.
type recordingHandler struct {
	mu   sync.Mutex
	subs []submit.Submission
	err  error
}

func (h *recordingHandler) Submit(_ context.Context, s submit.Submission) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, s)
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// testApp creates a minimal App for testing without side effects
// (no history DB, no clipboard, no files).
func testApp(t *testing.T, h submit.Handler) App {
	t.Helper()
	cfg := config.DefaultConfig()
	return New(Options{Config: cfg, Handler: h, Logger: zaptest.NewLogger(t)})
}

// testAppResized returns an App that has been resized so a.ready == true.
func testAppResized(t *testing.T, h submit.Handler) App {
	t.Helper()
	a := testApp(t, h)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 1000, Height: 60})
	return m.(App)
}

func fill(a *App) {
	a.form.Load(profile.Record{
		BusinessType:       "Retail",
		EmployeeCount:      "1-5",
		AnnualRevenue:      "Under $100k",
		BudgetForAI:        "Under $1k",
		TimeConsumingTasks: "invoicing",
	})
	a.syncForm()
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

// runCmd executes cmd and returns every message it produced, expanding batches.
// Ticks are skipped so tests do not wait on timers.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](list []tea.Msg) (T, bool) {
	for _, m := range list {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// --- Tests ---

func TestNew_DefaultState(t *testing.T) {
	a := testApp(t, nil)

	if a.mode != msgs.ModeNormal {
		t.Errorf("expected ModeNormal, got %v", a.mode)
	}
	if a.ready {
		t.Error("expected ready=false before WindowSizeMsg")
	}
	if a.viewport.ListenerCount() != 1 {
		t.Errorf("expected one resize listener, got %d", a.viewport.ListenerCount())
	}
	if a.form.Loading() {
		t.Error("form should not start loading")
	}
	if a.View() != "Loading..." {
		t.Errorf("unexpected view before resize: %q", a.View())
	}
}

func TestWindowSizeMsg_ResizesPage(t *testing.T) {
	a := testApp(t, nil)

	a, cmd := update(t, a, tea.WindowSizeMsg{Width: 1000, Height: 40})
	if cmd != nil {
		t.Error("expected nil cmd from WindowSizeMsg")
	}
	if !a.ready {
		t.Fatal("expected ready=true after WindowSizeMsg")
	}
	if got := a.form.PageWidth(); got != 600 {
		t.Errorf("PageWidth() = %v, want 600", got)
	}

	a, _ = update(t, a, tea.WindowSizeMsg{Width: 2000, Height: 40})
	if got := a.form.PageWidth(); got != 1024 {
		t.Errorf("PageWidth() = %v, want 1024", got)
	}
	if a.viewport.ListenerCount() != 1 {
		t.Errorf("resizes should not add listeners, got %d", a.viewport.ListenerCount())
	}
}

func TestQuit_UnmountsForm(t *testing.T) {
	a := testAppResized(t, nil)

	_, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
	if a.viewport.ListenerCount() != 0 {
		t.Fatalf("listener still registered after quit: %d", a.viewport.ListenerCount())
	}
}

func TestSubmit_SetsLoadingAndRunsHandlerOnce(t *testing.T) {
	h := &recordingHandler{}
	a := testAppResized(t, h)
	fill(&a)

	a, cmd := update(t, a, msgs.SubmitMsg{})
	if !a.form.Loading() {
		t.Fatal("submit should raise the loading flag")
	}

	// A second submit while loading is ignored.
	a, cmd2 := update(t, a, msgs.SubmitMsg{})

	out := runCmd(cmd)
	runCmd(cmd2)
	if h.count() != 1 {
		t.Fatalf("handler called %d times, want 1", h.count())
	}
	if h.subs[0].Record.CurrentSoftware != "" || h.subs[0].Record.BusinessType != "Retail" {
		t.Fatalf("unexpected record: %+v", h.subs[0].Record)
	}
	if h.subs[0].ID == "" {
		t.Fatal("submission should carry an id")
	}

	done, ok := findMsg[msgs.SubmissionDoneMsg](out)
	if !ok {
		t.Fatal("expected SubmissionDoneMsg")
	}
	if done.ID != h.subs[0].ID {
		t.Fatalf("done id %q, want %q", done.ID, h.subs[0].ID)
	}

	a, _ = update(t, a, done)
	if a.form.Loading() {
		t.Fatal("done should clear the loading flag")
	}
	if !a.toast.Visible || a.toast.IsError() {
		t.Fatal("expected success toast")
	}
}

func TestSubmit_ViaCtrlS(t *testing.T) {
	h := &recordingHandler{}
	a := testAppResized(t, h)
	fill(&a)

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := cmd()
	if _, ok := msg.(msgs.SubmitMsg); !ok {
		t.Fatalf("ctrl+s produced %T, want SubmitMsg", msg)
	}
	a, cmd = update(t, a, msg)
	runCmd(cmd)
	if h.count() != 1 {
		t.Fatalf("handler called %d times, want 1", h.count())
	}
}

func TestSubmit_IncompleteDoesNothing(t *testing.T) {
	h := &recordingHandler{}
	a := testAppResized(t, h)

	a, cmd := update(t, a, msgs.SubmitMsg{})
	runCmd(cmd)
	if a.form.Loading() {
		t.Fatal("incomplete form should not start loading")
	}
	if h.count() != 0 {
		t.Fatalf("handler called %d times, want 0", h.count())
	}
}

func TestSubmit_FailureShowsErrorToast(t *testing.T) {
	h := &recordingHandler{err: errors.New("outbox unwritable")}
	a := testAppResized(t, h)
	fill(&a)

	a, cmd := update(t, a, msgs.SubmitMsg{})
	done, ok := findMsg[msgs.SubmissionDoneMsg](runCmd(cmd))
	if !ok || done.Err == nil {
		t.Fatal("expected failed SubmissionDoneMsg")
	}

	a, _ = update(t, a, done)
	if a.form.Loading() {
		t.Fatal("failure should clear the loading flag")
	}
	if !a.toast.IsError() || !strings.Contains(a.toast.Text(), "outbox unwritable") {
		t.Fatalf("unexpected toast %q", a.toast.Text())
	}
}

func TestResetForm(t *testing.T) {
	a := testAppResized(t, nil)
	fill(&a)

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlN})
	a, _ = update(t, a, cmd())
	if a.form.Record() != (profile.Record{}) {
		t.Fatalf("form not reset: %+v", a.form.Record())
	}
	if a.preview.Record() != (profile.Record{}) {
		t.Fatal("preview should follow the reset")
	}
}

func TestTogglePreview(t *testing.T) {
	a := testAppResized(t, nil)
	fill(&a)

	a, _ = update(t, a, msgs.TogglePreviewMsg{})
	if !a.showPreview {
		t.Fatal("expected preview visible")
	}
	if !strings.Contains(a.View(), "Submission preview") {
		t.Fatal("view should contain the preview")
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlF})
	if got := a.preview.Source(); !strings.Contains(got, "businessType: Retail") {
		t.Fatalf("ctrl+f should switch the preview to yaml:\n%s", got)
	}
}

func TestHistory_DisabledWithoutStore(t *testing.T) {
	a := testAppResized(t, nil)

	a, cmd := update(t, a, msgs.ToggleHistoryMsg{})
	if a.mode != msgs.ModeHistory {
		t.Fatalf("mode = %v, want HISTORY", a.mode)
	}
	loaded, ok := findMsg[msgs.HistoryLoadedMsg](runCmd(cmd))
	if !ok || !errors.Is(loaded.Err, errNoHistory) {
		t.Fatalf("expected errNoHistory, got %+v", loaded)
	}

	a, _ = update(t, a, loaded)
	if !strings.Contains(a.View(), "history is disabled") {
		t.Fatal("history view should show the error")
	}
}

func TestHistory_LoadAndSelect(t *testing.T) {
	store, err := history.NewStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	rec := profile.Record{
		BusinessType:       "Construction",
		EmployeeCount:      "26-50",
		AnnualRevenue:      "$1M-$5M",
		BudgetForAI:        "$5k-$10k",
		TimeConsumingTasks: "estimates",
		CurrentSoftware:    "Procore",
	}
	if err := store.Add(history.Entry{ID: "h1", Record: rec, SubmittedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	a := New(Options{Config: config.DefaultConfig(), Store: store, Logger: zaptest.NewLogger(t)})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 200, Height: 50})

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlR})
	a, cmd = update(t, a, cmd())
	loaded, ok := findMsg[msgs.HistoryLoadedMsg](runCmd(cmd))
	if !ok || len(loaded.Entries) != 1 {
		t.Fatalf("expected one history entry, got %+v", loaded)
	}
	a, _ = update(t, a, loaded)

	a, cmd = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := findMsg[msgs.HistorySelectedMsg](runCmd(cmd))
	if !ok {
		t.Fatal("enter should select the entry")
	}
	a, _ = update(t, a, sel)

	if a.mode != msgs.ModeNormal {
		t.Fatalf("mode = %v, want NORMAL", a.mode)
	}
	if a.form.Record() != rec {
		t.Fatalf("form record = %+v, want %+v", a.form.Record(), rec)
	}
}

func TestHelp_ToggleBlocksFormKeys(t *testing.T) {
	a := testAppResized(t, nil)

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !a.help.Visible || a.mode != msgs.ModeHelp {
		t.Fatal("? should open help")
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.form.Record().BusinessType != "" {
		t.Fatal("keys should not reach the form while help is open")
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.help.Visible || a.mode != msgs.ModeNormal {
		t.Fatal("esc should close help")
	}
}

func TestInsertMode_FollowsTextEditing(t *testing.T) {
	a := testAppResized(t, nil)

	for i := 0; i < 4; i++ {
		a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	}
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("invoices")})
	if a.mode != msgs.ModeInsert {
		t.Fatalf("mode = %v, want INSERT", a.mode)
	}
	if got := a.preview.Record().TimeConsumingTasks; got != "invoices" {
		t.Fatalf("preview tasks = %q, want invoices", got)
	}

	// ? is text while editing.
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if a.help.Visible {
		t.Fatal("? should not open help while editing")
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.mode != msgs.ModeNormal {
		t.Fatalf("mode = %v, want NORMAL", a.mode)
	}
}

func TestCtrlH_DeletesWhileEditing(t *testing.T) {
	a := testAppResized(t, nil)

	for i := 0; i < 4; i++ {
		a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	}
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})

	// Many terminals send ctrl+h for Backspace.
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlH})
	if a.mode != msgs.ModeInsert {
		t.Fatalf("mode = %v, want INSERT", a.mode)
	}
	if got := a.preview.Record().TimeConsumingTasks; got != "a" {
		t.Fatalf("preview tasks = %q, want a", got)
	}
}

func TestStatusAndToastMsgs(t *testing.T) {
	a := testAppResized(t, nil)

	a, cmd := update(t, a, msgs.StatusMsg{Text: "hello", Duration: time.Second})
	if a.statusBar.Message() != "hello" || cmd == nil {
		t.Fatal("StatusMsg should set the message and schedule a clear")
	}

	a, _ = update(t, a, msgs.ToastMsg{Text: "saved", Duration: time.Second})
	if !a.toast.Visible || a.toast.Text() != "saved" {
		t.Fatal("ToastMsg should show a toast")
	}
	if !strings.Contains(a.View(), "saved") {
		t.Fatal("toast should render")
	}
}
