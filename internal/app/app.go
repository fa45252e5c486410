package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/bizadvisor/internal/config"
	"github.com/sadopc/bizadvisor/internal/core/history"
	"github.com/sadopc/bizadvisor/internal/core/profile"
	"github.com/sadopc/bizadvisor/internal/submit"
	"github.com/sadopc/bizadvisor/internal/ui/components"
	"github.com/sadopc/bizadvisor/internal/ui/layout"
	"github.com/sadopc/bizadvisor/internal/ui/msgs"
	"github.com/sadopc/bizadvisor/internal/ui/panels/form"
	historypanel "github.com/sadopc/bizadvisor/internal/ui/panels/history"
	"github.com/sadopc/bizadvisor/internal/ui/panels/preview"
	"github.com/sadopc/bizadvisor/internal/ui/theme"
	"github.com/sadopc/bizadvisor/internal/ui/viewport"
)

const (
	historyLimit = 50

	// minPreviewWidth is the narrowest side-by-side preview; below it the
	// preview replaces the form.
	minPreviewWidth = 30
)

var errNoHistory = errors.New("history is disabled")

// Options configures a new App. Store, Handler and Logger may be nil.
type Options struct {
	Config  config.Config
	Store   *history.Store
	Handler submit.Handler
	Logger  *zap.Logger
}

// App is the root Bubble Tea model.
type App struct {
	viewport *viewport.Viewport
	form     form.Model
	preview  preview.Model
	history  historypanel.Model

	statusBar components.StatusBar
	help      components.Help
	toast     components.Toast

	cfg       config.Config
	store     *history.Store
	submitter *submitter
	log       *zap.Logger

	mode        msgs.AppMode
	showPreview bool
	keys        KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates the App and mounts the form on a fresh viewport.
func New(opts Options) App {
	cfg := opts.Config
	t := theme.Resolve(cfg.Theme)
	s := theme.NewStyles(t)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	handler := opts.Handler
	if handler == nil {
		handler = submit.Multi{}
	}

	sub := &submitter{
		handler: handler,
		timeout: cfg.SubmitTimeout,
		log:     log,
	}

	// The terminal size is unknown until the first WindowSizeMsg.
	vp := viewport.New(0, 0)
	params := layout.Params{Ratio: cfg.WidthRatio, Max: cfg.MaxWidth}

	a := App{
		viewport: vp,
		form:     form.New(vp, params, sub.submit, t, s),
		preview:  preview.New(s),
		history:  historypanel.New(s),

		statusBar: components.NewStatusBar(t),
		help:      components.NewHelp(t),
		toast:     components.NewToast(t),

		cfg:       cfg,
		store:     opts.Store,
		submitter: sub,
		log:       log,

		mode: msgs.ModeNormal,
		keys: DefaultKeyMap(),

		theme:  t,
		styles: s,
	}
	a.syncForm()
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Resize(msg.Width, msg.Height)
		a.form, _ = a.form.Update(msg)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if a.help.Visible {
			var cmd tea.Cmd
			a.help, cmd = a.help.Update(msg)
			if !a.help.Visible {
				a.setMode(msgs.ModeNormal)
			}
			return a, cmd
		}

		if cmd, ok := a.handleGlobalKey(msg); ok {
			return a, cmd
		}

		if a.mode == msgs.ModeHistory {
			var cmd tea.Cmd
			a.history, cmd = a.history.Update(msg)
			return a, cmd
		}

		if a.showPreview && !a.form.Editing() {
			switch msg.String() {
			case "ctrl+f", "pgup", "pgdown":
				var cmd tea.Cmd
				a.preview, cmd = a.preview.Update(msg)
				return a, cmd
			}
		}

		if !a.form.Editing() && key.Matches(msg, a.keys.Help) {
			return a.Update(msgs.ShowHelpMsg{})
		}

		return a.updateForm(msg)

	case msgs.SubmitMsg:
		return a.updateForm(msg)

	case msgs.SubmissionDoneMsg:
		return a.handleSubmissionDone(msg)

	case msgs.FieldChangedMsg:
		a.log.Debug("field changed", zap.String("field", msg.Field.Key()))
		return a, nil

	case msgs.ResetFormMsg:
		a.form.Reset()
		a.syncForm()
		cmd := a.toast.Show("Started a new profile", false, 2*time.Second)
		return a, cmd

	case msgs.TogglePreviewMsg:
		a.showPreview = !a.showPreview
		a.resizePanels()
		return a, nil

	case msgs.ToggleHistoryMsg:
		if a.mode == msgs.ModeHistory {
			a.setMode(msgs.ModeNormal)
			return a, nil
		}
		a.setMode(msgs.ModeHistory)
		return a, a.loadHistory()

	case msgs.HistoryLoadedMsg:
		a.history.SetEntries(msg.Entries, msg.Err)
		return a, nil

	case msgs.HistorySelectedMsg:
		return a.handleHistorySelected(msg)

	case msgs.ShowHelpMsg:
		a.help.Toggle()
		if a.help.Visible {
			a.setMode(msgs.ModeHelp)
		} else {
			a.setMode(msgs.ModeNormal)
		}
		return a, nil

	case msgs.CopyRecordMsg:
		return a.copyRecord()

	case msgs.StatusMsg:
		a.statusBar.SetMessage(msg.Text)
		if msg.Duration > 0 {
			return a, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
				return msgs.StatusMsg{Text: ""}
			})
		}
		return a, nil

	case msgs.ToastMsg:
		cmd := a.toast.Show(msg.Text, msg.IsError, msg.Duration)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.form, cmd = a.form.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.mode == msgs.ModeHistory {
		a.history, cmd = a.history.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.form.Unmount()
		return tea.Quit, true
	case key.Matches(msg, a.keys.Submit):
		return func() tea.Msg { return msgs.SubmitMsg{} }, true
	case key.Matches(msg, a.keys.TogglePreview):
		return func() tea.Msg { return msgs.TogglePreviewMsg{} }, true
	case key.Matches(msg, a.keys.ToggleHistory):
		return func() tea.Msg { return msgs.ToggleHistoryMsg{} }, true
	case key.Matches(msg, a.keys.NewProfile):
		return func() tea.Msg { return msgs.ResetFormMsg{} }, true
	case key.Matches(msg, a.keys.CopyRecord):
		return func() tea.Msg { return msgs.CopyRecordMsg{} }, true
	}
	return nil, false
}

// updateForm forwards msg to the form and raises the loading flag when the
// form handed a record to the submitter.
func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	cmds := []tea.Cmd{cmd}

	if sub, ok := a.submitter.take(); ok {
		cmds = append(cmds, a.form.SetLoading(true))
		a.statusBar.SetMessage("Submitting " + sub.Record.BusinessType + " profile...")
		a.log.Info("submission started", zap.String("id", sub.ID))
	}

	if a.form.Editing() {
		a.setMode(msgs.ModeInsert)
	} else if a.mode == msgs.ModeInsert {
		a.setMode(msgs.ModeNormal)
	}

	a.syncForm()
	return a, tea.Batch(cmds...)
}

func (a App) handleSubmissionDone(msg msgs.SubmissionDoneMsg) (tea.Model, tea.Cmd) {
	a.form.SetLoading(false)
	a.statusBar.SetMessage("")

	if msg.Err != nil {
		cmd := a.toast.Show("Submission failed: "+msg.Err.Error(), true, 5*time.Second)
		return a, cmd
	}

	a.statusBar.SetLastSubmitted(time.Now())
	cmds := []tea.Cmd{a.toast.Show("Profile submitted", false, 3*time.Second)}
	if a.mode == msgs.ModeHistory {
		cmds = append(cmds, a.loadHistory())
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleHistorySelected(msg msgs.HistorySelectedMsg) (tea.Model, tea.Cmd) {
	a.form.Load(msg.Entry.Record)
	a.syncForm()
	a.setMode(msgs.ModeNormal)
	cmd := a.toast.Show("Loaded "+msg.Entry.Record.BusinessType+" profile", false, 2*time.Second)
	return a, cmd
}

func (a App) copyRecord() (tea.Model, tea.Cmd) {
	if err := submit.CopyRecord(a.form.Record()); err != nil {
		a.log.Warn("copy failed", zap.Error(err))
		cmd := a.toast.Show("Copy failed: "+err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("Copied record to clipboard", false, 2*time.Second)
	return a, cmd
}

func (a App) loadHistory() tea.Cmd {
	store := a.store
	if store == nil {
		return func() tea.Msg { return msgs.HistoryLoadedMsg{Err: errNoHistory} }
	}
	return func() tea.Msg {
		entries, err := store.List(historyLimit, 0)
		return msgs.HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

func (a *App) setMode(mode msgs.AppMode) {
	a.mode = mode
	a.statusBar.SetMode(mode)
}

// syncForm pushes the form's current values to the preview and status bar.
func (a *App) syncForm() {
	rec := a.form.Record()
	a.preview.SetRecord(rec)

	required := 0
	for _, f := range profile.Fields {
		if f.Required() {
			required++
		}
	}
	missing := len(a.form.State().Missing())
	a.statusBar.SetProgress(required-missing, required)
}

func (a *App) resizePanels() {
	contentH := layout.ContentHeight(a.height)
	cols := a.form.Columns()

	a.statusBar.SetWidth(a.width)
	a.statusBar.SetPageWidth(a.form.PageWidth())
	a.help.SetSize(a.width, a.height)
	a.history.SetSize(cols, contentH)

	if side := a.width - cols - 4; side >= minPreviewWidth {
		a.preview.SetSize(side, contentH)
	} else {
		a.preview.SetSize(cols, contentH)
	}
}

func (a App) previewBeside() bool {
	return a.width-a.form.Columns()-4 >= minPreviewWidth
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var body string
	switch {
	case a.mode == msgs.ModeHistory:
		body = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.history.View())
	case a.showPreview && a.previewBeside():
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.Page.Render(a.form.View()),
			a.preview.View(),
		)
	case a.showPreview:
		body = a.styles.Page.Render(a.preview.View())
	default:
		body = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.styles.Page.Render(a.form.View()))
	}

	main := lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())

	if a.help.Visible {
		main = overlayCenter(main, a.help.View(), a.width, a.height)
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}
	return main
}

func overlayCenter(_, overlay string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	overlayWidth := lipgloss.Width(overlay)
	gap := width - overlayWidth - 2
	if gap < 0 {
		gap = 0
	}
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
