package msgs

import (
	"time"

	"github.com/sadopc/bizadvisor/internal/core/history"
	"github.com/sadopc/bizadvisor/internal/core/profile"
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeHistory
	ModeHelp
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeHistory:
		return "HISTORY"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

// SubmitMsg asks the form to submit its current record.
type SubmitMsg struct{}

// SubmissionDoneMsg is emitted when the submission handler returns.
type SubmissionDoneMsg struct {
	ID  string
	Err error
}

// FieldChangedMsg is emitted by the form after a field value changes.
type FieldChangedMsg struct {
	Field profile.Field
	Value string
}

// ResetFormMsg clears every field.
type ResetFormMsg struct{}

// TogglePreviewMsg shows or hides the record preview.
type TogglePreviewMsg struct{}

// ToggleHistoryMsg opens or closes the submission history.
type ToggleHistoryMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// CopyRecordMsg copies the current record to the clipboard.
type CopyRecordMsg struct{}

// HistoryLoadedMsg carries the result of reading the history store.
type HistoryLoadedMsg struct {
	Entries []history.Entry
	Err     error
}

// HistorySelectedMsg loads a past submission into the form.
type HistorySelectedMsg struct {
	Entry history.Entry
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}
