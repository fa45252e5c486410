package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/bizadvisor/internal/core/profile"
	"github.com/sadopc/bizadvisor/internal/submit"
	"github.com/sadopc/bizadvisor/internal/ui/msgs"
)

const defaultSubmitTimeout = 10 * time.Second

// submitter is the form's submit callback. It is shared by pointer so the App
// can see, within the same Update, that a submission started and raise the
// form's loading flag before the next message arrives.
type submitter struct {
	handler submit.Handler
	timeout time.Duration
	log     *zap.Logger

	started *submit.Submission
}

func (s *submitter) submit(r profile.Record) tea.Cmd {
	sub := submit.New(r)
	s.started = &sub

	handler := s.handler
	timeout := s.timeout
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	log := s.log.With(zap.String("id", sub.ID))

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		err := handler.Submit(ctx, sub)
		if err != nil {
			log.Error("submission failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		} else {
			log.Info("submission handled",
				zap.String("business_type", sub.Record.BusinessType),
				zap.Duration("elapsed", time.Since(start)))
		}
		return msgs.SubmissionDoneMsg{ID: sub.ID, Err: err}
	}
}

// take returns the submission started since the last call, if any.
func (s *submitter) take() (submit.Submission, bool) {
	if s.started == nil {
		return submit.Submission{}, false
	}
	sub := *s.started
	s.started = nil
	return sub, true
}
