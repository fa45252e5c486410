package submit

import (
	"context"
	"fmt"

	"github.com/sadopc/bizadvisor/internal/core/history"
)

// HistoryHandler stores every submission in the history database.
type HistoryHandler struct {
	Store *history.Store
}

func (h HistoryHandler) Submit(_ context.Context, s Submission) error {
	if h.Store == nil {
		return nil
	}
	err := h.Store.Add(history.Entry{
		ID:          s.ID,
		Record:      s.Record,
		SubmittedAt: s.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("saving to history: %w", err)
	}
	return nil
}
