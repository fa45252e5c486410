package submit

import (
	"github.com/sadopc/bizadvisor/internal/config"
	"github.com/sadopc/bizadvisor/internal/core/history"
)

// FromConfig assembles the handlers enabled in cfg. The history store is
// optional; a nil store is skipped.
func FromConfig(cfg config.Config, store *history.Store) Handler {
	var m Multi
	if store != nil {
		m = append(m, HistoryHandler{Store: store})
	}
	if cfg.OutboxDir != "" {
		m = append(m, OutboxHandler{Dir: cfg.OutboxDir, Format: cfg.OutboxFormat})
	}
	if cfg.CopyToClipboard {
		m = append(m, ClipboardHandler{})
	}
	return m
}
