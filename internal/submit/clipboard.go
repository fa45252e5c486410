package submit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/tidwall/pretty"

	"github.com/sadopc/bizadvisor/internal/core/profile"
)

// writeClipboard is replaced in tests; CI machines often have no clipboard.
var writeClipboard = clipboard.WriteAll

// ClipboardHandler copies the submitted record as JSON.
type ClipboardHandler struct{}

func (ClipboardHandler) Submit(_ context.Context, s Submission) error {
	return CopyRecord(s.Record)
}

// CopyRecord places the record on the system clipboard as indented JSON.
func CopyRecord(r profile.Record) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := writeClipboard(string(pretty.Pretty(raw))); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
