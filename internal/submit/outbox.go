package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// OutboxHandler writes each submission to <Dir>/<id>.<format> for an external
// recommendation engine to pick up.
type OutboxHandler struct {
	Dir    string
	Format string // "json" or "yaml"
}

func (h OutboxHandler) Submit(_ context.Context, s Submission) error {
	data, ext, err := Encode(s, h.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(h.Dir, 0755); err != nil {
		return fmt.Errorf("creating outbox dir: %w", err)
	}

	path := filepath.Join(h.Dir, s.ID+ext)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing outbox file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing outbox file: %w", err)
	}
	return nil
}

// Encode serialises a submission as pretty JSON or YAML and returns the file
// extension to use.
func Encode(s Submission, format string) ([]byte, string, error) {
	switch format {
	case "", "json":
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, "", fmt.Errorf("encoding submission: %w", err)
		}
		return pretty.Pretty(raw), ".json", nil
	case "yaml", "yml":
		out, err := yaml.Marshal(s)
		if err != nil {
			return nil, "", fmt.Errorf("encoding submission: %w", err)
		}
		return out, ".yaml", nil
	}
	return nil, "", fmt.Errorf("unsupported outbox format %q", format)
}
