package history

import (
	"time"

	"github.com/sadopc/bizadvisor/internal/core/profile"
)

// Entry is one stored profile submission.
type Entry struct {
	ID          string
	Record      profile.Record
	SubmittedAt time.Time
}
