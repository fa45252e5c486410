package submit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/bizadvisor/internal/core/profile"
)

// Submission is a record stamped by the caller at submit time.
type Submission struct {
	ID          string         `json:"id" yaml:"id"`
	Record      profile.Record `json:"record" yaml:"record"`
	SubmittedAt time.Time      `json:"submittedAt" yaml:"submittedAt"`
}

// New wraps a record with a fresh id and the current time.
func New(r profile.Record) Submission {
	return Submission{
		ID:          uuid.New().String(),
		Record:      r,
		SubmittedAt: time.Now(),
	}
}

// Handler receives submitted profiles.
type Handler interface {
	Submit(ctx context.Context, s Submission) error
}

// Func adapts a plain function to Handler.
type Func func(ctx context.Context, s Submission) error

func (f Func) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// Multi runs every handler in order and joins their errors. A failing handler
// does not stop the ones after it.
type Multi []Handler

func (m Multi) Submit(ctx context.Context, s Submission) error {
	var errs []error
	for _, h := range m {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := h.Submit(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
