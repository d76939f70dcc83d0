package notify

import (
	"context"
	"errors"
	"fmt"
)

// Fanout delivers every line to each of its sinks
type Fanout struct {
	sinks []Notifier
}

// NewFanout creates a notifier over the given sinks. Nil sinks are skipped.
func NewFanout(sinks ...Notifier) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Notify tries every sink and joins their errors
func (f *Fanout) Notify(ctx context.Context, input *NotifyInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	var errs []error
	for i, s := range f.sinks {
		if err := s.Notify(ctx, input); err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
