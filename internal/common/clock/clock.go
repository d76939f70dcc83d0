package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/autoref/internal/common/clock Clock,Timer
type Clock interface {
	Now() time.Time

	// AfterFunc calls f in its own goroutine once d has elapsed
	AfterFunc(d time.Duration, f func()) Timer

	// Sleep pauses the calling goroutine
	Sleep(d time.Duration)
}

// Timer is a cancellable pending call
type Timer interface {
	// Stop prevents the call and reports whether it was still pending
	Stop() bool
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc
func (c *DefaultClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Sleep wraps time.Sleep
func (c *DefaultClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
