package engine

import "time"

// Config holds lobby timings and notice settings
type Config struct {
	// PickTimer is the ready countdown after a map is loaded or a ban/pick is called
	PickTimer time.Duration

	// MapTimer is the ready countdown for a qualifiers map
	MapTimer time.Duration

	// StartDelay is the countdown passed to !mp start
	StartDelay time.Duration

	// ResumeTimer is the countdown after an emergency hold ends
	ResumeTimer time.Duration

	// TimeoutTimer is the length of a timeout
	TimeoutTimer time.Duration

	// AfterTimeoutTimer is the countdown issued once a timeout ends
	AfterTimeoutTimer time.Duration

	// Cooldown is the pause between qualifiers maps
	Cooldown time.Duration

	// HoldMention is prepended to hold notices, e.g. a referee role mention
	HoldMention string
}

// DefaultConfig returns the timings used by a standard lobby
func DefaultConfig() *Config {
	return &Config{
		PickTimer:         90 * time.Second,
		MapTimer:          120 * time.Second,
		StartDelay:        10 * time.Second,
		ResumeTimer:       10 * time.Second,
		TimeoutTimer:      120 * time.Second,
		AfterTimeoutTimer: 120 * time.Second,
		Cooldown:          10 * time.Second,
	}
}
