package engine

import "time"

// TimerKind names an engine-owned timer
type TimerKind string

// TimerCooldown delays the next qualifiers map after a finish
const TimerCooldown TimerKind = "cooldown"

// Effect is an instruction the session executes after a transition
type Effect interface {
	isEffect()
}

// Say sends a line to the lobby, mirrored to the coordination channel when Mirror is set
type Say struct {
	Line   string
	Mirror bool
}

// Schedule arms a timer that reports back as TimerFired with the same generation
type Schedule struct {
	Timer TimerKind
	After time.Duration
	Gen   uint64
}

// CancelTimers drops every pending timer
type CancelTimers struct{}

// Teardown ends the session
type Teardown struct{}

func (Say) isEffect()          {}
func (Schedule) isEffect()     {}
func (CancelTimers) isEffect() {}
func (Teardown) isEffect()     {}
