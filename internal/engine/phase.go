package engine

import (
	"fmt"

	"github.com/KirkDiggler/autoref/internal/models"
)

// Phase is the engine's position in a match flow
type Phase string

const (
	PhaseInactive         Phase = "inactive"
	PhaseIdle             Phase = "idle"
	PhaseBanPhaseStart    Phase = "ban_phase_start"
	PhaseWaitingBan       Phase = "waiting_ban"
	PhasePickPhaseStart   Phase = "pick_phase_start"
	PhaseWaitingPick      Phase = "waiting_pick"
	PhaseWaitingGameStart Phase = "waiting_game_start"
	PhaseGameInProgress   Phase = "game_in_progress"
	PhaseMatchFinished    Phase = "match_finished"
	PhaseOnTimeout        Phase = "on_timeout"
	PhaseOnHold           Phase = "on_hold"
)

// Step is a phase plus the team it is waiting on, if any
type Step struct {
	Phase Phase            `json:"phase,omitempty"`
	Team  models.TeamColor `json:"team,omitempty"`
}

func (s Step) String() string {
	if s.Team != "" && (s.Phase == PhaseWaitingBan || s.Phase == PhaseWaitingPick) {
		return fmt.Sprintf("%s(%s)", s.Phase, s.Team)
	}
	return string(s.Phase)
}

// State is everything the engine mutates while a match runs
type State struct {
	// Step is the current phase
	Step Step `json:"step"`

	// Resume is restored when a timeout or hold ends
	Resume Step `json:"resume"`

	// Saved is restored by a referee start after a referee stop
	Saved Step `json:"saved"`

	// StoppedByReferee marks an administrative pause
	StoppedByReferee bool `json:"stopped_by_referee"`

	// BansRemaining counts down the bans left in the current ban phase
	BansRemaining int `json:"bans_remaining"`

	// SecondBanDone is set once the mid-match ban phase ran
	SecondBanDone bool `json:"second_ban_done"`

	// MapIndex is the next pool entry to play in qualifiers
	MapIndex int `json:"map_index"`

	// CurrentSlot is the slot loaded in the lobby by the flow
	CurrentSlot string `json:"current_slot,omitempty"`

	// TimerGen invalidates timers scheduled before the last stop or hold
	TimerGen uint64 `json:"timer_gen"`

	Ledger Ledger `json:"ledger"`
}

// Phase returns the current phase
func (s State) Phase() Phase {
	return s.Step.Phase
}

func (s State) clone() State {
	c := s
	c.Ledger = s.Ledger.clone()
	return c
}

func newState() State {
	return State{
		Step:   Step{Phase: PhaseInactive},
		Ledger: NewLedger(),
	}
}
