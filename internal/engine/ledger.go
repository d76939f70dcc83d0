package engine

import (
	"fmt"

	"github.com/KirkDiggler/autoref/internal/models"
)

// Ledger records the draft and the running score of a match
type Ledger struct {
	Banned []models.RoundChoice `json:"banned"`
	Picked []models.RoundChoice `json:"picked"`

	// MapScores holds raw scores of the map in progress, keyed by player name
	MapScores map[string]int64 `json:"map_scores"`

	Wins map[models.TeamColor]int `json:"wins"`

	// FirstPick and FirstBan stay empty until the referee assigns them
	FirstPick models.TeamColor `json:"first_pick,omitempty"`
	FirstBan  models.TeamColor `json:"first_ban,omitempty"`

	// LastPick is the team that made the latest regular pick
	LastPick models.TeamColor `json:"last_pick,omitempty"`

	TimeoutUsed map[models.TeamColor]bool `json:"timeout_used"`

	// MpLinkID is the lobby number reported when the lobby was created
	MpLinkID int `json:"mp_link_id,omitempty"`
}

// NewLedger returns an empty ledger
func NewLedger() Ledger {
	return Ledger{
		MapScores:   make(map[string]int64),
		Wins:        map[models.TeamColor]int{models.TeamRed: 0, models.TeamBlue: 0},
		TimeoutUsed: map[models.TeamColor]bool{models.TeamRed: false, models.TeamBlue: false},
	}
}

func (l Ledger) clone() Ledger {
	c := l
	c.Banned = append([]models.RoundChoice(nil), l.Banned...)
	c.Picked = append([]models.RoundChoice(nil), l.Picked...)
	c.MapScores = make(map[string]int64, len(l.MapScores))
	for k, v := range l.MapScores {
		c.MapScores[k] = v
	}
	c.Wins = make(map[models.TeamColor]int, len(l.Wins))
	for k, v := range l.Wins {
		c.Wins[k] = v
	}
	c.TimeoutUsed = make(map[models.TeamColor]bool, len(l.TimeoutUsed))
	for k, v := range l.TimeoutUsed {
		c.TimeoutUsed[k] = v
	}
	return c
}

// Taken reports whether slot was already banned or picked
func (l *Ledger) Taken(slot string) bool {
	slot = canonicalSlot(slot)
	for _, c := range l.Banned {
		if c.Slot == slot {
			return true
		}
	}
	for _, c := range l.Picked {
		if c.Slot == slot {
			return true
		}
	}
	return false
}

// Eligible reports whether slot may be banned or picked right now
func (l *Ledger) Eligible(mc MatchContext, slot string) bool {
	if _, ok := mc.Beatmap(slot); !ok {
		return false
	}
	return !mc.IsTiebreaker(slot) && !l.Taken(slot)
}

// Ban records a ban by team
func (l *Ledger) Ban(mc MatchContext, slot string, team models.TeamColor) error {
	if !l.Eligible(mc, slot) {
		return fmt.Errorf("%w: cannot ban %s", ErrSlotUnavailable, slot)
	}
	l.Banned = append(l.Banned, models.RoundChoice{Slot: canonicalSlot(slot), Team: team})
	return nil
}

// Pick records a regular pick by team
func (l *Ledger) Pick(mc MatchContext, slot string, team models.TeamColor) error {
	if !l.Eligible(mc, slot) {
		return fmt.Errorf("%w: cannot pick %s", ErrSlotUnavailable, slot)
	}
	l.Picked = append(l.Picked, models.RoundChoice{Slot: canonicalSlot(slot), Team: team})
	l.LastPick = team
	return nil
}

// PickTiebreaker records the forced tiebreaker pick
func (l *Ledger) PickTiebreaker(mc MatchContext) error {
	if len(l.Picked) != mc.Rules.BestOf-1 {
		return fmt.Errorf("%w: %d of %d picks played", ErrTiebreakerLocked, len(l.Picked), mc.Rules.BestOf-1)
	}
	if l.Taken(mc.Rules.Tiebreaker) {
		return fmt.Errorf("%w: tiebreaker already picked", ErrSlotUnavailable)
	}
	l.Picked = append(l.Picked, models.RoundChoice{Slot: mc.Rules.Tiebreaker, Team: models.TeamNone})
	return nil
}

// Available lists pool slots that can still be banned or picked, in pool order
func (l *Ledger) Available(mc MatchContext) []string {
	var slots []string
	for _, bm := range mc.Rules.Pool {
		if l.Eligible(mc, bm.Slot) {
			slots = append(slots, canonicalSlot(bm.Slot))
		}
	}
	return slots
}

// RecordScore stores a player's score for the current map
func (l *Ledger) RecordScore(player string, score int64) {
	l.MapScores[player] = score
}

// ClearScores drops the current map's scores
func (l *Ledger) ClearScores() {
	l.MapScores = make(map[string]int64)
}

// Totals sums the current map's scores per team
func (l *Ledger) Totals(mc MatchContext) (red, blue int64) {
	for player, score := range l.MapScores {
		team, ok := mc.TeamOf(player)
		if !ok {
			continue
		}
		if team == models.TeamRed {
			red += score
		} else {
			blue += score
		}
	}
	return red, blue
}

// Award gives a map to team
func (l *Ledger) Award(mc MatchContext, team models.TeamColor) error {
	if l.Wins[team] >= mc.WinThreshold() {
		return fmt.Errorf("%w: %s already has %d", ErrWinOverflow, team, l.Wins[team])
	}
	l.Wins[team]++
	return nil
}

// Winner returns the team that reached the win threshold, if any
func (l *Ledger) Winner(mc MatchContext) (models.TeamColor, bool) {
	for _, team := range []models.TeamColor{models.TeamRed, models.TeamBlue} {
		if l.Wins[team] >= mc.WinThreshold() {
			return team, true
		}
	}
	return models.TeamNone, false
}

// check verifies the ledger against mc, used when restoring a snapshot
func (l *Ledger) check(mc MatchContext) error {
	seen := make(map[string]bool)
	for _, c := range append(append([]models.RoundChoice(nil), l.Banned...), l.Picked...) {
		if _, ok := mc.Beatmap(c.Slot); !ok {
			return fmt.Errorf("%w: slot %s is not in the pool", ErrInvalidSnapshot, c.Slot)
		}
		if seen[c.Slot] {
			return fmt.Errorf("%w: slot %s used twice", ErrInvalidSnapshot, c.Slot)
		}
		seen[c.Slot] = true
	}
	for _, c := range l.Banned {
		if mc.IsTiebreaker(c.Slot) {
			return fmt.Errorf("%w: tiebreaker was banned", ErrInvalidSnapshot)
		}
	}
	for team, wins := range l.Wins {
		if wins > mc.WinThreshold() {
			return fmt.Errorf("%w: %s has %d wins", ErrInvalidSnapshot, team, wins)
		}
	}
	return nil
}
