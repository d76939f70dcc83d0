package engine

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/autoref/internal/models"
)

const (
	// DefaultTiebreaker is the slot reserved for a tied match point
	DefaultTiebreaker = "TB1"

	// DefaultSecondBanAfter is the pick count that opens the second ban phase
	DefaultSecondBanAfter = 4
)

// Team is one side of an elimination match
type Team struct {
	Name string `json:"name"`
}

// Referee is the staff identity allowed to run admin commands
type Referee struct {
	Name string `json:"name"`
}

// Rules are the round settings a match is played under
type Rules struct {
	Name           string                `json:"name"`
	BestOf         int                   `json:"best_of"`
	BanRounds      int                   `json:"ban_rounds"`
	SecondBanAfter int                   `json:"second_ban_after"`
	Tiebreaker     string                `json:"tiebreaker"`
	Pool           []models.RoundBeatmap `json:"pool"`
}

// TotalBans is the number of bans over the whole match
func (r Rules) TotalBans() int {
	if r.BanRounds == 2 {
		return r.BanRounds * 2
	}
	return r.BanRounds
}

// MatchContext is the read-only metadata a match is started with
type MatchContext struct {
	MatchID string           `json:"match_id"`
	Type    models.MatchType `json:"type"`
	Red     Team             `json:"red"`
	Blue    Team             `json:"blue"`
	Referee Referee          `json:"referee"`
	Rules   Rules            `json:"rules"`

	// Players are the osu! ids invited to a qualifiers lobby
	Players []int `json:"players,omitempty"`
}

// NormalizeName maps a display name onto its IRC nick form
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

func sameName(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}

func canonicalSlot(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (mc MatchContext) withDefaults() MatchContext {
	if mc.Type == "" {
		mc.Type = models.MatchTypeElimination
	}
	if mc.Rules.Tiebreaker == "" {
		mc.Rules.Tiebreaker = DefaultTiebreaker
	}
	mc.Rules.Tiebreaker = canonicalSlot(mc.Rules.Tiebreaker)
	if mc.Rules.BanRounds == 2 && mc.Rules.SecondBanAfter == 0 {
		// short matches open the second ban phase right before the tiebreaker
		mc.Rules.SecondBanAfter = min(DefaultSecondBanAfter, mc.Rules.BestOf-1)
	}
	return mc
}

// Validate checks that the context can drive a full match
func (mc MatchContext) Validate() error {
	if strings.TrimSpace(mc.MatchID) == "" {
		return fmt.Errorf("%w: match id is empty", ErrInvalidContext)
	}
	if strings.TrimSpace(mc.Referee.Name) == "" {
		return fmt.Errorf("%w: referee is empty", ErrInvalidContext)
	}
	if len(mc.Rules.Pool) == 0 {
		return fmt.Errorf("%w: map pool is empty", ErrInvalidContext)
	}

	seen := make(map[string]bool, len(mc.Rules.Pool))
	for _, bm := range mc.Rules.Pool {
		slot := canonicalSlot(bm.Slot)
		if slot == "" {
			return fmt.Errorf("%w: pool entry for beatmap %d has no slot", ErrInvalidContext, bm.BeatmapID)
		}
		if seen[slot] {
			return fmt.Errorf("%w: slot %s appears twice", ErrInvalidContext, slot)
		}
		seen[slot] = true
	}

	switch mc.Type {
	case models.MatchTypeQualifiers:
		return nil
	case models.MatchTypeElimination:
	default:
		return fmt.Errorf("%w: unknown match type %q", ErrInvalidContext, mc.Type)
	}

	if mc.Red.Name == "" || mc.Blue.Name == "" {
		return fmt.Errorf("%w: both teams need a name", ErrInvalidContext)
	}
	if sameName(mc.Red.Name, mc.Blue.Name) {
		return fmt.Errorf("%w: teams share the name %s", ErrInvalidContext, mc.Red.Name)
	}

	r := mc.Rules
	if r.BestOf < 1 || r.BestOf%2 == 0 {
		return fmt.Errorf("%w: best of %d is not a positive odd number", ErrInvalidContext, r.BestOf)
	}
	if r.BanRounds < 0 || r.BanRounds > 2 {
		return fmt.Errorf("%w: %d ban rounds, expected 0 to 2", ErrInvalidContext, r.BanRounds)
	}
	if !seen[r.Tiebreaker] {
		return fmt.Errorf("%w: tiebreaker %s is not in the pool", ErrInvalidContext, r.Tiebreaker)
	}
	if r.BanRounds == 2 && r.BestOf > 1 && (r.SecondBanAfter < 1 || r.SecondBanAfter > r.BestOf-1) {
		return fmt.Errorf("%w: second ban round after %d picks is outside 1..%d", ErrInvalidContext, r.SecondBanAfter, r.BestOf-1)
	}

	regular := len(r.Pool) - 1
	if need := r.TotalBans() + r.BestOf - 1; regular < need {
		return fmt.Errorf("%w: pool has %d regular slots, %d needed", ErrInvalidContext, regular, need)
	}
	return nil
}

// WinThreshold is the number of maps that wins the match
func (mc MatchContext) WinThreshold() int {
	return mc.Rules.BestOf/2 + 1
}

// Beatmap looks a slot up in the pool, ignoring case
func (mc MatchContext) Beatmap(slot string) (models.RoundBeatmap, bool) {
	slot = canonicalSlot(slot)
	for _, bm := range mc.Rules.Pool {
		if canonicalSlot(bm.Slot) == slot {
			return models.RoundBeatmap{Slot: slot, BeatmapID: bm.BeatmapID}, true
		}
	}
	return models.RoundBeatmap{}, false
}

// IsTiebreaker reports whether slot is the reserved tiebreaker
func (mc MatchContext) IsTiebreaker(slot string) bool {
	return mc.Type == models.MatchTypeElimination && canonicalSlot(slot) == mc.Rules.Tiebreaker
}

// IsReferee reports whether a lobby sender is the assigned referee
func (mc MatchContext) IsReferee(sender string) bool {
	return sameName(sender, mc.Referee.Name)
}

// TeamOf resolves a lobby sender to a team
func (mc MatchContext) TeamOf(sender string) (models.TeamColor, bool) {
	switch {
	case mc.Red.Name != "" && sameName(sender, mc.Red.Name):
		return models.TeamRed, true
	case mc.Blue.Name != "" && sameName(sender, mc.Blue.Name):
		return models.TeamBlue, true
	default:
		return models.TeamNone, false
	}
}

// TeamName returns the display name of a team
func (mc MatchContext) TeamName(c models.TeamColor) string {
	switch c {
	case models.TeamRed:
		return mc.Red.Name
	case models.TeamBlue:
		return mc.Blue.Name
	default:
		return string(c)
	}
}
