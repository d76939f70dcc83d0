package engine

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/autoref/internal/models"
)

const (
	redName     = "Alpha"
	blueName    = "Bravo Team"
	refereeName = "Ref Person"
	refereeNick = "Ref_Person"
	blueNick    = "Bravo_Team"
)

// eliminationContext builds a pool with enough regular slots for the rules plus spare ones
func eliminationContext(bestOf, banRounds int) MatchContext {
	rules := Rules{Name: "Quarterfinals", BestOf: bestOf, BanRounds: banRounds}

	regular := rules.TotalBans() + bestOf - 1 + 2
	mods := []string{"NM", "HD", "HR", "DT", "FM"}
	for i := 0; i < regular; i++ {
		slot := fmt.Sprintf("%s%d", mods[i%len(mods)], i/len(mods)+1)
		rules.Pool = append(rules.Pool, models.RoundBeatmap{Slot: slot, BeatmapID: 1000 + i})
	}
	rules.Pool = append(rules.Pool, models.RoundBeatmap{Slot: "TB1", BeatmapID: 9999})

	return MatchContext{
		MatchID: "A1",
		Type:    models.MatchTypeElimination,
		Red:     Team{Name: redName},
		Blue:    Team{Name: blueName},
		Referee: Referee{Name: refereeName},
		Rules:   rules,
	}
}

func qualifiersContext(maps int) MatchContext {
	mc := MatchContext{
		MatchID: "Q1",
		Type:    models.MatchTypeQualifiers,
		Referee: Referee{Name: refereeName},
		Players: []int{123, 456},
		Rules:   Rules{Name: "Qualifiers"},
	}
	for i := 0; i < maps; i++ {
		mc.Rules.Pool = append(mc.Rules.Pool, models.RoundBeatmap{Slot: fmt.Sprintf("NM%d", i+1), BeatmapID: 2000 + i})
	}
	return mc
}

func chat(sender, text string) ChatMessage {
	return ChatMessage{Sender: sender, Text: text}
}

func referee(text string) ChatMessage {
	return chat(refereeNick, text)
}

func nick(team models.TeamColor) string {
	if team == models.TeamRed {
		return redName
	}
	return blueNick
}

// lines returns every lobby line in effects
func lines(effects []Effect) []string {
	var out []string
	for _, e := range effects {
		if say, ok := e.(Say); ok {
			out = append(out, say.Line)
		}
	}
	return out
}

func hasLinePrefix(effects []Effect, prefix string) bool {
	for _, l := range lines(effects) {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}
