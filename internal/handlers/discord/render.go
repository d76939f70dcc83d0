package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/KirkDiggler/autoref/internal/services/match"
)

func renderChoices(choices []models.RoundChoice) string {
	if len(choices) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(choices))
	for _, c := range choices {
		if c.Team == models.TeamNone || c.Team == "" {
			parts = append(parts, c.Slot)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Slot, c.Team))
	}
	return strings.Join(parts, ", ")
}

func renderStep(st *match.MatchStatus) string {
	if st.Stopped {
		return st.Step + " (stopped)"
	}
	return st.Step
}

// renderStatus builds the detail embed of one session
func renderStatus(st *match.MatchStatus) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Step", Value: renderStep(st), Inline: true},
		{Name: "Referee", Value: st.Referee, Inline: true},
	}
	if st.MpLinkID != 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Lobby",
			Value:  fmt.Sprintf("https://osu.ppy.sh/mp/%d", st.MpLinkID),
			Inline: true,
		})
	}

	var title string
	if st.Type == models.MatchTypeQualifiers {
		title = fmt.Sprintf("Qualifiers lobby %s", st.MatchID)
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Progress",
			Value: fmt.Sprintf("map %d of %d", st.MapIndex, st.PoolSize),
		})
	} else {
		title = fmt.Sprintf("Match %s: %s vs %s", st.MatchID, st.Red, st.Blue)
		fields = append(fields,
			&discordgo.MessageEmbedField{
				Name:  "Score",
				Value: fmt.Sprintf("%s %d - %d %s", st.Red, st.Wins[models.TeamRed], st.Wins[models.TeamBlue], st.Blue),
			},
			&discordgo.MessageEmbedField{Name: "Bans", Value: renderChoices(st.Banned)},
			&discordgo.MessageEmbedField{Name: "Picks", Value: renderChoices(st.Picked)},
		)
	}

	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     colorOK,
		Fields:    fields,
		Timestamp: st.StartedAt.Format(time.RFC3339),
	}
}

// renderMatchList builds the overview embed of every running session
func renderMatchList(matches []*match.MatchStatus) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Running matches",
		Color: colorOK,
	}
	if len(matches) == 0 {
		embed.Description = "No match is running."
		return embed
	}
	for _, st := range matches {
		name := st.MatchID
		value := renderStep(st)
		if st.Type == models.MatchTypeElimination {
			name = fmt.Sprintf("%s: %s vs %s", st.MatchID, st.Red, st.Blue)
			value = fmt.Sprintf("%d - %d, %s", st.Wins[models.TeamRed], st.Wins[models.TeamBlue], value)
		}
		if st.ChannelID != "" {
			value += fmt.Sprintf(" in <#%s>", st.ChannelID)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: value})
	}
	return embed
}
