package bancho

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/autoref/internal/engine"
)

// BotName is the lobby-bot nick on Bancho
const BotName = "BanchoBot"

var (
	createdRe  = regexp.MustCompile(`^Created the tournament match https?://osu\.ppy\.sh/mp/(\d+)`)
	finishedRe = regexp.MustCompile(`^(.*) finished playing \(Score: (\d+),`)
	beatmapRe  = regexp.MustCompile(`osu\.ppy\.sh/b/(\d+)`)
)

// Parse turns a lobby line into an engine event. Lines that are not lobby-bot
// notices come back as chat messages.
func Parse(sender, text string) engine.Event {
	if sender != BotName {
		return engine.ChatMessage{Sender: sender, Text: text}
	}

	switch {
	case strings.HasPrefix(text, "All players are ready"):
		return engine.AllReady{}
	case strings.HasPrefix(text, "Countdown finished"):
		return engine.CountdownElapsed{}
	case strings.HasPrefix(text, "The match has finished"):
		return engine.MatchFinished{}
	case strings.HasPrefix(text, "Closed the match"):
		return engine.LobbyClosed{}
	}

	if m := finishedRe.FindStringSubmatch(text); m != nil {
		if score, err := strconv.ParseInt(m[2], 10, 64); err == nil {
			return engine.PlayerFinished{Player: m[1], Score: score}
		}
	}

	if m := createdRe.FindStringSubmatch(text); m != nil {
		if id, err := strconv.Atoi(m[1]); err == nil {
			return engine.LobbyCreated{LinkID: id}
		}
	}

	if strings.HasPrefix(text, "Changed beatmap to") || strings.HasPrefix(text, "Beatmap changed to") {
		if m := beatmapRe.FindStringSubmatch(text); m != nil {
			if id, err := strconv.Atoi(m[1]); err == nil {
				return engine.MapChanged{BeatmapID: id}
			}
		}
	}

	return engine.ChatMessage{Sender: sender, Text: text}
}

// LobbyChannel returns the channel of a lobby creation notice
func LobbyChannel(text string) (string, bool) {
	m := createdRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("#mp_%s", m[1]), true
}
