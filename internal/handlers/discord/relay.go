package discord

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/services/match"
)

const relayTimeout = 5 * time.Second

// relay forwards messages posted in a match channel into that match's lobby
type relay struct {
	matches  match.Service
	channels *ChannelNotifier
	log      logrus.FieldLogger
}

func (r *relay) handle(selfID string, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot || m.Author.ID == selfID {
		return
	}
	text := strings.TrimSpace(m.Content)
	if text == "" {
		return
	}
	matchID, ok := r.channels.MatchFor(m.ChannelID)
	if !ok {
		return
	}

	user := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		user = m.Member.Nick
	}

	ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
	defer cancel()

	err := r.matches.RelayMessage(ctx, &match.RelayMessageInput{
		MatchID: matchID,
		User:    user,
		Text:    text,
	})
	switch {
	case err == nil:
	case errors.Is(err, match.ErrMatchNotFound), errors.Is(err, match.ErrSessionClosed):
		// the channel outlives its session
	default:
		r.log.WithError(err).WithField("match_id", matchID).Warn("failed to relay message")
	}
}
