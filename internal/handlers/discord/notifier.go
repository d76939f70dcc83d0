package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/services/notify"
)

// maxMessageLength is the Discord limit for a single message
const maxMessageLength = 2000

// ChannelNotifier posts notified lines to the coordination channel bound to each match
type ChannelNotifier struct {
	session Session
	log     logrus.FieldLogger

	mu       sync.RWMutex
	channels map[string]string // match id -> channel id
	matches  map[string]string // channel id -> match id
}

// NewChannelNotifier creates a notifier with no bound channels
func NewChannelNotifier(session Session, log logrus.FieldLogger) (*ChannelNotifier, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &ChannelNotifier{
		session:  session,
		log:      log.WithField("component", "discord_notifier"),
		channels: make(map[string]string),
		matches:  make(map[string]string),
	}, nil
}

// Bind routes the lines of matchID to channelID, replacing any earlier binding of either
func (n *ChannelNotifier) Bind(matchID, channelID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if old, ok := n.channels[matchID]; ok {
		delete(n.matches, old)
	}
	if old, ok := n.matches[channelID]; ok {
		delete(n.channels, old)
	}
	n.channels[matchID] = channelID
	n.matches[channelID] = matchID
}

// Unbind forgets the channel of matchID
func (n *ChannelNotifier) Unbind(matchID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ch, ok := n.channels[matchID]; ok {
		delete(n.matches, ch)
		delete(n.channels, matchID)
	}
}

// ChannelFor returns the channel bound to matchID
func (n *ChannelNotifier) ChannelFor(matchID string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ch, ok := n.channels[matchID]
	return ch, ok
}

// MatchFor returns the match bound to channelID
func (n *ChannelNotifier) MatchFor(channelID string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	id, ok := n.matches[channelID]
	return id, ok
}

func (n *ChannelNotifier) Notify(ctx context.Context, input *notify.NotifyInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	channelID, ok := n.ChannelFor(input.MatchID)
	if !ok {
		n.log.WithField("match_id", input.MatchID).Debug("no channel bound, dropping line")
		return nil
	}

	text := notify.Format(input)
	text = truncate(text, maxMessageLength)
	if _, err := n.session.ChannelMessageSend(channelID, text); err != nil {
		return fmt.Errorf("failed to post to channel %s: %w", channelID, err)
	}
	return nil
}

// truncate cuts text to at most limit bytes without splitting a rune
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
