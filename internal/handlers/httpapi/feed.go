package httpapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/common/uuid"
	"github.com/KirkDiggler/autoref/internal/services/notify"
)

const defaultSubscriberBuffer = 64

// FeedEvent is one line pushed to live feed subscribers
type FeedEvent struct {
	MatchID string        `json:"match_id"`
	Source  notify.Source `json:"source"`
	Sender  string        `json:"sender,omitempty"`
	Text    string        `json:"text"`
	Line    string        `json:"line"`
	SentAt  time.Time     `json:"sent_at"`
}

type subscriber struct {
	matchID string // empty follows every match
	events  chan FeedEvent
}

// Feed fans notified lines out to websocket subscribers. Slow subscribers lose lines.
type Feed struct {
	uuid   uuid.UUID
	log    logrus.FieldLogger
	buffer int

	mu   sync.RWMutex
	subs map[string]*subscriber
}

type FeedConfig struct {
	UUID   uuid.UUID
	Logger logrus.FieldLogger

	// Buffer is the per subscriber queue length
	Buffer int
}

func NewFeed(cfg *FeedConfig) (*Feed, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.UUID == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Feed{
		uuid:   cfg.UUID,
		log:    cfg.Logger.WithField("component", "feed"),
		buffer: buffer,
		subs:   make(map[string]*subscriber),
	}, nil
}

// Subscribe registers a subscriber for matchID, or every match when matchID is empty.
// The returned cancel func unregisters it and closes the channel.
func (f *Feed) Subscribe(matchID string) (string, <-chan FeedEvent, func()) {
	id := f.uuid.NewUUID()
	sub := &subscriber{matchID: matchID, events: make(chan FeedEvent, f.buffer)}

	f.mu.Lock()
	f.subs[id] = sub
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(sub.events)
		})
	}
	return id, sub.events, cancel
}

// Subscribers returns the number of open subscriptions
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

func (f *Feed) Notify(_ context.Context, input *notify.NotifyInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	ev := FeedEvent{
		MatchID: input.MatchID,
		Source:  input.Source,
		Sender:  input.Sender,
		Text:    input.Text,
		Line:    notify.Format(input),
		SentAt:  input.SentAt,
	}

	// the read lock also keeps cancel from closing a channel mid send
	f.mu.RLock()
	defer f.mu.RUnlock()
	for id, sub := range f.subs {
		if sub.matchID != "" && sub.matchID != input.MatchID {
			continue
		}
		select {
		case sub.events <- ev:
		default:
			f.log.WithFields(logrus.Fields{"subscriber": id, "match_id": input.MatchID}).Warn("subscriber is behind, dropping line")
		}
	}
	return nil
}
