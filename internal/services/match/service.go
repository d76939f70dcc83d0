package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/engine"
	"github.com/KirkDiggler/autoref/internal/lobby"
)

const defaultPersistTimeout = 10 * time.Second

type service struct {
	cfg *Config
	log logrus.FieldLogger

	mu sync.Mutex
	// sessions maps match id to its session. A nil entry reserves the id while it loads.
	sessions map[string]*session
}

// NewService creates a match service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Tournament == nil {
		return nil, ErrNilTournamentRepo
	}
	if cfg.Snapshots == nil {
		return nil, ErrNilSnapshotRepo
	}
	if cfg.Dialer == nil {
		return nil, ErrNilDialer
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	c := *cfg
	if c.Engine == nil {
		c.Engine = engine.DefaultConfig()
	}
	if c.LineDelay < 0 {
		c.LineDelay = 0
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = defaultPersistTimeout
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		c.Logger = l
	}

	return &service{
		cfg:      &c,
		log:      c.Logger.WithField("component", "match"),
		sessions: make(map[string]*session),
	}, nil
}

func (s *service) reserve(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[matchID]; ok {
		return ErrMatchAlreadyRunning
	}
	s.sessions[matchID] = nil
	return nil
}

func (s *service) release(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[matchID]; ok && sess == nil {
		delete(s.sessions, matchID)
	}
}

func (s *service) attach(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.matchID] = sess
}

func (s *service) detach(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sess.matchID] == sess {
		delete(s.sessions, sess.matchID)
	}
}

func (s *service) lookup(matchID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[strings.TrimSpace(matchID)]
	if sess == nil {
		return nil, ErrMatchNotFound
	}
	return sess, nil
}

func (s *service) running() []*session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess != nil {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].matchID < out[j].matchID })
	return out
}

// StartMatch loads the match, restores any unfinished snapshot and opens the lobby
func (s *service) StartMatch(ctx context.Context, input *StartMatchInput) (*StartMatchOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrSetup)
	}
	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrSetup)
	}
	if strings.TrimSpace(input.RefereeName) == "" {
		return nil, fmt.Errorf("%w: referee is required", ErrSetup)
	}

	if err := s.reserve(matchID); err != nil {
		return nil, err
	}
	started := false
	defer func() {
		if !started {
			s.release(matchID)
		}
	}()

	setup, err := s.load(ctx, matchID, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	machine, restored, err := s.restore(ctx, setup.mc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	sessionID := s.cfg.UUID.NewUUID()
	log := s.log.WithFields(logrus.Fields{
		"match_id":   matchID,
		"session_id": sessionID,
		"type":       setup.mc.Type,
	})

	sess := &session{
		id:             sessionID,
		matchID:        matchID,
		channelID:      input.ChannelID,
		startedAt:      s.cfg.Clock.Now(),
		machine:        machine,
		notifier:       s.cfg.Notifier,
		repo:           s.cfg.Tournament,
		snapshots:      s.cfg.Snapshots,
		clock:          s.cfg.Clock,
		log:            log,
		lineDelay:      s.cfg.LineDelay,
		persistTimeout: s.cfg.PersistTimeout,
		inbox:          make(chan message, inboxSize),
		done:           make(chan struct{}),
		onClose:        s.detach,
	}

	conn, err := s.cfg.Dialer.Dial(ctx, &lobby.DialInput{
		Nick:      engine.NormalizeName(setup.referee.DisplayName),
		Password:  setup.referee.IRCPassword,
		LobbyName: setup.lobbyName,
		Private:   s.cfg.PrivateLobbies,
		Handler:   sess.handleLine,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open lobby: %w", ErrSetup, err)
	}
	sess.conn = conn

	s.attach(sess)
	started = true
	go sess.run()

	log.WithFields(logrus.Fields{
		"lobby":    conn.Channel(),
		"restored": restored,
	}).Info("session started")

	return &StartMatchOutput{SessionID: sessionID, Restored: restored}, nil
}

// EndMatch stops the session and waits until its outcome is persisted
func (s *service) EndMatch(ctx context.Context, input *EndMatchInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	sess, err := s.lookup(input.MatchID)
	if err != nil {
		return err
	}

	reply := make(chan error, 1)
	perr, err := request(ctx, sess, stopRequest{closeLobby: input.CloseLobby, reply: reply}, reply)
	if err != nil {
		return err
	}
	return perr
}

func (s *service) RelayMessage(ctx context.Context, input *RelayMessageInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	sess, err := s.lookup(input.MatchID)
	if err != nil {
		return err
	}

	select {
	case sess.inbox <- relayLine{user: input.User, text: input.Text}:
		return nil
	case <-sess.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *service) GetMatchStatus(ctx context.Context, input *GetMatchStatusInput) (*GetMatchStatusOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	sess, err := s.lookup(input.MatchID)
	if err != nil {
		return nil, err
	}

	reply := make(chan *MatchStatus, 1)
	status, err := request(ctx, sess, statusRequest{reply: reply}, reply)
	if err != nil {
		return nil, err
	}
	return &GetMatchStatusOutput{Status: status}, nil
}

func (s *service) ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error) {
	out := &ListMatchesOutput{Matches: []*MatchStatus{}}
	for _, sess := range s.running() {
		reply := make(chan *MatchStatus, 1)
		status, err := request(ctx, sess, statusRequest{reply: reply}, reply)
		if errors.Is(err, ErrSessionClosed) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out.Matches = append(out.Matches, status)
	}
	return out, nil
}

// SnapshotAll asks every session to save its state if it changed since the last save
func (s *service) SnapshotAll(ctx context.Context) error {
	var errs []error
	for _, sess := range s.running() {
		reply := make(chan error, 1)
		serr, err := request(ctx, sess, snapshotRequest{reply: reply}, reply)
		if errors.Is(err, ErrSessionClosed) {
			continue
		}
		if err == nil {
			err = serr
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("match %s: %w", sess.matchID, err))
		}
	}
	return errors.Join(errs...)
}

// Shutdown suspends every session without closing lobbies, so a restart can resume them
func (s *service) Shutdown(ctx context.Context) error {
	var errs []error
	for _, sess := range s.running() {
		reply := make(chan error, 1)
		serr, err := request(ctx, sess, stopRequest{suspend: true, reply: reply}, reply)
		if errors.Is(err, ErrSessionClosed) {
			continue
		}
		if err == nil {
			err = serr
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("match %s: %w", sess.matchID, err))
		}
	}
	return errors.Join(errs...)
}
