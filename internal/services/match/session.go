package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/common/clock"
	"github.com/KirkDiggler/autoref/internal/engine"
	"github.com/KirkDiggler/autoref/internal/lobby"
	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/KirkDiggler/autoref/internal/repositories/ledger"
	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
	"github.com/KirkDiggler/autoref/internal/services/notify"
)

// message is anything a session's inbox accepts
type message interface {
	isMessage()
}

type lobbyLine struct {
	line lobby.Line
}

type relayLine struct {
	user string
	text string
}

type timerExpired struct {
	ev engine.TimerFired
}

type statusRequest struct {
	reply chan *MatchStatus
}

type snapshotRequest struct {
	reply chan error
}

type stopRequest struct {
	closeLobby bool
	// suspend leaves the match result untouched so a later session can resume
	suspend bool
	reply   chan error
}

func (lobbyLine) isMessage()       {}
func (relayLine) isMessage()       {}
func (timerExpired) isMessage()    {}
func (statusRequest) isMessage()   {}
func (snapshotRequest) isMessage() {}
func (stopRequest) isMessage()     {}

const inboxSize = 64

// session owns one engine and everything it touches. Only run reads or writes its fields.
type session struct {
	id        string
	matchID   string
	channelID string
	startedAt time.Time

	machine   engine.Machine
	conn      lobby.Conn
	notifier  notify.Notifier
	repo      tournament.Repository
	snapshots ledger.Repository
	clock     clock.Clock
	log       logrus.FieldLogger

	lineDelay      time.Duration
	persistTimeout time.Duration

	inbox  chan message
	done   chan struct{}
	timers []clock.Timer
	dirty  bool

	onClose func(*session)
}

// post queues a message unless the session already ended
func (s *session) post(m message) bool {
	select {
	case s.inbox <- m:
		return true
	case <-s.done:
		return false
	}
}

// handleLine is the lobby handler passed to the dialer
func (s *session) handleLine(l lobby.Line) {
	s.post(lobbyLine{line: l})
}

func (s *session) run() {
	defer func() {
		close(s.done)
		if s.onClose != nil {
			s.onClose(s)
		}
	}()

	for m := range s.inbox {
		switch msg := m.(type) {
		case lobbyLine:
			if s.onLobbyLine(msg.line) {
				// the adapter reports a lost connection without a sender
				if msg.line.Sender == "" {
					s.teardown(false, true, "connection lost")
				} else {
					s.teardown(false, false, "lobby closed")
				}
				return
			}

		case relayLine:
			if s.onRelay(msg.user, msg.text) {
				s.teardown(false, false, "lobby closed")
				return
			}

		case timerExpired:
			if s.apply(msg.ev) {
				s.teardown(false, false, "lobby closed")
				return
			}

		case statusRequest:
			msg.reply <- s.status()

		case snapshotRequest:
			ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
			var err error
			if s.dirty {
				err = s.saveSnapshot(ctx, false)
			}
			cancel()
			msg.reply <- err

		case stopRequest:
			reason := "stopped"
			if msg.suspend {
				reason = "suspended"
			}
			msg.reply <- s.teardown(msg.closeLobby, msg.suspend, reason)
			return
		}
	}
}

func (s *session) onLobbyLine(l lobby.Line) bool {
	ctx := context.Background()
	if l.Sender == "" {
		s.notice(ctx, l.Text)
	} else {
		s.mirror(ctx, notify.SourceLobby, l.Sender, l.Text)
	}

	if l.Event == nil {
		return false
	}
	return s.apply(l.Event)
}

// onRelay forwards a coordination channel message. Command lines go in raw and
// are also fed to the engine as referee lines since the lobby does not echo them.
func (s *session) onRelay(user, text string) bool {
	ctx := context.Background()
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if !strings.HasPrefix(text, "!") && !strings.HasPrefix(text, engine.AdminPrefix) {
		s.send(ctx, fmt.Sprintf("[DISCORD | %s] %s", user, text))
		return false
	}

	s.send(ctx, text)
	referee := engine.NormalizeName(s.machine.Context().Referee.Name)
	return s.apply(engine.ChatMessage{Sender: referee, Text: text})
}

// apply runs one event through the engine and executes its effects. It reports
// whether the session must end.
func (s *session) apply(ev engine.Event) bool {
	ctx := context.Background()

	effects, err := s.machine.Handle(ev)
	if err != nil {
		s.log.WithError(err).WithField("event", fmt.Sprintf("%T", ev)).Error("transition failed")
		s.notice(ctx, "The referee bot hit an internal error handling the last event. The match state was left unchanged.")
		return false
	}
	if len(effects) > 0 {
		s.dirty = true
	}

	sent := 0
	teardown := false
	for _, eff := range effects {
		switch e := eff.(type) {
		case engine.Say:
			if sent > 0 && s.lineDelay > 0 {
				s.clock.Sleep(s.lineDelay)
			}
			sent++
			s.send(ctx, e.Line)
			if e.Mirror {
				s.mirror(ctx, notify.SourceEngine, s.machine.Context().Referee.Name, e.Line)
			}

		case engine.Schedule:
			s.arm(e)

		case engine.CancelTimers:
			s.stopTimers()

		case engine.Teardown:
			teardown = true
		}
	}
	return teardown
}

func (s *session) send(ctx context.Context, line string) {
	if err := s.conn.Send(ctx, line); err != nil {
		s.log.WithError(err).WithField("line", line).Warn("failed to send lobby line")
	}
}

func (s *session) mirror(ctx context.Context, source notify.Source, sender, text string) {
	err := s.notifier.Notify(ctx, &notify.NotifyInput{
		MatchID: s.matchID,
		Source:  source,
		Sender:  sender,
		Text:    text,
		SentAt:  s.clock.Now(),
	})
	if err != nil {
		s.log.WithError(err).Warn("failed to mirror line")
	}
}

func (s *session) notice(ctx context.Context, text string) {
	s.mirror(ctx, notify.SourceSystem, "", text)
}

func (s *session) arm(e engine.Schedule) {
	ev := engine.TimerFired{Timer: e.Timer, Gen: e.Gen}
	t := s.clock.AfterFunc(e.After, func() {
		s.post(timerExpired{ev: ev})
	})
	s.timers = append(s.timers, t)
}

func (s *session) stopTimers() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

func (s *session) status() *MatchStatus {
	st := s.machine.State()
	mc := s.machine.Context()

	out := &MatchStatus{
		MatchID:   s.matchID,
		SessionID: s.id,
		Type:      mc.Type,
		ChannelID: s.channelID,
		Lobby:     s.conn.Channel(),
		MpLinkID:  st.Ledger.MpLinkID,
		Step:      st.Step.String(),
		Stopped:   st.StoppedByReferee,
		Referee:   mc.Referee.Name,
		MapIndex:  st.MapIndex,
		PoolSize:  len(mc.Rules.Pool),
		StartedAt: s.startedAt,
	}
	if mc.Type == models.MatchTypeElimination {
		out.Red = mc.Red.Name
		out.Blue = mc.Blue.Name
		out.Wins = map[models.TeamColor]int{
			models.TeamRed:  st.Ledger.Wins[models.TeamRed],
			models.TeamBlue: st.Ledger.Wins[models.TeamBlue],
		}
		out.Banned = append([]models.RoundChoice(nil), st.Ledger.Banned...)
		out.Picked = append([]models.RoundChoice(nil), st.Ledger.Picked...)
	}
	return out
}

// snapshot encodes the engine state. A closed snapshot is final even when the
// engine never reached its terminal phase.
func (s *session) snapshot(closed bool) (*models.MatchSnapshot, error) {
	st := s.machine.State()
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return &models.MatchSnapshot{
		MatchID:   s.matchID,
		Type:      s.machine.Context().Type,
		Phase:     string(st.Phase()),
		Finished:  closed || st.Phase() == engine.PhaseMatchFinished,
		State:     data,
		UpdatedAt: s.clock.Now(),
	}, nil
}

func (s *session) saveSnapshot(ctx context.Context, closed bool) error {
	snap, err := s.snapshot(closed)
	if err != nil {
		return err
	}
	if err := s.snapshots.SaveSnapshot(ctx, &ledger.SaveSnapshotInput{Snapshot: snap}); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *session) persistResult(ctx context.Context) error {
	st := s.machine.State()

	if s.machine.Context().Type == models.MatchTypeQualifiers {
		if st.Ledger.MpLinkID == 0 {
			return nil
		}
		return s.repo.SaveQualifierResult(ctx, &tournament.SaveQualifierResultInput{
			RoomID:   s.matchID,
			MpLinkID: st.Ledger.MpLinkID,
		})
	}

	return s.repo.SaveMatchResult(ctx, &tournament.SaveMatchResultInput{
		MatchID:  s.matchID,
		Banned:   st.Ledger.Banned,
		Picked:   st.Ledger.Picked,
		MpLinkID: st.Ledger.MpLinkID,
		EndTime:  s.clock.Now(),
	})
}

// teardown persists the session and leaves the lobby. A suspended session only
// saves its snapshot, unfinished, so a later start resumes it.
func (s *session) teardown(closeLobby, suspend bool, reason string) error {
	s.stopTimers()

	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	if closeLobby {
		s.send(ctx, "!mp close")
	}

	var errs []error
	if !suspend {
		if err := s.persistResult(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to save match result: %w", err))
		}
	}
	if err := s.saveSnapshot(ctx, !suspend); err != nil {
		errs = append(errs, fmt.Errorf("failed to save snapshot: %w", err))
	}
	if err := s.conn.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close lobby: %w", err))
	}

	err := errors.Join(errs...)
	log := s.log.WithField("reason", reason)
	if err != nil {
		log.WithError(err).Error("session ended with errors")
	} else {
		log.Info("session ended")
	}

	s.notice(ctx, fmt.Sprintf("Session for match %s ended (%s).", s.matchID, reason))
	return err
}

// request delivers m and waits for the reply written to reply
func request[T any](ctx context.Context, s *session, m message, reply chan T) (T, error) {
	var zero T
	select {
	case s.inbox <- m:
	case <-s.done:
		return zero, ErrSessionClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		// the reply may have been written just before the session ended
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, ErrSessionClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
