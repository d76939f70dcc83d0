package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/autoref/internal/models"
)

// Machine drives one match. It is not safe for concurrent use; callers serialize events.
type Machine interface {
	// Handle applies one event. On error the state is left as it was and no effects are returned.
	Handle(ev Event) ([]Effect, error)

	// State returns a copy of the current state
	State() State

	// Context returns the match metadata
	Context() MatchContext
}

// flow is the mode specific part of a machine
type flow interface {
	engageLine(mc MatchContext) string
	lobbySettings() string
	needsDraftOrder() bool
	canHold(p Phase) bool
	canTimeout(p Phase) bool

	begin(t *tx) error
	resumed(t *tx) error
	advance(t *tx, ev Event) error
	fired(t *tx, ev TimerFired) error
	endHold(t *tx)
	report(t *tx)
	invite(t *tx)
}

type machine struct {
	mc    MatchContext
	cfg   Config
	flow  flow
	state State
}

// New validates mc and returns the machine for its match type
func New(mc MatchContext, cfg *Config) (Machine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	mc = mc.withDefaults()
	if err := mc.Validate(); err != nil {
		return nil, err
	}

	var f flow
	switch mc.Type {
	case models.MatchTypeQualifiers:
		f = qualifiers{}
	default:
		f = elimination{}
	}

	return &machine{
		mc:    mc,
		cfg:   *cfg,
		flow:  f,
		state: newState(),
	}, nil
}

// Restore rebuilds a machine from a snapshot. A running snapshot comes back
// stopped by the referee so that a start resumes it.
func Restore(mc MatchContext, cfg *Config, st State) (Machine, error) {
	m, err := New(mc, cfg)
	if err != nil {
		return nil, err
	}
	mm := m.(*machine)

	st = st.clone()
	if st.Ledger.MapScores == nil || st.Ledger.Wins == nil || st.Ledger.TimeoutUsed == nil {
		fresh := NewLedger()
		if st.Ledger.MapScores == nil {
			st.Ledger.MapScores = fresh.MapScores
		}
		if st.Ledger.Wins == nil {
			st.Ledger.Wins = fresh.Wins
		}
		if st.Ledger.TimeoutUsed == nil {
			st.Ledger.TimeoutUsed = fresh.TimeoutUsed
		}
	}
	if err := st.Ledger.check(mm.mc); err != nil {
		return nil, err
	}
	if st.Step.Phase == "" {
		st.Step.Phase = PhaseInactive
	}
	if st.Step.Phase != PhaseInactive && st.Step.Phase != PhaseMatchFinished {
		st.Saved = st.Step
		st.Step = Step{Phase: PhaseInactive}
		st.StoppedByReferee = true
	}
	st.TimerGen++
	mm.state = st
	return mm, nil
}

func (m *machine) State() State {
	return m.state.clone()
}

func (m *machine) Context() MatchContext {
	return m.mc
}

func (m *machine) Handle(ev Event) (effects []Effect, err error) {
	t := &tx{mc: m.mc, cfg: &m.cfg, st: new(State)}
	*t.st = m.state.clone()

	defer func() {
		if r := recover(); r != nil {
			effects = nil
			err = fmt.Errorf("%w: %v", ErrTransitionFault, r)
		}
	}()

	if err := m.dispatch(t, ev); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransitionFault, err)
	}

	m.state = *t.st
	return t.effects, nil
}

func (m *machine) dispatch(t *tx, ev Event) error {
	switch e := ev.(type) {
	case LobbyCreated:
		t.st.Ledger.MpLinkID = e.LinkID
		t.quiet(m.flow.lobbySettings())
		t.quiet("!mp invite " + NormalizeName(m.mc.Referee.Name))
		t.say(fmt.Sprintf(msgJoinLobby, fmt.Sprintf("#mp_%d", e.LinkID)))
		return nil

	case LobbyClosed:
		t.cancelTimers()
		t.effects = append(t.effects, Teardown{})
		return nil

	case PlayerFinished:
		if t.phase() == PhaseGameInProgress {
			t.st.Ledger.RecordScore(e.Player, e.Score)
		}
		return nil

	case TimerFired:
		if e.Gen != t.st.TimerGen {
			return nil
		}
		return m.flow.fired(t, e)

	case CountdownElapsed:
		if t.phase() == PhaseOnTimeout {
			m.endTimeout(t)
			return nil
		}
		return m.flow.advance(t, e)

	case ChatMessage:
		text := strings.TrimSpace(e.Text)
		if m.override(t, e.Sender, text) {
			return nil
		}
		if strings.HasPrefix(text, AdminPrefix) {
			return m.admin(t, e.Sender, text)
		}
		if isTimeoutRequest(text) {
			if team, ok := m.mc.TeamOf(e.Sender); ok {
				m.teamTimeout(t, team)
			}
			return nil
		}
		return m.flow.advance(t, ChatMessage{Sender: e.Sender, Text: text})

	default:
		return m.flow.advance(t, ev)
	}
}

// tx is the working copy of a single transition
type tx struct {
	mc      MatchContext
	cfg     *Config
	st      *State
	effects []Effect
}

func (t *tx) phase() Phase {
	return t.st.Step.Phase
}

func (t *tx) set(p Phase, team models.TeamColor) {
	t.st.Step = Step{Phase: p, Team: team}
}

func (t *tx) say(line string) {
	t.effects = append(t.effects, Say{Line: line, Mirror: true})
}

func (t *tx) quiet(line string) {
	t.effects = append(t.effects, Say{Line: line})
}

func (t *tx) lobbyTimer(d time.Duration) {
	t.say(fmt.Sprintf("!mp timer %d", seconds(d)))
}

func (t *tx) startGame() {
	t.say(fmt.Sprintf("!mp start %d", seconds(t.cfg.StartDelay)))
	t.set(PhaseGameInProgress, "")
}

func (t *tx) loadBeatmap(bm models.RoundBeatmap, countdown time.Duration) {
	t.say(fmt.Sprintf("!mp map %d", bm.BeatmapID))
	t.say(fmt.Sprintf("!mp mods %s NF", modGroup(bm.Slot)))
	t.lobbyTimer(countdown)
}

func (t *tx) schedule(kind TimerKind, after time.Duration) {
	t.effects = append(t.effects, Schedule{Timer: kind, After: after, Gen: t.st.TimerGen})
}

// cancelTimers bumps the generation so timers already in flight are ignored
func (t *tx) cancelTimers() {
	t.st.TimerGen++
	t.effects = append(t.effects, CancelTimers{})
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

func modGroup(slot string) string {
	if len(slot) < 2 {
		return slot
	}
	return slot[:2]
}
