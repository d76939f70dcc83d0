package engine

import (
	"fmt"
)

// qualifiers plays every pool entry in order with a cooldown between maps
type qualifiers struct{}

func (qualifiers) engageLine(mc MatchContext) string {
	return fmt.Sprintf(msgEngageQualifiers, mc.MatchID)
}

func (qualifiers) lobbySettings() string {
	return "!mp set 0 3 16"
}

func (qualifiers) needsDraftOrder() bool {
	return false
}

func (qualifiers) canHold(p Phase) bool {
	switch p {
	case PhaseIdle, PhaseWaitingGameStart, PhaseGameInProgress:
		return true
	}
	return false
}

func (qualifiers) canTimeout(Phase) bool {
	return false
}

func (q qualifiers) begin(t *tx) error {
	t.st.MapIndex = 0
	t.set(PhaseIdle, "")
	q.next(t)
	return nil
}

func (q qualifiers) resumed(t *tx) error {
	switch t.phase() {
	case PhaseIdle:
		t.schedule(TimerCooldown, t.cfg.Cooldown)
	case PhaseWaitingGameStart:
		t.lobbyTimer(t.cfg.MapTimer)
	}
	return nil
}

// next loads the pool entry at MapIndex or ends the lobby
func (q qualifiers) next(t *tx) {
	pool := t.mc.Rules.Pool
	if t.st.MapIndex >= len(pool) {
		t.say(msgQualifiersOver)
		t.set(PhaseMatchFinished, "")
		return
	}

	bm, _ := t.mc.Beatmap(pool[t.st.MapIndex].Slot)
	t.say(fmt.Sprintf(msgQualifierMapPlaying, bm.Slot))
	t.st.CurrentSlot = bm.Slot
	t.loadBeatmap(bm, t.cfg.MapTimer)
	t.set(PhaseWaitingGameStart, "")
}

func (q qualifiers) advance(t *tx, ev Event) error {
	switch ev.(type) {
	case AllReady, CountdownElapsed:
		if t.phase() == PhaseWaitingGameStart {
			t.startGame()
		}
	case MatchFinished:
		if t.phase() == PhaseGameInProgress {
			t.st.Ledger.ClearScores()
			t.st.MapIndex++
			t.set(PhaseIdle, "")
			t.schedule(TimerCooldown, t.cfg.Cooldown)
		}
	}
	return nil
}

func (q qualifiers) fired(t *tx, ev TimerFired) error {
	if ev.Timer == TimerCooldown && t.phase() == PhaseIdle {
		q.next(t)
	}
	return nil
}

func (q qualifiers) endHold(t *tx) {
	t.say(msgHoldOver)
	if t.st.Resume.Phase == PhaseIdle {
		t.set(PhaseIdle, "")
		t.schedule(TimerCooldown, t.cfg.ResumeTimer)
		return
	}
	t.set(PhaseWaitingGameStart, "")
	t.lobbyTimer(t.cfg.ResumeTimer)
}

func (q qualifiers) report(t *tx) {
	pool := t.mc.Rules.Pool
	var remaining []string
	for i := t.st.MapIndex; i < len(pool); i++ {
		remaining = append(remaining, canonicalSlot(pool[i].Slot))
	}
	played := t.st.MapIndex
	if played > len(pool) {
		played = len(pool)
	}
	t.say(fmt.Sprintf(msgQualifierProgress, played, len(pool), joinSlots(remaining)))
}

func (q qualifiers) invite(t *tx) {
	for _, id := range t.mc.Players {
		t.say(fmt.Sprintf("!mp invite #%d", id))
	}
}
