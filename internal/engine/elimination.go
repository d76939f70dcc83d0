package engine

import (
	"fmt"

	"github.com/KirkDiggler/autoref/internal/models"
)

// elimination runs the ban/pick draft and plays picks until one team reaches the win threshold
type elimination struct{}

func (elimination) engageLine(mc MatchContext) string {
	return fmt.Sprintf(msgEngageElimination, mc.MatchID, mc.Red.Name, mc.Blue.Name, mc.Rules.BestOf)
}

func (elimination) lobbySettings() string {
	return "!mp set 2 3 3"
}

func (elimination) needsDraftOrder() bool {
	return true
}

func (elimination) canHold(p Phase) bool {
	return p != PhaseInactive && p != PhaseMatchFinished
}

func (elimination) canTimeout(p Phase) bool {
	switch p {
	case PhaseWaitingBan, PhaseWaitingPick, PhaseWaitingGameStart:
		return true
	}
	return false
}

func (e elimination) begin(t *tx) error {
	t.st.BansRemaining = t.mc.Rules.BanRounds
	t.set(PhaseBanPhaseStart, "")
	return e.settle(t)
}

// resumed restarts the lobby countdown a referee stop aborted
func (e elimination) resumed(t *tx) error {
	switch t.phase() {
	case PhaseOnTimeout:
		t.lobbyTimer(t.cfg.TimeoutTimer)
	case PhaseWaitingBan:
		e.call(t, msgBanCall, t.st.Step.Team)
	case PhaseWaitingPick:
		e.call(t, msgPickCall, t.st.Step.Team)
	case PhaseWaitingGameStart:
		t.lobbyTimer(t.cfg.PickTimer)
	}
	return e.settle(t)
}

// settle moves through the phase-start states, which never wait for input
func (e elimination) settle(t *tx) error {
	for {
		switch t.phase() {
		case PhaseBanPhaseStart:
			if t.st.BansRemaining <= 0 {
				t.set(PhasePickPhaseStart, "")
				continue
			}
			team := t.st.Ledger.FirstBan
			if (t.mc.Rules.BanRounds-t.st.BansRemaining)%2 == 1 {
				team = team.Other()
			}
			t.set(PhaseWaitingBan, team)
			e.call(t, msgBanCall, team)
			return nil

		case PhasePickPhaseStart:
			if len(t.st.Ledger.Picked) >= t.mc.Rules.BestOf-1 {
				return e.tiebreaker(t)
			}
			team := t.st.Ledger.FirstPick
			if t.st.Ledger.LastPick != "" {
				team = t.st.Ledger.LastPick.Other()
			}
			t.set(PhaseWaitingPick, team)
			e.call(t, msgPickCall, team)
			return nil

		default:
			return nil
		}
	}
}

func (e elimination) call(t *tx, format string, team models.TeamColor) {
	t.say(fmt.Sprintf(format, t.mc.TeamName(team)))
	e.status(t)
	t.lobbyTimer(t.cfg.PickTimer)
}

func (e elimination) advance(t *tx, ev Event) error {
	switch ev := ev.(type) {
	case ChatMessage:
		team, ok := t.mc.TeamOf(ev.Sender)
		if !ok || team != t.st.Step.Team {
			return nil
		}
		slot := canonicalSlot(ev.Text)
		if !t.st.Ledger.Eligible(t.mc, slot) {
			return nil
		}
		switch t.phase() {
		case PhaseWaitingBan:
			return e.ban(t, team, slot)
		case PhaseWaitingPick:
			return e.pick(t, team, slot)
		}

	case AllReady, CountdownElapsed:
		if t.phase() == PhaseWaitingGameStart {
			t.startGame()
		}

	case MatchFinished:
		if t.phase() == PhaseGameInProgress {
			return e.finishMap(t)
		}
	}
	return nil
}

func (e elimination) ban(t *tx, team models.TeamColor, slot string) error {
	if err := t.st.Ledger.Ban(t.mc, slot, team); err != nil {
		return err
	}
	t.say(fmt.Sprintf(msgBanned, t.mc.TeamName(team), slot))

	t.st.BansRemaining--
	if t.st.BansRemaining <= 0 {
		t.set(PhasePickPhaseStart, "")
		return e.settle(t)
	}

	next := team.Other()
	t.set(PhaseWaitingBan, next)
	e.call(t, msgBanCall, next)
	return nil
}

func (e elimination) pick(t *tx, team models.TeamColor, slot string) error {
	if err := t.st.Ledger.Pick(t.mc, slot, team); err != nil {
		return err
	}
	t.say(fmt.Sprintf(msgPicked, t.mc.TeamName(team), slot))

	bm, _ := t.mc.Beatmap(slot)
	t.st.CurrentSlot = bm.Slot
	t.loadBeatmap(bm, t.cfg.PickTimer)
	t.set(PhaseWaitingGameStart, "")
	return nil
}

func (e elimination) tiebreaker(t *tx) error {
	if err := t.st.Ledger.PickTiebreaker(t.mc); err != nil {
		return err
	}
	bm, ok := t.mc.Beatmap(t.mc.Rules.Tiebreaker)
	if !ok {
		return fmt.Errorf("%w: tiebreaker %s", ErrSlotUnavailable, t.mc.Rules.Tiebreaker)
	}
	t.say(fmt.Sprintf(msgTiebreaker, bm.Slot))
	t.st.CurrentSlot = bm.Slot
	t.loadBeatmap(bm, t.cfg.PickTimer)
	t.set(PhaseWaitingGameStart, "")
	return nil
}

func (e elimination) finishMap(t *tx) error {
	l := &t.st.Ledger
	red, blue := l.Totals(t.mc)
	l.ClearScores()

	var winner models.TeamColor
	switch {
	case red > blue:
		winner = models.TeamRed
	case blue > red:
		winner = models.TeamBlue
	default:
		t.say(fmt.Sprintf(msgMapTie, red, blue))
		if t.st.CurrentSlot == "" {
			// the map was not loaded by the draft, so there is nothing to replay
			return e.resumeDraft(t)
		}
		bm, ok := t.mc.Beatmap(t.st.CurrentSlot)
		if !ok {
			return fmt.Errorf("%w: no map loaded to replay", ErrSlotUnavailable)
		}
		t.loadBeatmap(bm, t.cfg.PickTimer)
		t.set(PhaseWaitingGameStart, "")
		return nil
	}

	if err := l.Award(t.mc, winner); err != nil {
		return err
	}
	t.st.CurrentSlot = ""
	high, low := red, blue
	if winner == models.TeamBlue {
		high, low = blue, red
	}
	t.say(fmt.Sprintf(msgMapWon, t.mc.TeamName(winner), high, low))
	t.say(fmt.Sprintf(msgScoreLine, t.mc.Red.Name, l.Wins[models.TeamRed], l.Wins[models.TeamBlue], t.mc.Blue.Name, t.mc.Rules.BestOf))

	if team, done := l.Winner(t.mc); done {
		t.say(fmt.Sprintf(msgMatchWon, t.mc.TeamName(team)))
		t.set(PhaseMatchFinished, "")
		return nil
	}

	r := t.mc.Rules
	if r.BanRounds == 2 && !t.st.SecondBanDone && len(l.Picked) == r.SecondBanAfter {
		t.st.SecondBanDone = true
		t.st.BansRemaining = r.BanRounds
		t.say(msgSecondBanRound)
		t.set(PhaseBanPhaseStart, "")
		return e.settle(t)
	}
	return e.resumeDraft(t)
}

// resumeDraft goes back to whatever the draft still owes: bans first, then the
// next pick or the tiebreaker. A map played outside the draft, after a hold or
// a forced setmap, lands here with bans left or no pick made yet.
func (e elimination) resumeDraft(t *tx) error {
	if t.st.BansRemaining > 0 {
		t.set(PhaseBanPhaseStart, "")
	} else {
		t.set(PhasePickPhaseStart, "")
	}
	return e.settle(t)
}

func (e elimination) fired(t *tx, ev TimerFired) error {
	return nil
}

func (e elimination) endHold(t *tx) {
	t.say(msgHoldOver)
	t.set(PhaseWaitingGameStart, "")
	t.lobbyTimer(t.cfg.ResumeTimer)
}

func (e elimination) status(t *tx) {
	l := &t.st.Ledger
	t.say(fmt.Sprintf(msgDraftStatus, joinChoices(l.Banned), joinChoices(l.Picked)))
	t.say(fmt.Sprintf(msgAvailableMaps, joinSlots(l.Available(t.mc))))
}

func (e elimination) report(t *tx) {
	e.status(t)
	l := &t.st.Ledger
	t.say(fmt.Sprintf(msgTimeoutsLeft,
		t.mc.Red.Name, yesNo(!l.TimeoutUsed[models.TeamRed]),
		t.mc.Blue.Name, yesNo(!l.TimeoutUsed[models.TeamBlue])))
}

func (e elimination) invite(t *tx) {
	t.say("!mp invite " + NormalizeName(t.mc.Red.Name))
	t.say("!mp invite " + NormalizeName(t.mc.Blue.Name))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
