package engine

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/autoref/internal/models"
)

// AdminPrefix marks a referee control line
const AdminPrefix = ">"

// admin runs a referee command. Lines from anyone else are dropped without a reply.
func (m *machine) admin(t *tx, sender, line string) error {
	if !m.mc.IsReferee(sender) {
		return nil
	}

	fields := strings.Fields(strings.TrimPrefix(line, AdminPrefix))
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "start":
		return m.start(t)
	case "stop":
		m.stop(t)
	case "firstpick":
		m.assign(t, cmd, args, &t.st.Ledger.FirstPick, msgFirstPickSet)
	case "firstban":
		m.assign(t, cmd, args, &t.st.Ledger.FirstBan, msgFirstBanSet)
	case "setmap":
		m.setMap(t, cmd, args)
	case "maps":
		m.flow.report(t)
	case "timeout":
		if !m.flow.canTimeout(t.phase()) {
			t.say(msgTimeoutUnavailable)
			return nil
		}
		m.enterTimeout(t, msgRefereeTimeout)
	case "invite":
		m.flow.invite(t)
	case "finish":
		t.say("!mp close")
	}
	return nil
}

func (m *machine) start(t *tx) error {
	l := &t.st.Ledger
	if m.flow.needsDraftOrder() && (l.FirstPick == "" || l.FirstBan == "") {
		t.say(msgDraftOrderMissing)
		return nil
	}

	switch t.phase() {
	case PhaseInactive:
	case PhaseMatchFinished:
		t.say(msgAlreadyFinished)
		return nil
	default:
		t.say(msgAlreadyEngaged)
		return nil
	}

	if t.st.StoppedByReferee {
		saved := t.st.Saved
		t.st.StoppedByReferee = false
		t.st.Saved = Step{}
		if saved.Phase != "" && saved.Phase != PhaseInactive {
			t.st.Step = saved
			t.say(msgResuming)
			return m.flow.resumed(t)
		}
	}

	t.say(m.flow.engageLine(m.mc))
	return m.flow.begin(t)
}

func (m *machine) stop(t *tx) {
	if t.phase() == PhaseInactive {
		t.say(msgAlreadyStopped)
		return
	}
	t.st.Saved = t.st.Step
	t.st.StoppedByReferee = true
	t.set(PhaseInactive, "")
	t.cancelTimers()
	t.say("!mp aborttimer")
	t.say(msgStopped)
}

func (m *machine) assign(t *tx, cmd string, args []string, target *models.TeamColor, format string) {
	if len(args) == 0 {
		t.say(fmt.Sprintf(msgNotEnoughArgs, cmd))
		return
	}

	var team models.TeamColor
	switch strings.ToLower(args[0]) {
	case "red":
		team = models.TeamRed
	case "blue":
		team = models.TeamBlue
	default:
		t.say(fmt.Sprintf(msgInvalidTeam, args[0]))
		return
	}

	*target = team
	t.say(fmt.Sprintf(format, m.mc.TeamName(team)))
}

func (m *machine) setMap(t *tx, cmd string, args []string) {
	if t.phase() != PhaseInactive {
		t.say(msgSetMapFail)
		return
	}
	if len(args) == 0 {
		t.say(fmt.Sprintf(msgNotEnoughArgs, cmd))
		return
	}

	bm, ok := m.mc.Beatmap(args[0])
	if !ok {
		t.say(fmt.Sprintf(msgUnknownSlot, canonicalSlot(args[0])))
		return
	}
	t.st.CurrentSlot = bm.Slot
	t.loadBeatmap(bm, t.cfg.PickTimer)
}

func joinSlots(slots []string) string {
	if len(slots) == 0 {
		return msgNone
	}
	return strings.Join(slots, ", ")
}

func joinChoices(choices []models.RoundChoice) string {
	slots := make([]string, 0, len(choices))
	for _, c := range choices {
		slots = append(slots, c.Slot)
	}
	return joinSlots(slots)
}
