package engine

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/autoref/internal/models"
)

const (
	// HoldKeyword pauses the match from any sender
	HoldKeyword = "!panic"

	// ResumeKeyword ends a hold. Only the referee may use it, with either ! or the admin prefix.
	ResumeKeyword = "panic_over"

	// TimeoutKeyword is a team's single timeout request
	TimeoutKeyword = "!timeout"
)

func isResume(text string) bool {
	first := strings.ToLower(firstToken(text))
	return first == "!"+ResumeKeyword || first == AdminPrefix+ResumeKeyword
}

func isHold(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, HoldKeyword) && !strings.Contains(lower, ResumeKeyword)
}

func isTimeoutRequest(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), TimeoutKeyword)
}

func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// override handles hold and resume lines and reports whether text was one
func (m *machine) override(t *tx, sender, text string) bool {
	if isResume(text) {
		if m.mc.IsReferee(sender) && t.phase() == PhaseOnHold {
			m.flow.endHold(t)
			t.st.Resume = Step{}
		}
		return true
	}

	if !isHold(text) {
		return false
	}
	if t.phase() == PhaseOnHold || !m.flow.canHold(t.phase()) {
		return true
	}

	t.st.Resume = t.st.Step
	t.set(PhaseOnHold, "")
	t.cancelTimers()
	t.say("!mp aborttimer")
	t.say(fmt.Sprintf(msgHold, holdMention(t.cfg.HoldMention), sender))
	return true
}

func holdMention(mention string) string {
	if mention == "" {
		return ""
	}
	return mention + " "
}

func (m *machine) teamTimeout(t *tx, team models.TeamColor) {
	if !m.flow.canTimeout(t.phase()) || t.st.Ledger.TimeoutUsed[team] {
		return
	}
	t.st.Ledger.TimeoutUsed[team] = true
	m.enterTimeout(t, fmt.Sprintf(msgTeamTimeout, m.mc.TeamName(team)))
}

func (m *machine) enterTimeout(t *tx, line string) {
	t.st.Resume = t.st.Step
	t.set(PhaseOnTimeout, "")
	t.say(line)
	t.lobbyTimer(t.cfg.TimeoutTimer)
}

func (m *machine) endTimeout(t *tx) {
	t.st.Step = t.st.Resume
	t.st.Resume = Step{}
	t.say(msgTimeoutOver)
	t.lobbyTimer(t.cfg.AfterTimeoutTimer)
}
