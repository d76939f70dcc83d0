package engine

import (
	"testing"

	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerDraft(t *testing.T) {
	mc := eliminationContext(3, 1).withDefaults()
	l := NewLedger()

	require.NoError(t, l.Ban(mc, "nm1", models.TeamRed))
	assert.ErrorIs(t, l.Pick(mc, "NM1", models.TeamBlue), ErrSlotUnavailable)
	assert.ErrorIs(t, l.Ban(mc, "TB1", models.TeamBlue), ErrSlotUnavailable)
	assert.ErrorIs(t, l.Ban(mc, "XX1", models.TeamBlue), ErrSlotUnavailable)

	require.NoError(t, l.Pick(mc, "hd1", models.TeamBlue))
	assert.Equal(t, models.TeamBlue, l.LastPick)
	assert.Equal(t, []string{"HR1", "DT1", "FM1"}, l.Available(mc))

	assert.ErrorIs(t, l.PickTiebreaker(mc), ErrTiebreakerLocked)
	require.NoError(t, l.Pick(mc, "HR1", models.TeamRed))
	require.NoError(t, l.PickTiebreaker(mc))
	assert.ErrorIs(t, l.PickTiebreaker(mc), ErrTiebreakerLocked)
}

func TestLedgerTotals(t *testing.T) {
	mc := eliminationContext(3, 1)
	l := NewLedger()
	l.RecordScore("alpha", 100)
	l.RecordScore("Bravo Team", 250)
	l.RecordScore("spectator", 1000)

	red, blue := l.Totals(mc)
	assert.Equal(t, int64(100), red)
	assert.Equal(t, int64(250), blue)

	l.ClearScores()
	red, blue = l.Totals(mc)
	assert.Zero(t, red)
	assert.Zero(t, blue)
}

func TestLedgerAwardStopsAtThreshold(t *testing.T) {
	mc := eliminationContext(3, 1)
	l := NewLedger()

	require.NoError(t, l.Award(mc, models.TeamRed))
	_, done := l.Winner(mc)
	assert.False(t, done)

	require.NoError(t, l.Award(mc, models.TeamRed))
	winner, done := l.Winner(mc)
	assert.True(t, done)
	assert.Equal(t, models.TeamRed, winner)
	assert.ErrorIs(t, l.Award(mc, models.TeamRed), ErrWinOverflow)
}

func TestRestoreRejectsInconsistentLedger(t *testing.T) {
	mc := eliminationContext(3, 1)
	st := newState()
	st.Ledger.Banned = []models.RoundChoice{{Slot: "NM1", Team: models.TeamRed}}
	st.Ledger.Picked = []models.RoundChoice{{Slot: "NM1", Team: models.TeamBlue}}

	_, err := Restore(mc, nil, st)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRestoreStopsRunningMatch(t *testing.T) {
	mc := eliminationContext(3, 1)
	st := newState()
	st.Step = Step{Phase: PhaseWaitingPick, Team: models.TeamRed}
	st.Ledger.FirstPick = models.TeamRed
	st.Ledger.FirstBan = models.TeamBlue

	m, err := Restore(mc, nil, st)
	require.NoError(t, err)

	restored := m.State()
	assert.Equal(t, PhaseInactive, restored.Step.Phase)
	assert.True(t, restored.StoppedByReferee)
	assert.Equal(t, st.Step, restored.Saved)

	_, err = m.Handle(referee(">start"))
	require.NoError(t, err)
	assert.Equal(t, st.Step, m.State().Step)
}
