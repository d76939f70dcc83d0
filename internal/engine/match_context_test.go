package engine

import (
	"testing"

	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchContextValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(mc *MatchContext)
		valid  bool
	}{
		{name: "valid", mutate: func(mc *MatchContext) {}, valid: true},
		{name: "missing id", mutate: func(mc *MatchContext) { mc.MatchID = "" }},
		{name: "missing referee", mutate: func(mc *MatchContext) { mc.Referee.Name = " " }},
		{name: "even best of", mutate: func(mc *MatchContext) { mc.Rules.BestOf = 4 }},
		{name: "too many ban rounds", mutate: func(mc *MatchContext) { mc.Rules.BanRounds = 3 }},
		{name: "same team names", mutate: func(mc *MatchContext) { mc.Blue.Name = "alpha" }},
		{name: "duplicate slot", mutate: func(mc *MatchContext) { mc.Rules.Pool[1].Slot = "nm1" }},
		{name: "no tiebreaker", mutate: func(mc *MatchContext) { mc.Rules.Tiebreaker = "TB2" }},
		{name: "pool too small", mutate: func(mc *MatchContext) { mc.Rules.Pool = mc.Rules.Pool[3:] }},
		{name: "unknown type", mutate: func(mc *MatchContext) { mc.Type = "swiss" }},
		{
			name: "second ban after every pick",
			mutate: func(mc *MatchContext) {
				*mc = eliminationContext(5, 2)
				mc.Rules.SecondBanAfter = 5
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := eliminationContext(3, 1)
			tt.mutate(&mc)
			err := mc.withDefaults().Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidContext)
		})
	}
}

func TestMatchContextDefaults(t *testing.T) {
	mc := eliminationContext(9, 2)
	mc.Rules.SecondBanAfter = 0
	mc.Rules.Tiebreaker = ""
	mc = mc.withDefaults()

	assert.Equal(t, DefaultSecondBanAfter, mc.Rules.SecondBanAfter)
	assert.Equal(t, "TB1", mc.Rules.Tiebreaker)
	assert.NoError(t, mc.Validate())
}

func TestShortMatchSecondBanDefault(t *testing.T) {
	for _, bestOf := range []int{1, 3, 5, 7} {
		mc := eliminationContext(bestOf, 2).withDefaults()
		require.NoError(t, mc.Validate(), "best of %d", bestOf)
		assert.Equal(t, min(DefaultSecondBanAfter, bestOf-1), mc.Rules.SecondBanAfter)
	}

	_, err := New(eliminationContext(3, 2), nil)
	assert.NoError(t, err)
}

func TestQualifiersNeedOnlyAPool(t *testing.T) {
	mc := qualifiersContext(1)
	require.NoError(t, mc.withDefaults().Validate())

	mc.Rules.Pool = nil
	assert.ErrorIs(t, mc.Validate(), ErrInvalidContext)
}

func TestTeamLookup(t *testing.T) {
	mc := eliminationContext(3, 1)

	team, ok := mc.TeamOf("bravo_team")
	assert.True(t, ok)
	assert.Equal(t, models.TeamBlue, team)

	_, ok = mc.TeamOf("Ref_Person")
	assert.False(t, ok)
	assert.True(t, mc.IsReferee("REF PERSON"))
	assert.Equal(t, 2, mc.WinThreshold())
}

func TestNewRejectsInvalidContext(t *testing.T) {
	mc := eliminationContext(3, 1)
	mc.Red.Name = ""
	_, err := New(mc, nil)
	assert.ErrorIs(t, err, ErrInvalidContext)
}
