package engine

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/stretchr/testify/suite"
)

type AdminTestSuite struct {
	suite.Suite
	machine Machine
}

func (s *AdminTestSuite) SetupTest() {
	m, err := New(eliminationContext(3, 1), nil)
	s.Require().NoError(err)
	s.machine = m
}

func TestAdminTestSuite(t *testing.T) {
	suite.Run(t, new(AdminTestSuite))
}

func (s *AdminTestSuite) send(ev Event) []string {
	effects, err := s.machine.Handle(ev)
	s.Require().NoError(err)
	return lines(effects)
}

func (s *AdminTestSuite) TestNonRefereeIsIgnored() {
	for _, line := range []string{">start", ">firstpick red", ">finish", ">setmap NM1"} {
		s.Empty(s.send(chat(redName, line)))
	}
	s.Equal(PhaseInactive, s.machine.State().Step.Phase)
	s.Empty(s.machine.State().Ledger.FirstPick)
}

func (s *AdminTestSuite) TestRefereeNameIsNormalized() {
	s.Equal([]string{fmt.Sprintf(msgFirstPickSet, blueName)}, s.send(chat("ref_person", ">FirstPick BLUE")))
	s.Equal(models.TeamBlue, s.machine.State().Ledger.FirstPick)
}

func (s *AdminTestSuite) TestUnknownCommandIsIgnored() {
	s.Empty(s.send(referee(">dance")))
	s.Empty(s.send(referee(">")))
}

func (s *AdminTestSuite) TestDraftOrderArguments() {
	s.Equal([]string{fmt.Sprintf(msgNotEnoughArgs, "firstban")}, s.send(referee(">firstban")))
	s.Equal([]string{fmt.Sprintf(msgInvalidTeam, "green")}, s.send(referee(">firstban green")))
	s.Empty(s.machine.State().Ledger.FirstBan)
}

func (s *AdminTestSuite) TestStartRequiresDraftOrder() {
	s.Equal([]string{msgDraftOrderMissing}, s.send(referee(">start")))
	s.send(referee(">firstpick red"))
	s.Equal([]string{msgDraftOrderMissing}, s.send(referee(">start")))
	s.Equal(PhaseInactive, s.machine.State().Step.Phase)
}

func (s *AdminTestSuite) TestStartTwice() {
	s.send(referee(">firstpick red"))
	s.send(referee(">firstban red"))
	s.send(referee(">start"))
	s.Equal([]string{msgAlreadyEngaged}, s.send(referee(">start")))
}

func (s *AdminTestSuite) TestStopWhileInactive() {
	s.Equal([]string{msgAlreadyStopped}, s.send(referee(">stop")))
	s.False(s.machine.State().StoppedByReferee)
}

func (s *AdminTestSuite) TestSetMap() {
	s.Equal([]string{fmt.Sprintf(msgNotEnoughArgs, "setmap")}, s.send(referee(">setmap")))
	s.Equal([]string{fmt.Sprintf(msgUnknownSlot, "XX1")}, s.send(referee(">setmap xx1")))
	s.Equal([]string{"!mp map 1002", "!mp mods HR NF", "!mp timer 90"}, s.send(referee(">setmap hr1")))
	s.Equal(PhaseInactive, s.machine.State().Step.Phase)
	s.Empty(s.machine.State().Ledger.Picked)

	s.send(referee(">firstpick red"))
	s.send(referee(">firstban red"))
	s.send(referee(">start"))
	s.Equal([]string{msgSetMapFail}, s.send(referee(">setmap hr1")))
}

func (s *AdminTestSuite) TestMapsReport() {
	s.Equal([]string{
		fmt.Sprintf(msgDraftStatus, msgNone, msgNone),
		fmt.Sprintf(msgAvailableMaps, "NM1, HD1, HR1, DT1, FM1"),
		fmt.Sprintf(msgTimeoutsLeft, redName, "yes", blueName, "yes"),
	}, s.send(referee(">maps")))
}

func (s *AdminTestSuite) TestInviteAndFinish() {
	s.Equal([]string{"!mp invite Alpha", "!mp invite Bravo_Team"}, s.send(referee(">invite")))
	s.Equal([]string{"!mp close"}, s.send(referee(">finish")))
}

func (s *AdminTestSuite) TestRefereeTimeoutKeepsTeamFlags() {
	s.send(referee(">firstpick red"))
	s.send(referee(">firstban red"))
	s.send(referee(">start"))

	s.Equal([]string{msgRefereeTimeout, "!mp timer 120"}, s.send(referee(">timeout")))
	st := s.machine.State()
	s.Equal(PhaseOnTimeout, st.Step.Phase)
	s.False(st.Ledger.TimeoutUsed[models.TeamRed])
	s.False(st.Ledger.TimeoutUsed[models.TeamBlue])
}

func (s *AdminTestSuite) TestRefereeTimeoutWhileInactive() {
	s.Equal([]string{msgTimeoutUnavailable}, s.send(referee(">timeout")))
}
