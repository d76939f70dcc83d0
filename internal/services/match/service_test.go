package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/autoref/internal/common/clock"
	clockMocks "github.com/KirkDiggler/autoref/internal/common/clock/mocks"
	"github.com/KirkDiggler/autoref/internal/common/uuid"
	uuidMocks "github.com/KirkDiggler/autoref/internal/common/uuid/mocks"
	"github.com/KirkDiggler/autoref/internal/engine"
	"github.com/KirkDiggler/autoref/internal/lobby"
	lobbyMocks "github.com/KirkDiggler/autoref/internal/lobby/mocks"
	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/KirkDiggler/autoref/internal/repositories/ledger"
	ledgerMocks "github.com/KirkDiggler/autoref/internal/repositories/ledger/mocks"
	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
	tournamentMocks "github.com/KirkDiggler/autoref/internal/repositories/tournament/mocks"
	"github.com/KirkDiggler/autoref/internal/services/notify"
	notifyMocks "github.com/KirkDiggler/autoref/internal/services/notify/mocks"
)

const createdNotice = "Created the tournament match https://osu.ppy.sh/mp/4321 SS26: (Alpha) vs (Bravo Team)"

type MatchServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockRepo     *tournamentMocks.MockRepository
	mockSnaps    *ledgerMocks.MockRepository
	mockDialer   *lobbyMocks.MockDialer
	mockConn     *lobbyMocks.MockConn
	mockNotifier *notifyMocks.MockNotifier
	mockClock    *clockMocks.MockClock
	mockTimer    *clockMocks.MockTimer

	svc     *service
	ctx     context.Context
	testNow time.Time

	mu        sync.Mutex
	sent      []string
	notified  []*notify.NotifyInput
	saved     []*models.MatchSnapshot
	results   []*tournament.SaveMatchResultInput
	qualified []*tournament.SaveQualifierResultInput
	timers    []func()
	delays    []time.Duration
	closed    int
	dialed    *lobby.DialInput
	handler   lobby.Handler
}

func (s *MatchServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = tournamentMocks.NewMockRepository(s.mockCtrl)
	s.mockSnaps = ledgerMocks.NewMockRepository(s.mockCtrl)
	s.mockDialer = lobbyMocks.NewMockDialer(s.mockCtrl)
	s.mockConn = lobbyMocks.NewMockConn(s.mockCtrl)
	s.mockNotifier = notifyMocks.NewMockNotifier(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockTimer = clockMocks.NewMockTimer(s.mockCtrl)

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)

	s.sent, s.notified, s.saved, s.results, s.qualified = nil, nil, nil, nil, nil
	s.timers, s.delays, s.closed, s.dialed, s.handler = nil, nil, 0, nil, nil

	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()
	s.mockClock.EXPECT().AfterFunc(gomock.Any(), gomock.Any()).DoAndReturn(func(d time.Duration, f func()) clock.Timer {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.delays = append(s.delays, d)
		s.timers = append(s.timers, f)
		return s.mockTimer
	}).AnyTimes()
	s.mockTimer.EXPECT().Stop().Return(true).AnyTimes()

	s.mockConn.EXPECT().Channel().Return("#mp_4321").AnyTimes()
	s.mockConn.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, line string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.sent = append(s.sent, line)
		return nil
	}).AnyTimes()
	s.mockConn.EXPECT().Close().DoAndReturn(func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed++
		return nil
	}).AnyTimes()

	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in *notify.NotifyInput) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.notified = append(s.notified, in)
		return nil
	}).AnyTimes()

	s.mockSnaps.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in *ledger.SaveSnapshotInput) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.saved = append(s.saved, in.Snapshot)
		return nil
	}).AnyTimes()
	s.mockRepo.EXPECT().SaveMatchResult(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in *tournament.SaveMatchResultInput) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.results = append(s.results, in)
		return nil
	}).AnyTimes()
	s.mockRepo.EXPECT().SaveQualifierResult(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in *tournament.SaveQualifierResultInput) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.qualified = append(s.qualified, in)
		return nil
	}).AnyTimes()

	s.svc = s.newService(0)
}

func (s *MatchServiceTestSuite) TearDownTest() {
	s.NoError(s.svc.Shutdown(s.ctx))
}

func TestMatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MatchServiceTestSuite))
}

// sessionIDs hands out session-1, session-2, ...
func (s *MatchServiceTestSuite) sessionIDs() *uuidMocks.MockUUID {
	ids := uuidMocks.NewMockUUID(s.mockCtrl)
	var n atomic.Uint64
	ids.EXPECT().NewUUID().DoAndReturn(func() string {
		return fmt.Sprintf("session-%d", n.Add(1))
	}).AnyTimes()
	return ids
}

func (s *MatchServiceTestSuite) newService(lineDelay time.Duration) *service {
	log, _ := test.NewNullLogger()
	svc, err := NewService(&Config{
		Tournament:     s.mockRepo,
		Snapshots:      s.mockSnaps,
		Dialer:         s.mockDialer,
		Notifier:       s.mockNotifier,
		Clock:          s.mockClock,
		UUID:           s.sessionIDs(),
		Logger:         log,
		TournamentName: "SS26",
		LineDelay:      lineDelay,
	})
	s.Require().NoError(err)
	return svc
}

func (s *MatchServiceTestSuite) expectReferee() {
	s.mockRepo.EXPECT().GetReferee(gomock.Any(), &tournament.GetRefereeInput{DisplayName: "Ref Person"}).Return(&tournament.GetRefereeOutput{
		Referee: &models.RefereeInfo{ID: 7, DisplayName: "Ref Person", IRCPassword: "secret"},
	}, nil)
}

func (s *MatchServiceTestSuite) expectMatchRoom() {
	pool := []models.RoundBeatmap{
		{Slot: "NM1", BeatmapID: 1000},
		{Slot: "NM2", BeatmapID: 1001},
		{Slot: "HD1", BeatmapID: 1002},
		{Slot: "HR1", BeatmapID: 1003},
		{Slot: "DT1", BeatmapID: 1004},
		{Slot: "FM1", BeatmapID: 1005},
		{Slot: "TB1", BeatmapID: 9999},
	}
	s.mockRepo.EXPECT().GetMatchRoom(gomock.Any(), &tournament.GetMatchRoomInput{MatchID: "A3"}).Return(&tournament.GetMatchRoomOutput{
		Room: &models.MatchRoom{
			ID:       "A3",
			Round:    models.Round{DisplayName: "Quarterfinals", BestOf: 5, BanRounds: 1, MapPool: pool},
			TeamRed:  models.User{OsuID: 101, OsuData: models.OsuUser{ID: 101, Username: "Alpha"}},
			TeamBlue: models.User{OsuID: 102, OsuData: models.OsuUser{ID: 102, Username: "Bravo Team"}},
		},
	}, nil)
}

func (s *MatchServiceTestSuite) expectQualifierRoom() {
	s.mockRepo.EXPECT().GetQualifierRoom(gomock.Any(), &tournament.GetQualifierRoomInput{RoomID: "Q1"}).Return(&tournament.GetQualifierRoomOutput{
		Room: &models.QualifierRoom{
			ID: "Q1",
			Round: models.Round{DisplayName: "Qualifiers", Mode: models.MatchTypeQualifiers, MapPool: []models.RoundBeatmap{
				{Slot: "NM1", BeatmapID: 2000},
				{Slot: "NM2", BeatmapID: 2001},
			}},
			Players: []models.Player{
				{User: models.User{OsuID: 123}},
				{User: models.User{OsuID: 456}},
			},
		},
	}, nil)
}

func (s *MatchServiceTestSuite) expectNoSnapshot(matchID string) {
	s.mockSnaps.EXPECT().GetSnapshot(gomock.Any(), &ledger.GetSnapshotInput{MatchID: matchID}).Return(nil, ledger.ErrSnapshotNotFound)
}

// expectDial answers the dial the way the bancho adapter does, with the
// creation notice delivered before the connection is returned
func (s *MatchServiceTestSuite) expectDial() {
	s.mockDialer.EXPECT().Dial(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in *lobby.DialInput) (lobby.Conn, error) {
		s.mu.Lock()
		s.dialed = in
		s.handler = in.Handler
		s.mu.Unlock()

		in.Handler(lobby.Line{Sender: "BanchoBot", Text: createdNotice, Event: engine.LobbyCreated{LinkID: 4321}})
		return s.mockConn, nil
	})
}

func (s *MatchServiceTestSuite) startElimination() {
	s.expectReferee()
	s.expectMatchRoom()
	s.expectNoSnapshot("A3")
	s.expectDial()

	out, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person", ChannelID: "chan-1"})
	s.Require().NoError(err)
	s.False(out.Restored)
}

func (s *MatchServiceTestSuite) startQualifiers() {
	s.expectReferee()
	s.expectQualifierRoom()
	s.expectNoSnapshot("Q1")
	s.expectDial()

	_, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "Q1", RefereeName: "Ref Person", Qualifiers: true})
	s.Require().NoError(err)
}

// lobbyLine feeds a line as if it came from the lobby
func (s *MatchServiceTestSuite) lobbyLine(sender, text string, ev engine.Event) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	h(lobby.Line{Sender: sender, Text: text, Event: ev})
}

// status doubles as a barrier: it is answered after everything queued before it
func (s *MatchServiceTestSuite) status(matchID string) *MatchStatus {
	out, err := s.svc.GetMatchStatus(s.ctx, &GetMatchStatusInput{MatchID: matchID})
	s.Require().NoError(err)
	return out.Status
}

func (s *MatchServiceTestSuite) relay(matchID, text string) {
	s.Require().NoError(s.svc.RelayMessage(s.ctx, &RelayMessageInput{MatchID: matchID, User: "kirk", Text: text}))
}

func (s *MatchServiceTestSuite) sentLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func (s *MatchServiceTestSuite) notifiedLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, n := range s.notified {
		out = append(out, notify.Format(n))
	}
	return out
}

func (s *MatchServiceTestSuite) scheduled() ([]func(), []time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]func(){}, s.timers...), append([]time.Duration{}, s.delays...)
}

func (s *MatchServiceTestSuite) fireTimer(i int) {
	timers, _ := s.scheduled()
	s.Require().Greater(len(timers), i)
	timers[i]()
}

func (s *MatchServiceTestSuite) savedSnapshots() []*models.MatchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.MatchSnapshot(nil), s.saved...)
}

func (s *MatchServiceTestSuite) waitGone(matchID string) {
	s.Eventually(func() bool {
		_, err := s.svc.GetMatchStatus(s.ctx, &GetMatchStatusInput{MatchID: matchID})
		return errors.Is(err, ErrMatchNotFound)
	}, 2*time.Second, 5*time.Millisecond)
}

func (s *MatchServiceTestSuite) TestStartMatchOpensLobby() {
	s.startElimination()

	s.Equal("Ref_Person", s.dialed.Nick)
	s.Equal("secret", s.dialed.Password)
	s.Equal("SS26: (Alpha) vs (Bravo Team)", s.dialed.LobbyName)

	st := s.status("A3")
	s.Equal("A3", st.MatchID)
	s.Equal("session-1", st.SessionID)
	s.Equal(models.MatchTypeElimination, st.Type)
	s.Equal("#mp_4321", st.Lobby)
	s.Equal(4321, st.MpLinkID)
	s.Equal(string(engine.PhaseInactive), st.Step)
	s.Equal("Alpha", st.Red)
	s.Equal("Bravo Team", st.Blue)
	s.Equal("chan-1", st.ChannelID)

	s.Equal([]string{
		"!mp set 2 3 3",
		"!mp invite Ref_Person",
		"Lobby is up. Join it from any IRC client with: /join #mp_4321",
	}, s.sentLines())

	// lobby settings are not mirrored, the join line is
	s.Equal([]string{
		"**[BanchoBot]** " + createdNotice,
		"**[AUTO | Ref Person]** Lobby is up. Join it from any IRC client with: /join #mp_4321",
	}, s.notifiedLines())
}

func (s *MatchServiceTestSuite) TestStartMatchTwice() {
	s.startElimination()

	_, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person"})
	s.ErrorIs(err, ErrMatchAlreadyRunning)
}

func (s *MatchServiceTestSuite) TestStartMatchValidatesInput() {
	_, err := s.svc.StartMatch(s.ctx, nil)
	s.ErrorIs(err, ErrSetup)

	_, err = s.svc.StartMatch(s.ctx, &StartMatchInput{RefereeName: "Ref Person"})
	s.ErrorIs(err, ErrSetup)

	_, err = s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3"})
	s.ErrorIs(err, ErrSetup)
}

func (s *MatchServiceTestSuite) TestSetupFailureReleasesMatch() {
	s.mockRepo.EXPECT().GetReferee(gomock.Any(), gomock.Any()).Return(nil, tournament.ErrRefereeNotFound)

	_, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person"})
	s.ErrorIs(err, ErrSetup)
	s.ErrorIs(err, tournament.ErrRefereeNotFound)

	// the reservation is gone, so a second attempt loads again
	s.startElimination()
}

func (s *MatchServiceTestSuite) TestDialFailureReleasesMatch() {
	s.expectReferee()
	s.expectMatchRoom()
	s.expectNoSnapshot("A3")
	boom := errors.New("bancho unreachable")
	s.mockDialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person"})
	s.ErrorIs(err, ErrSetup)
	s.ErrorIs(err, boom)

	_, err = s.svc.GetMatchStatus(s.ctx, &GetMatchStatusInput{MatchID: "A3"})
	s.ErrorIs(err, ErrMatchNotFound)
}

func (s *MatchServiceTestSuite) TestInvalidRoundIsSetupError() {
	s.expectReferee()
	s.mockRepo.EXPECT().GetMatchRoom(gomock.Any(), gomock.Any()).Return(&tournament.GetMatchRoomOutput{
		Room: &models.MatchRoom{
			ID:       "A3",
			Round:    models.Round{BestOf: 4, MapPool: []models.RoundBeatmap{{Slot: "TB1", BeatmapID: 1}}},
			TeamRed:  models.User{OsuData: models.OsuUser{Username: "Alpha"}},
			TeamBlue: models.User{OsuData: models.OsuUser{Username: "Bravo Team"}},
		},
	}, nil)

	_, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person"})
	s.ErrorIs(err, ErrSetup)
	s.ErrorIs(err, engine.ErrInvalidContext)
}

func (s *MatchServiceTestSuite) TestRelayPlainMessage() {
	s.startElimination()

	s.relay("A3", "hello lobby")
	s.status("A3")

	s.Contains(s.sentLines(), "[DISCORD | kirk] hello lobby")
}

func (s *MatchServiceTestSuite) TestRelayCommandDrivesEngine() {
	s.startElimination()

	s.relay("A3", ">firstpick red")
	s.relay("A3", ">firstban blue")
	s.relay("A3", ">start")
	st := s.status("A3")

	s.Equal("waiting_ban(blue)", st.Step)

	sent := s.sentLines()
	s.Contains(sent, ">firstpick red")
	s.Contains(sent, "First pick: Alpha.")
	s.Contains(sent, "First ban: Bravo Team.")
	s.Contains(sent, "Bravo Team, your turn to ban. Type the slot in chat (e.g. NM1).")
	s.Contains(sent, "!mp timer 90")

	// a ban from the lobby moves the draft on
	s.lobbyLine("Bravo_Team", "nm1", engine.ChatMessage{Sender: "Bravo_Team", Text: "nm1"})
	st = s.status("A3")
	s.Equal([]models.RoundChoice{{Slot: "NM1", Team: models.TeamBlue}}, st.Banned)
	s.Equal("waiting_pick(red)", st.Step)
	s.Contains(s.sentLines(), "Alpha, your turn to pick. Type the slot in chat (e.g. NM1).")
}

func (s *MatchServiceTestSuite) TestRelayToUnknownMatch() {
	err := s.svc.RelayMessage(s.ctx, &RelayMessageInput{MatchID: "Z9", Text: "hi"})
	s.ErrorIs(err, ErrMatchNotFound)
}

func (s *MatchServiceTestSuite) TestQualifiersCooldownTimer() {
	s.startQualifiers()

	s.relay("Q1", ">start")
	s.lobbyLine("BanchoBot", "All players are ready", engine.AllReady{})
	s.lobbyLine("BanchoBot", "The match has started!", engine.ChatMessage{Sender: "BanchoBot", Text: "The match has started!"})
	s.lobbyLine("BanchoBot", "The match has finished!", engine.MatchFinished{})
	st := s.status("Q1")
	s.Equal(string(engine.PhaseIdle), st.Step)
	s.Equal(1, st.MapIndex)
	s.Equal(2, st.PoolSize)

	timers, delays := s.scheduled()
	s.Require().Len(timers, 1)
	s.Equal(10*time.Second, delays[0])

	s.fireTimer(0)
	st = s.status("Q1")
	s.Equal(string(engine.PhaseWaitingGameStart), st.Step)

	sent := s.sentLines()
	s.Contains(sent, "!mp set 0 3 16")
	s.Contains(sent, "!mp map 2000")
	s.Contains(sent, "!mp start 10")
	s.Contains(sent, "Up next: NM2.")
	s.Equal("!mp timer 120", sent[len(sent)-1])
}

func (s *MatchServiceTestSuite) TestStaleTimerIsIgnored() {
	s.startQualifiers()

	s.relay("Q1", ">start")
	s.lobbyLine("BanchoBot", "All players are ready", engine.AllReady{})
	s.lobbyLine("BanchoBot", "The match has finished!", engine.MatchFinished{})
	s.relay("Q1", ">stop")
	s.status("Q1")

	before := len(s.sentLines())
	s.fireTimer(0)
	st := s.status("Q1")

	s.Equal(string(engine.PhaseInactive), st.Step)
	s.True(st.Stopped)
	s.Len(s.sentLines(), before)
}

func (s *MatchServiceTestSuite) TestLobbyClosedPersistsAndEnds() {
	s.startElimination()

	s.relay("A3", ">firstpick red")
	s.relay("A3", ">firstban blue")
	s.relay("A3", ">start")
	s.lobbyLine("Bravo_Team", "HD1", engine.ChatMessage{Sender: "Bravo_Team", Text: "HD1"})
	s.lobbyLine("BanchoBot", "Closed the match", engine.LobbyClosed{})
	s.waitGone("A3")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Equal(1, s.closed)
	s.Require().Len(s.results, 1)
	s.Equal("A3", s.results[0].MatchID)
	s.Equal(4321, s.results[0].MpLinkID)
	s.Equal([]models.RoundChoice{{Slot: "HD1", Team: models.TeamBlue}}, s.results[0].Banned)
	s.True(s.results[0].EndTime.Equal(s.testNow))

	s.Require().NotEmpty(s.saved)
	last := s.saved[len(s.saved)-1]
	s.Equal("A3", last.MatchID)
	s.True(last.Finished)
}

func (s *MatchServiceTestSuite) TestEndMatchClosesLobby() {
	s.startQualifiers()

	err := s.svc.EndMatch(s.ctx, &EndMatchInput{MatchID: "Q1", CloseLobby: true})
	s.Require().NoError(err)

	s.Contains(s.sentLines(), "!mp close")
	s.mu.Lock()
	s.Equal(1, s.closed)
	s.Equal([]*tournament.SaveQualifierResultInput{{RoomID: "Q1", MpLinkID: 4321}}, s.qualified)
	s.Require().NotEmpty(s.saved)
	s.True(s.saved[len(s.saved)-1].Finished)
	s.mu.Unlock()

	s.waitGone("Q1")
	s.ErrorIs(s.svc.EndMatch(s.ctx, &EndMatchInput{MatchID: "Q1"}), ErrMatchNotFound)
	s.Contains(s.notifiedLines(), "Session for match Q1 ended (stopped).")
}

func (s *MatchServiceTestSuite) TestShutdownSuspendsWithoutResult() {
	s.startElimination()
	s.relay("A3", ">firstpick red")

	s.Require().NoError(s.svc.Shutdown(s.ctx))
	s.waitGone("A3")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Empty(s.results)
	s.NotContains(s.sent, "!mp close")
	s.Require().NotEmpty(s.saved)
	s.False(s.saved[len(s.saved)-1].Finished)
}

func (s *MatchServiceTestSuite) TestRestoreFromSnapshot() {
	st := engine.State{
		Step:   engine.Step{Phase: engine.PhaseWaitingPick, Team: models.TeamRed},
		Ledger: engine.NewLedger(),
	}
	st.Ledger.FirstPick = models.TeamRed
	st.Ledger.FirstBan = models.TeamBlue
	st.Ledger.Banned = []models.RoundChoice{{Slot: "NM1", Team: models.TeamBlue}}
	data, err := json.Marshal(st)
	s.Require().NoError(err)

	s.expectReferee()
	s.expectMatchRoom()
	s.mockSnaps.EXPECT().GetSnapshot(gomock.Any(), &ledger.GetSnapshotInput{MatchID: "A3"}).Return(&models.MatchSnapshot{
		MatchID: "A3",
		Type:    models.MatchTypeElimination,
		Phase:   string(engine.PhaseWaitingPick),
		State:   data,
	}, nil)
	s.expectDial()

	out, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person"})
	s.Require().NoError(err)
	s.True(out.Restored)

	status := s.status("A3")
	s.True(status.Stopped)
	s.Equal(string(engine.PhaseInactive), status.Step)
	s.Equal([]models.RoundChoice{{Slot: "NM1", Team: models.TeamBlue}}, status.Banned)

	s.relay("A3", ">start")
	status = s.status("A3")
	s.Equal("waiting_pick(red)", status.Step)
	s.Contains(s.sentLines(), "Auto referee resuming.")
}

func (s *MatchServiceTestSuite) TestUnusableSnapshotStartsFresh() {
	s.expectReferee()
	s.expectMatchRoom()
	s.mockSnaps.EXPECT().GetSnapshot(gomock.Any(), gomock.Any()).Return(&models.MatchSnapshot{
		MatchID: "A3",
		Type:    models.MatchTypeElimination,
		State:   json.RawMessage(`{"ledger":{"banned":[{"slot":"XX9","team":"red"}]}}`),
	}, nil)
	s.expectDial()

	out, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person"})
	s.Require().NoError(err)
	s.False(out.Restored)
	s.False(s.status("A3").Stopped)
}

func (s *MatchServiceTestSuite) TestSnapshotAllSavesChangedSessions() {
	s.startElimination()
	s.status("A3")

	s.Require().NoError(s.svc.SnapshotAll(s.ctx))
	s.Require().NoError(s.svc.SnapshotAll(s.ctx))

	saved := s.savedSnapshots()
	s.Require().Len(saved, 1)
	s.Equal(string(engine.PhaseInactive), saved[0].Phase)
	s.True(saved[0].UpdatedAt.Equal(s.testNow))

	var st engine.State
	s.Require().NoError(json.Unmarshal(saved[0].State, &st))
	s.Equal(4321, st.Ledger.MpLinkID)

	s.relay("A3", ">maps")
	s.Require().NoError(s.svc.SnapshotAll(s.ctx))
	s.Len(s.savedSnapshots(), 2)
}

func (s *MatchServiceTestSuite) TestListMatches() {
	out, err := s.svc.ListMatches(s.ctx, &ListMatchesInput{})
	s.Require().NoError(err)
	s.Empty(out.Matches)

	s.startQualifiers()
	s.startElimination()

	out, err = s.svc.ListMatches(s.ctx, &ListMatchesInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Matches, 2)
	s.Equal("A3", out.Matches[0].MatchID)
	s.Equal("Q1", out.Matches[1].MatchID)
}

func (s *MatchServiceTestSuite) TestLinesArePaced() {
	s.svc = s.newService(250 * time.Millisecond)
	s.mockClock.EXPECT().Sleep(250 * time.Millisecond).Times(2)

	s.expectReferee()
	s.expectMatchRoom()
	s.expectNoSnapshot("A3")
	s.expectDial()

	_, err := s.svc.StartMatch(s.ctx, &StartMatchInput{MatchID: "A3", RefereeName: "Ref Person"})
	s.Require().NoError(err)
	s.status("A3")
	s.Len(s.sentLines(), 3)
}

func (s *MatchServiceTestSuite) TestAdapterNoticeIsSystemLine() {
	s.startElimination()

	s.lobbyLine("", "connection to bancho lost", engine.LobbyClosed{})
	s.waitGone("A3")

	found := false
	for _, l := range s.notifiedLines() {
		if strings.HasPrefix(l, "connection to bancho lost") {
			found = true
		}
	}
	s.True(found)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Empty(s.results)
	s.Require().NotEmpty(s.saved)
	s.False(s.saved[len(s.saved)-1].Finished)
}

func TestNewServiceValidatesConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	full := func() *Config {
		return &Config{
			Tournament: tournamentMocks.NewMockRepository(ctrl),
			Snapshots:  ledgerMocks.NewMockRepository(ctrl),
			Dialer:     lobbyMocks.NewMockDialer(ctrl),
			Notifier:   notifyMocks.NewMockNotifier(ctrl),
			Clock:      clockMocks.NewMockClock(ctrl),
			UUID:       uuid.New(),
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "tournament", mutate: func(c *Config) { c.Tournament = nil }, want: ErrNilTournamentRepo},
		{name: "snapshots", mutate: func(c *Config) { c.Snapshots = nil }, want: ErrNilSnapshotRepo},
		{name: "dialer", mutate: func(c *Config) { c.Dialer = nil }, want: ErrNilDialer},
		{name: "notifier", mutate: func(c *Config) { c.Notifier = nil }, want: ErrNilNotifier},
		{name: "clock", mutate: func(c *Config) { c.Clock = nil }, want: ErrNilClock},
		{name: "uuid", mutate: func(c *Config) { c.UUID = nil }, want: ErrNilUUIDGenerator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full()
			tt.mutate(cfg)
			_, err := NewService(cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := NewService(nil); !errors.Is(err, ErrNilConfig) {
		t.Fatalf("got %v, want %v", err, ErrNilConfig)
	}
	if _, err := NewService(full()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
