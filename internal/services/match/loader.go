package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/autoref/internal/engine"
	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/KirkDiggler/autoref/internal/repositories/ledger"
	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
)

type matchSetup struct {
	mc        engine.MatchContext
	referee   *models.RefereeInfo
	lobbyName string
}

func (s *service) load(ctx context.Context, matchID string, input *StartMatchInput) (*matchSetup, error) {
	ref, err := s.cfg.Tournament.GetReferee(ctx, &tournament.GetRefereeInput{DisplayName: input.RefereeName})
	if err != nil {
		return nil, fmt.Errorf("failed to load referee %s: %w", input.RefereeName, err)
	}
	if ref.Referee.IRCPassword == "" {
		return nil, fmt.Errorf("referee %s has no IRC password on file", ref.Referee.DisplayName)
	}

	setup := &matchSetup{referee: ref.Referee}
	if input.Qualifiers {
		err = s.loadQualifiers(ctx, matchID, setup)
	} else {
		err = s.loadElimination(ctx, matchID, setup)
	}
	if err != nil {
		return nil, err
	}
	return setup, nil
}

func (s *service) loadElimination(ctx context.Context, matchID string, setup *matchSetup) error {
	out, err := s.cfg.Tournament.GetMatchRoom(ctx, &tournament.GetMatchRoomInput{MatchID: matchID})
	if err != nil {
		return fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	room := out.Room

	red, blue := room.TeamRed.DisplayName(), room.TeamBlue.DisplayName()
	setup.mc = engine.MatchContext{
		MatchID: room.ID,
		Type:    models.MatchTypeElimination,
		Red:     engine.Team{Name: red},
		Blue:    engine.Team{Name: blue},
		Referee: engine.Referee{Name: setup.referee.DisplayName},
		Rules: engine.Rules{
			Name:           room.Round.DisplayName,
			BestOf:         room.Round.BestOf,
			BanRounds:      room.Round.BanRounds,
			SecondBanAfter: room.Round.SecondBanAfter,
			Pool:           room.Round.MapPool,
		},
	}
	setup.lobbyName = fmt.Sprintf("%s: (%s) vs (%s)", s.cfg.TournamentName, red, blue)
	return nil
}

func (s *service) loadQualifiers(ctx context.Context, roomID string, setup *matchSetup) error {
	out, err := s.cfg.Tournament.GetQualifierRoom(ctx, &tournament.GetQualifierRoomInput{RoomID: roomID})
	if err != nil {
		return fmt.Errorf("failed to load qualifier room %s: %w", roomID, err)
	}
	room := out.Room

	players := make([]int, 0, len(room.Players))
	for _, p := range room.Players {
		if p.User.OsuID != 0 {
			players = append(players, p.User.OsuID)
		}
	}

	setup.mc = engine.MatchContext{
		MatchID: room.ID,
		Type:    models.MatchTypeQualifiers,
		Referee: engine.Referee{Name: setup.referee.DisplayName},
		Rules: engine.Rules{
			Name: room.Round.DisplayName,
			Pool: room.Round.MapPool,
		},
		Players: players,
	}
	setup.lobbyName = fmt.Sprintf("%s: (Qualifiers) vs (Lobby %s)", s.cfg.TournamentName, room.ID)
	return nil
}

// restore resumes from an unfinished snapshot when one exists. A snapshot that
// no longer fits the match is logged and ignored.
func (s *service) restore(ctx context.Context, mc engine.MatchContext) (engine.Machine, bool, error) {
	fresh, err := engine.New(mc, s.cfg.Engine)
	if err != nil {
		return nil, false, err
	}
	log := s.log.WithField("match_id", mc.MatchID)

	snap, err := s.cfg.Snapshots.GetSnapshot(ctx, &ledger.GetSnapshotInput{MatchID: mc.MatchID})
	if err != nil {
		if !errors.Is(err, ledger.ErrSnapshotNotFound) {
			log.WithError(err).Warn("could not read snapshot, starting fresh")
		}
		return fresh, false, nil
	}
	if snap.Finished || snap.Type != mc.Type {
		return fresh, false, nil
	}

	var st engine.State
	if err := json.Unmarshal(snap.State, &st); err != nil {
		log.WithError(err).Warn("snapshot is not readable, starting fresh")
		return fresh, false, nil
	}
	m, err := engine.Restore(mc, s.cfg.Engine, st)
	if err != nil {
		log.WithError(err).Warn("snapshot does not fit the match, starting fresh")
		return fresh, false, nil
	}

	log.WithField("phase", snap.Phase).Info("restored match from snapshot")
	return m, true, nil
}
