package scores

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
)

type service struct {
	repo   tournament.Repository
	log    logrus.FieldLogger
	prefix string
}

// NewService creates a score importer
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Repository == nil {
		return nil, errors.New("repository cannot be nil")
	}
	if cfg.TournamentName == "" {
		return nil, errors.New("tournament name is required")
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &service{
		repo:   cfg.Repository,
		log:    log.WithField("component", "scores"),
		prefix: cfg.TournamentName,
	}, nil
}

func (s *service) ImportScores(ctx context.Context, input *ImportScoresInput) (*ImportScoresOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("room id is required")
	}
	if input.Data == nil {
		return nil, errors.New("data cannot be nil")
	}

	round, err := s.repo.GetRoundForRoom(ctx, &tournament.GetRoundForRoomInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	rows, malformed, err := parseExport(input.Data, s.prefix)
	if err != nil {
		return nil, err
	}
	out := &ImportScoresOutput{RoundID: round.Round.ID, Malformed: malformed}
	if len(rows) == 0 {
		return out, nil
	}

	slots := make(map[int]string, len(round.Round.MapPool))
	for _, bm := range round.Round.MapPool {
		slots[bm.BeatmapID] = bm.Slot
	}

	seen := make(map[int]bool)
	var osuIDs []int
	for _, r := range rows {
		if !seen[r.OsuUserID] {
			seen[r.OsuUserID] = true
			osuIDs = append(osuIDs, r.OsuUserID)
		}
	}
	users, err := s.repo.GetUsersByOsuIDs(ctx, &tournament.GetUsersByOsuIDsInput{OsuIDs: osuIDs})
	if err != nil {
		return nil, err
	}

	results := make([]*models.ScoreResult, 0, len(rows))
	for _, r := range rows {
		user, ok := users.Users[r.OsuUserID]
		slot, known := slots[r.BeatmapID]
		if !ok || !known {
			out.Skipped++
			continue
		}
		results = append(results, &models.ScoreResult{
			RoundID:  round.Round.ID,
			UserID:   user.ID,
			Slot:     slot,
			Score:    r.Score,
			Accuracy: r.Accuracy,
			MaxCombo: r.MaxCombo,
			Grade:    r.Grade,
		})
	}

	if len(results) > 0 {
		if err := s.repo.SaveScores(ctx, &tournament.SaveScoresInput{Scores: results}); err != nil {
			return nil, fmt.Errorf("failed to save scores: %w", err)
		}
		out.Imported = len(results)
	}

	s.log.WithFields(logrus.Fields{
		"room_id":   input.RoomID,
		"round_id":  out.RoundID,
		"imported":  out.Imported,
		"skipped":   out.Skipped,
		"malformed": out.Malformed,
	}).Info("imported scores")
	return out, nil
}
