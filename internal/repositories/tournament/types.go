package tournament

import (
	"time"

	"github.com/KirkDiggler/autoref/internal/models"
)

type GetMatchRoomInput struct {
	MatchID string
}

type GetMatchRoomOutput struct {
	Room *models.MatchRoom
}

type GetQualifierRoomInput struct {
	RoomID string
}

type GetQualifierRoomOutput struct {
	Room *models.QualifierRoom
}

type GetRefereeInput struct {
	DisplayName string
}

type GetRefereeOutput struct {
	Referee *models.RefereeInfo
}

type SaveRefereeInput struct {
	Referee *models.RefereeInfo
}

type SaveRefereeOutput struct {
	Referee *models.RefereeInfo

	// Created is false when an existing referee was updated
	Created bool
}

type GetRoundForRoomInput struct {
	RoomID string
}

type GetRoundForRoomOutput struct {
	Round *models.Round
}

type GetUsersByOsuIDsInput struct {
	OsuIDs []int
}

type GetUsersByOsuIDsOutput struct {
	// Users is keyed by osu! id
	Users map[int]*models.User
}

type SaveMatchResultInput struct {
	MatchID  string
	Banned   []models.RoundChoice
	Picked   []models.RoundChoice
	MpLinkID int
	EndTime  time.Time
}

type SaveQualifierResultInput struct {
	RoomID   string
	MpLinkID int
}

type SaveScoresInput struct {
	Scores []*models.ScoreResult
}
