package scores

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
)

type Config struct {
	Repository tournament.Repository
	Logger     logrus.FieldLogger

	// TournamentName selects the export rows that belong to this tournament
	TournamentName string
}

type ImportScoresInput struct {
	// RoomID is the match or qualifier room the export belongs to
	RoomID string
	Data   io.Reader
}

type ImportScoresOutput struct {
	RoundID  int
	Imported int

	// Skipped rows parsed fine but their player or beatmap is unknown
	Skipped int

	// Malformed rows belong to the tournament but could not be parsed
	Malformed int
}
