package tournament

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/autoref/internal/repositories/tournament Repository

import (
	"context"
)

// Repository reads tournament records and stores match outcomes
type Repository interface {
	// GetMatchRoom loads an elimination match with its round, teams and referee
	GetMatchRoom(ctx context.Context, input *GetMatchRoomInput) (*GetMatchRoomOutput, error)

	// GetQualifierRoom loads a qualifiers lobby with its round and players
	GetQualifierRoom(ctx context.Context, input *GetQualifierRoomInput) (*GetQualifierRoomOutput, error)

	// GetReferee looks a referee up by display name
	GetReferee(ctx context.Context, input *GetRefereeInput) (*GetRefereeOutput, error)

	// SaveReferee creates or updates a referee's IRC credentials, keyed by display name
	SaveReferee(ctx context.Context, input *SaveRefereeInput) (*SaveRefereeOutput, error)

	// GetRoundForRoom returns the round of a match or qualifier room
	GetRoundForRoom(ctx context.Context, input *GetRoundForRoomInput) (*GetRoundForRoomOutput, error)

	// GetUsersByOsuIDs maps osu! ids to registered users
	GetUsersByOsuIDs(ctx context.Context, input *GetUsersByOsuIDsInput) (*GetUsersByOsuIDsOutput, error)

	// SaveMatchResult writes the draft and lobby link of a finished or stopped match
	SaveMatchResult(ctx context.Context, input *SaveMatchResultInput) error

	// SaveQualifierResult writes the lobby link of a qualifiers lobby
	SaveQualifierResult(ctx context.Context, input *SaveQualifierResultInput) error

	// SaveScores stores imported score rows
	SaveScores(ctx context.Context, input *SaveScoresInput) error
}
