package match

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/autoref/internal/services/match Service

import "context"

// Service runs one automated referee session per match
type Service interface {
	// StartMatch loads the match, opens its lobby and starts the session
	StartMatch(ctx context.Context, input *StartMatchInput) (*StartMatchOutput, error)

	// EndMatch stops a session and persists its outcome
	EndMatch(ctx context.Context, input *EndMatchInput) error

	// RelayMessage forwards a coordination channel message into the lobby
	RelayMessage(ctx context.Context, input *RelayMessageInput) error

	// GetMatchStatus reports the state of one session
	GetMatchStatus(ctx context.Context, input *GetMatchStatusInput) (*GetMatchStatusOutput, error)

	// ListMatches reports every running session
	ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error)

	// SnapshotAll saves the engine state of every session that changed
	SnapshotAll(ctx context.Context) error

	// Shutdown suspends every session, keeping their snapshots resumable
	Shutdown(ctx context.Context) error
}
