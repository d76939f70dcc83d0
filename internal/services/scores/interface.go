package scores

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/autoref/internal/services/scores Service

import "context"

// Service imports finished score exports into the tournament records
type Service interface {
	// ImportScores parses an export and stores the scores of registered players
	ImportScores(ctx context.Context, input *ImportScoresInput) (*ImportScoresOutput, error)
}
