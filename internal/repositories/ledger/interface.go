package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/autoref/internal/repositories/ledger Repository

import (
	"context"

	"github.com/KirkDiggler/autoref/internal/models"
)

// Repository persists engine snapshots of running matches
type Repository interface {
	// SaveSnapshot stores the latest snapshot of a match
	SaveSnapshot(ctx context.Context, input *SaveSnapshotInput) error

	// GetSnapshot retrieves the latest snapshot of a match
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*models.MatchSnapshot, error)

	// DeleteSnapshot removes a match snapshot
	DeleteSnapshot(ctx context.Context, input *DeleteSnapshotInput) error

	// ListActive returns the snapshots of every unfinished match
	ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error)
}
