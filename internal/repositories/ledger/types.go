package ledger

import "github.com/KirkDiggler/autoref/internal/models"

type SaveSnapshotInput struct {
	Snapshot *models.MatchSnapshot
}

type GetSnapshotInput struct {
	MatchID string
}

type DeleteSnapshotInput struct {
	MatchID string
}

type ListActiveInput struct {
}

type ListActiveOutput struct {
	Snapshots []*models.MatchSnapshot
}
