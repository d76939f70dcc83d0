package uuid

import (
	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/autoref/internal/common/uuid UUID

// UUID hands out identifiers for sessions and feed subscribers
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates random v4 identifiers
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}
