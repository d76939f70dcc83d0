package models

import (
	"encoding/json"
	"time"
)

// MatchSnapshot is the serialized engine state of a running match
type MatchSnapshot struct {
	// MatchID is the match or qualifier room id
	MatchID string `json:"match_id"`

	// Type is the flow driving the match
	Type MatchType `json:"type"`

	// Phase is the engine phase at the time of the snapshot
	Phase string `json:"phase"`

	// Finished is true once the match reached its terminal phase
	Finished bool `json:"finished"`

	// State is the engine state encoded as JSON
	State json.RawMessage `json:"state"`

	// UpdatedAt is when the snapshot was taken
	UpdatedAt time.Time `json:"updated_at"`
}
