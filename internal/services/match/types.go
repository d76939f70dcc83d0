package match

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/common/clock"
	"github.com/KirkDiggler/autoref/internal/common/uuid"
	"github.com/KirkDiggler/autoref/internal/engine"
	"github.com/KirkDiggler/autoref/internal/lobby"
	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/KirkDiggler/autoref/internal/repositories/ledger"
	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
	"github.com/KirkDiggler/autoref/internal/services/notify"
)

// Config wires a match service
type Config struct {
	Tournament tournament.Repository
	Snapshots  ledger.Repository
	Dialer     lobby.Dialer
	Notifier   notify.Notifier
	Clock      clock.Clock
	UUID       uuid.UUID
	Logger     logrus.FieldLogger

	// Engine holds lobby timings; nil uses engine.DefaultConfig
	Engine *engine.Config

	// TournamentName prefixes lobby titles, e.g. "SS26"
	TournamentName string

	// LineDelay paces consecutive lobby lines
	LineDelay time.Duration

	// PrivateLobbies creates password protected lobbies
	PrivateLobbies bool

	// PersistTimeout bounds the writes done when a session ends
	PersistTimeout time.Duration
}

type StartMatchInput struct {
	MatchID     string
	RefereeName string
	Qualifiers  bool

	// ChannelID is the coordination channel the session mirrors to
	ChannelID string
}

type StartMatchOutput struct {
	SessionID string
	Restored  bool
}

type EndMatchInput struct {
	MatchID string

	// CloseLobby also closes the lobby on the lobby-bot
	CloseLobby bool
}

type RelayMessageInput struct {
	MatchID string
	User    string
	Text    string
}

type GetMatchStatusInput struct {
	MatchID string
}

type GetMatchStatusOutput struct {
	Status *MatchStatus
}

type ListMatchesInput struct {
}

type ListMatchesOutput struct {
	Matches []*MatchStatus
}

// MatchStatus is a point in time view of a running session
type MatchStatus struct {
	MatchID   string           `json:"match_id"`
	SessionID string           `json:"session_id"`
	Type      models.MatchType `json:"type"`
	ChannelID string           `json:"channel_id,omitempty"`
	Lobby     string           `json:"lobby,omitempty"`
	MpLinkID  int              `json:"mp_link_id,omitempty"`

	Step    string `json:"step"`
	Stopped bool   `json:"stopped"`

	Red     string                   `json:"red,omitempty"`
	Blue    string                   `json:"blue,omitempty"`
	Referee string                   `json:"referee"`
	Wins    map[models.TeamColor]int `json:"wins,omitempty"`
	Banned  []models.RoundChoice     `json:"banned,omitempty"`
	Picked  []models.RoundChoice     `json:"picked,omitempty"`

	// MapIndex and PoolSize report qualifiers progress
	MapIndex int `json:"map_index"`
	PoolSize int `json:"pool_size"`

	StartedAt time.Time `json:"started_at"`
}
