package notify

import "time"

// Source tells who produced a notified line
type Source string

const (
	// SourceEngine marks lines the automation sent to the lobby
	SourceEngine Source = "engine"

	// SourceLobby marks lines read from the lobby
	SourceLobby Source = "lobby"

	// SourceSystem marks session notices that never reached the lobby
	SourceSystem Source = "system"
)

type NotifyInput struct {
	MatchID string
	Source  Source

	// Sender is the lobby nick for lobby lines, the referee for engine lines
	Sender string
	Text   string
	SentAt time.Time
}
